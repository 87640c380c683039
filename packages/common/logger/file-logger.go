package logger

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

const queueSize = 4096

// Satisfies ConcurrentLogger and ForwardingLogger interfaces.
//
// Entries are queued and written by a single goroutine.
// Before Start() is called entries are only forwarded.
type FileLogger struct {
	name        string
	dir         string
	service     string
	instance    string
	mut         sync.RWMutex
	isRunning   bool
	forwardings []Logger
	queue       chan *LogEntry
	out         io.WriteCloser
	done        chan struct{}
	streams     sync.Pool
}

func NewFileLogger(name string) *FileLogger {
	return &FileLogger{
		name:        name,
		dir:         "/var/log/warehouse",
		service:     "warehouse",
		forwardings: []Logger{},
		streams: sync.Pool{
			New: func() any {
				return jsoniter.NewStream(jsoniter.ConfigFastest, nil, 1024)
			},
		},
	}
}

// Sets service and instance names which will be added to each entry,
// as well as directory for log files. Empty values are ignored.
// Must be called before Start().
func (l *FileLogger) Init(service string, instance string, dir string) {
	l.mut.Lock()
	defer l.mut.Unlock()

	if service != "" {
		l.service = service
	}
	if instance != "" {
		l.instance = instance
	}
	if dir != "" {
		l.dir = dir
	}
}

func (l *FileLogger) Start() error {
	l.mut.Lock()
	defer l.mut.Unlock()

	if l.isRunning {
		return errors.New("logger already started")
	}

	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(
		filepath.Join(l.dir, l.name+".log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644, // -rw-r--r--
	)
	if err != nil {
		return err
	}

	l.out = f
	l.queue = make(chan *LogEntry, queueSize)
	l.done = make(chan struct{})
	l.isRunning = true

	go l.consume(l.queue, l.done)

	return nil
}

func (l *FileLogger) consume(queue <-chan *LogEntry, done chan<- struct{}) {
	for entry := range queue {
		l.write(entry)
	}
	close(done)
}

// Stops the logger. All queued entries will be written before return.
func (l *FileLogger) Stop() error {
	l.mut.Lock()

	if !l.isRunning {
		l.mut.Unlock()
		return errors.New("logger isn't started, hence can't be stopped")
	}

	l.isRunning = false
	close(l.queue)
	done := l.done

	l.mut.Unlock()

	<-done

	return l.out.Close()
}

func (l *FileLogger) write(entry *LogEntry) {
	stream := l.streams.Get().(*jsoniter.Stream)
	defer l.streams.Put(stream)

	stream.Reset(nil)
	stream.Error = nil

	stream.WriteVal(entry)
	if stream.Error != nil {
		Stderr.log(&LogEntry{
			Source:  "LOG",
			Level:   ErrorLogLevel.String(),
			Message: "Failed to encode log entry",
			Error:   stream.Error.Error(),
		})
		return
	}

	// Without this all logs will be written in single line
	stream.WriteRaw("\n")

	if _, err := l.out.Write(stream.Buffer()); err != nil {
		Stderr.log(&LogEntry{
			Source:  "LOG",
			Level:   ErrorLogLevel.String(),
			Message: "Failed to write log entry",
			Error:   err.Error(),
		})
	}
}

func (l *FileLogger) log(entry *LogEntry) {
	l.mut.RLock()
	defer l.mut.RUnlock()

	if !l.isRunning {
		return
	}

	entry.Service = l.service
	entry.Instance = l.instance

	select {
	case l.queue <- entry:
	default:
		// Queue is overflowed, write in place
		l.write(entry)
	}
}

func (l *FileLogger) Log(entry *LogEntry) {
	l.mut.RLock()
	forwardings := l.forwardings
	l.mut.RUnlock()

	if !preprocess(entry, forwardings) {
		return
	}

	if entry.rawLevel >= FatalLogLevel {
		l.mut.RLock()
		if l.isRunning {
			entry.Service = l.service
			entry.Instance = l.instance
			l.write(entry)
		}
		l.mut.RUnlock()

		handleCritical(entry)
	}

	l.log(entry)
}

func (l *FileLogger) NewForwarding(logger Logger) error {
	if logger == nil {
		return errors.New("received nil instead of logger")
	}

	if fl, ok := logger.(*FileLogger); ok && fl == l {
		return errors.New("can't create forwarding to self")
	}

	l.mut.Lock()
	defer l.mut.Unlock()

	if slices.Contains(l.forwardings, logger) {
		return errors.New("this logger already has forwarding")
	}

	// Copy on write, Log() reads forwardings without holding the lock
	l.forwardings = append(slices.Clone(l.forwardings), logger)

	return nil
}

func (l *FileLogger) RemoveForwarding(logger Logger) error {
	l.mut.Lock()
	defer l.mut.Unlock()

	idx := slices.Index(l.forwardings, logger)
	if idx == -1 {
		return errors.New("forwarding to specified logger doesn't exist")
	}

	l.forwardings = slices.Delete(slices.Clone(l.forwardings), idx, idx+1)

	return nil
}
