package logger

import (
	"bufio"
	"os"
	"path/filepath"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryLogger struct {
	mut     sync.Mutex
	entries []*LogEntry
}

func (l *memoryLogger) log(entry *LogEntry) {
	l.mut.Lock()
	defer l.mut.Unlock()

	l.entries = append(l.entries, entry)
}

func (l *memoryLogger) Log(entry *LogEntry) {
	if preprocess(entry, nil) {
		l.log(entry)
	}
}

func (l *memoryLogger) messages() []string {
	l.mut.Lock()
	defer l.mut.Unlock()

	msgs := make([]string, len(l.entries))
	for i, e := range l.entries {
		msgs[i] = e.Message
	}
	return msgs
}

func TestNewLogEntry(t *testing.T) {
	t.Run("error is dropped below error level", func(t *testing.T) {
		e := NewLogEntry(InfoLogLevel, "TEST", "msg", "some error", nil)
		assert.Empty(t, e.Error)
		assert.Equal(t, "INFO", e.Level)
	})

	t.Run("error is kept on error level", func(t *testing.T) {
		e := NewLogEntry(ErrorLogLevel, "TEST", "msg", "some error", Meta{"path": "/"})
		assert.Equal(t, "some error", e.Error)
		assert.Equal(t, "ERROR", e.Level)
		assert.Equal(t, "/", e.Meta["path"])
	})
}

func TestPreprocess(t *testing.T) {
	defer Debug.Store(false)
	defer Trace.Store(false)

	mem := new(memoryLogger)
	src := NewSource("TEST", mem)

	Debug.Store(false)
	Trace.Store(false)

	src.Debug("debug hidden", nil)
	src.Trace("trace hidden", nil)
	src.Info("info shown", nil)

	Debug.Store(true)
	Trace.Store(true)

	src.Debug("debug shown", nil)
	src.Trace("trace shown", nil)

	assert.Equal(t, []string{"info shown", "debug shown", "trace shown"}, mem.messages())
}

func TestMetaSuffix(t *testing.T) {
	assert.Equal(t, "", Meta(nil).stringSuffix())
	assert.Equal(t, "", Meta{"unknown": "x"}.stringSuffix())
	assert.Equal(
		t,
		" (127.0.0.1 GET /products)",
		Meta{"addr": "127.0.0.1", "method": "GET", "path": "/products", "other": 1}.stringSuffix(),
	)
}

func TestFileLoggerForwarding(t *testing.T) {
	l := NewFileLogger("forwarding")
	mem := new(memoryLogger)

	assert.Error(t, l.NewForwarding(nil))
	assert.Error(t, l.NewForwarding(l))
	require.NoError(t, l.NewForwarding(mem))
	assert.Error(t, l.NewForwarding(mem))

	src := NewSource("TEST", l)
	src.Info("forwarded before start", nil)

	require.NoError(t, l.RemoveForwarding(mem))
	assert.Error(t, l.RemoveForwarding(mem))

	src.Info("not forwarded", nil)

	assert.Equal(t, []string{"forwarded before start"}, mem.messages())
}

func TestFileLoggerWritesJSONLines(t *testing.T) {
	dir := t.TempDir()

	l := NewFileLogger("test")
	l.Init("warehouse-test", "node-1", dir)

	require.NoError(t, l.Start())
	assert.Error(t, l.Start())

	src := NewSource("TEST", l)
	src.Info("first", Meta{"path": "/warehouses"})
	src.Error("second", "boom", nil)

	require.NoError(t, l.Stop())
	assert.Error(t, l.Stop())

	f, err := os.Open(filepath.Join(dir, "test.log"))
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, jsoniter.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0]["msg"])
	assert.Equal(t, "warehouse-test", entries[0]["service"])
	assert.Equal(t, "node-1", entries[0]["instance"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "boom", entries[1]["error"])
}
