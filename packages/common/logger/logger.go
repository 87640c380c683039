package logger

import (
	"os"
	"strings"
	"sync/atomic"
)

// Toggles for the debug and trace levels, shared by all loggers.
var (
	Debug atomic.Bool
	Trace atomic.Bool
)

type Meta map[string]any

// Request related meta keys, appended to text output in this order.
var suffixKeys = [...]string{"addr", "method", "path", "user_agent", "request_id"}

func (m Meta) stringSuffix() string {
	if len(m) == 0 {
		return ""
	}

	parts := make([]string, 0, len(suffixKeys))
	for _, key := range suffixKeys {
		if v, ok := m[key].(string); ok && v != "" {
			parts = append(parts, v)
		}
	}

	if len(parts) == 0 {
		return ""
	}

	return " (" + strings.Join(parts, " ") + ")"
}

type Logger interface {
	Log(entry *LogEntry)
	// Writes entry without side effects: panic and fatal entries
	// are only handled by the logger that received them via Log().
	log(entry *LogEntry)
}

// Logger which owns a background writer.
type ConcurrentLogger interface {
	Logger

	Start() error
	Stop() error
}

type ForwardingLogger interface {
	Logger

	// Every entry passed to Log() is also written to the bound logger.
	// Binding to self or binding the same logger twice is an error.
	NewForwarding(logger Logger) error
	RemoveForwarding(logger Logger) error
}

// Filters out disabled levels and writes entry to forwardings.
// Reports whether entry must be handled by the caller.
func preprocess(entry *LogEntry, forwardings []Logger) bool {
	switch entry.rawLevel {
	case DebugLogLevel:
		if !Debug.Load() {
			return false
		}
	case TraceLogLevel:
		if !Trace.Load() {
			return false
		}
	}

	for _, f := range forwardings {
		f.log(entry)
	}

	return true
}

// Panics on panic level entries, exits the process otherwise.
func handleCritical(entry *LogEntry) {
	if entry.rawLevel == PanicLogLevel {
		panic(entry.Message + "\n" + entry.Error)
	}
	os.Exit(1)
}

var (
	Default = NewFileLogger("default")
	Stdout  = newStdoutLogger()
	Stderr  = newStderrLogger()
)
