package logger

import (
	"log"
	"os"
)

// Satisfies Logger interface
type stdoutLogger struct {
	logger *log.Logger
}

func newStdoutLogger() *stdoutLogger {
	return &stdoutLogger{
		logger: log.New(os.Stdout, "", log.Ldate|log.Ltime),
	}
}

func (l *stdoutLogger) log(entry *LogEntry) {
	l.logger.Println(formatPlain(entry))
}

func (l *stdoutLogger) Log(entry *LogEntry) {
	if !preprocess(entry, nil) {
		return
	}

	l.log(entry)

	if entry.rawLevel >= FatalLogLevel {
		handleCritical(entry)
	}
}

func formatPlain(entry *LogEntry) string {
	s := "[" + entry.Source + ": " + entry.Level + "] " + entry.Message
	if entry.Error != "" {
		s += ": " + entry.Error
	}
	return s + entry.Meta.stringSuffix()
}
