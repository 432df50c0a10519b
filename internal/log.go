package internal

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogLevel represents different logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// Logger provides leveled logging
type Logger struct {
	level   LogLevel
	entry   *logrus.Entry
	writers *writerSet
}

// writerSet tracks the pipes handed out by Writer. Loggers derived with With
// share the set of their root.
type writerSet struct {
	mu   sync.Mutex
	open []*io.PipeWriter
}

// NewLogger creates a new logger with the specified level writing to stderr
func NewLogger(level LogLevel) *Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo creates a logger writing to out
func NewLoggerTo(out io.Writer, level LogLevel) *Logger {
	base := logrus.New()
	base.SetOutput(out)
	base.SetLevel(level.logrus())
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return &Logger{level: level, entry: logrus.NewEntry(base), writers: &writerSet{}}
}

// NewDefaultLogger creates a logger based on LOG_LEVEL environment variable
func NewDefaultLogger() *Logger {
	return NewLogger(ParseLogLevel(os.Getenv("LOG_LEVEL")))
}

// ParseLogLevel maps ERROR/WARN/INFO/DEBUG/TRACE to a level, defaulting to INFO
func ParseLogLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LogLevelError
	case "WARN":
		return LogLevelWarn
	case "DEBUG":
		return LogLevelDebug
	case "TRACE":
		return LogLevelTrace
	default:
		return LogLevelInfo
	}
}

func (l LogLevel) logrus() logrus.Level {
	switch l {
	case LogLevelError:
		return logrus.ErrorLevel
	case LogLevelWarn:
		return logrus.WarnLevel
	case LogLevelDebug:
		return logrus.DebugLevel
	case LogLevelTrace:
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}

// With returns a logger that attaches key=value to every entry
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{level: l.level, entry: l.entry.WithField(key, value), writers: l.writers}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Trace logs trace messages
func (l *Logger) Trace(format string, args ...interface{}) {
	l.entry.Tracef(format, args...)
}

// Writer exposes the logger as an io.Writer at info level, for routers that
// want a plain writer for access logs. Each writer holds a goroutine until
// Close is called.
func (l *Logger) Writer() *io.PipeWriter {
	w := l.entry.WriterLevel(logrus.InfoLevel)
	l.writers.mu.Lock()
	l.writers.open = append(l.writers.open, w)
	l.writers.mu.Unlock()
	return w
}

// Close closes every writer obtained from this logger or one derived from it.
// The logger itself stays usable.
func (l *Logger) Close() error {
	l.writers.mu.Lock()
	open := l.writers.open
	l.writers.open = nil
	l.writers.mu.Unlock()

	var firstErr error
	for _, w := range open {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenWriters reports how many writers are still open
func (l *Logger) OpenWriters() int {
	l.writers.mu.Lock()
	defer l.writers.mu.Unlock()
	return len(l.writers.open)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() LogLevel {
	return l.level
}

// Global logger instance
var DefaultLogger = NewDefaultLogger()
