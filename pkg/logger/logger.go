// Package logger is a thin printf-style facade over logrus.
//
// Every binary in this repository talks MCP over stdout, so the default
// output is stderr and nothing here ever writes to os.Stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Options configures the process-wide logger.
type Options struct {
	// Level is one of trace, debug, info, warn, error.
	Level string
	// Format is "text" or "json".
	Format string
	// OutputPath is a file to append to. Empty means stderr.
	OutputPath string
}

var (
	mu     sync.Mutex
	std    = newDefault()
	closer io.Closer
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// Init applies opts to the process-wide logger. It may be called more than once.
func Init(opts *Options) error {
	if opts == nil {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	level := logrus.InfoLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}
	std.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "", "text":
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		std.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q (must be 'text' or 'json')", opts.Format)
	}

	if opts.OutputPath != "" {
		f, err := os.OpenFile(opts.OutputPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %q: %w", opts.OutputPath, err)
		}
		if closer != nil {
			_ = closer.Close()
		}
		closer = f
		std.SetOutput(f)
	}
	return nil
}

// Flush closes the log file opened by Init, if any.
func Flush() {
	mu.Lock()
	defer mu.Unlock()

	if closer != nil {
		_ = closer.Close()
		closer = nil
		std.SetOutput(os.Stderr)
	}
}

// SetOutput redirects log output. Mostly useful in tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

// Writer returns a writer that logs every line it receives at error level.
// The caller must close it.
func Writer() *io.PipeWriter {
	return std.WriterLevel(logrus.ErrorLevel)
}

func Debug(format string, args ...any) { std.Debugf(format, args...) }
func Info(format string, args ...any)  { std.Infof(format, args...) }
func Warn(format string, args ...any)  { std.Warnf(format, args...) }
func Error(format string, args ...any) { std.Errorf(format, args...) }

// DebugX logs with a module field attached.
func DebugX(module, format string, args ...any) {
	std.WithField("module", module).Debugf(format, args...)
}

func InfoX(module, format string, args ...any) {
	std.WithField("module", module).Infof(format, args...)
}

func WarnX(module, format string, args ...any) {
	std.WithField("module", module).Warnf(format, args...)
}

func ErrorX(module, format string, args ...any) {
	std.WithField("module", module).Errorf(format, args...)
}
