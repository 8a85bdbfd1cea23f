package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logger  = log.NewWithOptions(io.Discard, log.Options{})
	logFile *os.File
)

// Init opens a timestamped log file under dir. The terminal belongs to the
// TUI, so nothing is ever written to stdout or stderr; if the file cannot be
// opened logging is silently disabled.
func Init(dir, level string) error {
	if dir == "" {
		dir = "tmp"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFileName := filepath.Join(dir, fmt.Sprintf("cli-%s.log", time.Now().Format("20060102-150405")))
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
		Prefix:          "cli",
	})
	return nil
}

// SetOutput redirects logging, mainly for tests.
func SetOutput(w io.Writer) {
	logger = log.NewWithOptions(w, log.Options{Level: log.DebugLevel, Prefix: "cli"})
}

// Log writes an info message
func Log(format string, v ...interface{}) {
	logger.Info(fmt.Sprintf(format, v...))
}

// Debug writes structured debug output
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// LogError writes an error log message
func LogError(err error, format string, v ...interface{}) {
	logger.Error(fmt.Sprintf(format, v...), "err", err)
}

// CloseLog closes the log file
func CloseLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = log.NewWithOptions(io.Discard, log.Options{})
}
