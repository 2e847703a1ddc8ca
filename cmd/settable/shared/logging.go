package shared

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger configures a console logger on stderr.
func SetupLogger(debug bool) *log.Logger {
	return newLogger(os.Stderr, debug)
}

// SetupFileLogger configures a logger writing to the given file, used when a
// TUI owns the terminal. The caller closes the file.
func SetupFileLogger(path string, debug bool) (*log.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newLogger(f, debug), f, nil
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}
