package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// NewRunLogger creates the logger for one generation run: logfmt lines with
// RFC 3339 timestamps. Pass an io.MultiWriter to copy the run log to the
// terminal as well as the log file.
func NewRunLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Formatter:       log.LogfmtFormatter,
	})
}

// LogFilePath resolves the run log location for a deck written to output.
// An empty name means [DefaultLogFile]; relative names are placed in the
// output directory.
func LogFilePath(output, name string) string {
	if name == "" {
		name = DefaultLogFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(output), name)
}

// OpenLogFile opens path for appending, creating its directory as needed.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
