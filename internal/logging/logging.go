// Package logging builds the structured loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New returns a timestamped logger writing to w.
func New(w io.Writer, prefix string, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
}

// NewFile returns a logger appending to path, or a discarding logger when
// path is empty. The terminal build cannot log to stderr without tearing the
// board, so it logs to a file. The returned close func is never nil.
func NewFile(path, prefix string, level log.Level) (*log.Logger, func() error, error) {
	if path == "" {
		return New(io.Discard, prefix, level), func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := New(f, prefix, level)
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f.Close, nil
}
