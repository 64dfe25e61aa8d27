package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// FileName is created next to the executable unless overridden.
const FileName = "njupt_wifi.log"

// New returns a logger appending to path. If the file cannot be opened the
// logger writes to stderr and the open error is returned alongside it.
func New(path, level string) (*log.Logger, io.Closer, error) {
	lvl := log.DebugLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}

	var (
		w       io.Writer = os.Stderr
		closer  io.Closer = io.NopCloser(nil)
		openErr error
	)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		openErr = err
	} else if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
		openErr = err
	} else {
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	if openErr != nil {
		logger.Warn("Cannot open log file, logging to stderr", "path", path, "err", openErr)
	}
	return logger, closer, openErr
}
