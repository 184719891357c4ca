package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/zerolog"
)

// newLogger opens a daily rotated log file in cfg.Dir. The terminal belongs
// to the TUI, so nothing is logged to stderr.
func newLogger(cfg LogConfig) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("log level: %w", err)
	}
	if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	w, err := rotatelogs.New(
		filepath.Join(cfg.Dir, "osci.%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(cfg.Dir, "osci.log")),
		rotatelogs.WithMaxAge(cfg.MaxAge),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, w, nil
}
