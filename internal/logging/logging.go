package logging

import (
	"io"
	"log"
	"os"

	"github.com/terraincognita07/bloom/internal/config"
	"gopkg.in/lumberjack.v2"
)

// NewWriter returns console, or console plus a size-rotated log file when
// cfg.File is set. The returned func closes the file.
func NewWriter(cfg config.LogConfig, console io.Writer) (io.Writer, func() error) {
	if cfg.File == "" {
		return console, func() error { return nil }
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		LocalTime:  true,
	}
	return io.MultiWriter(console, rotating), rotating.Close
}

// Setup routes the standard logger through NewWriter and returns the writer
// so request logging can share it.
func Setup(cfg config.LogConfig) (io.Writer, func() error) {
	writer, closeFn := NewWriter(cfg, os.Stderr)
	log.SetOutput(writer)
	return writer, closeFn
}
