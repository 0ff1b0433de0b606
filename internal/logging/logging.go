// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kamaltrader/luxecraft/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup applies the level and output from cfg to the standard logger.
// The returned closer releases the rotating file, if any.
func Setup(cfg config.LogConfig) (io.Closer, error) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	level, errLevel := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if errLevel != nil {
		level = log.InfoLevel
		if strings.TrimSpace(cfg.Level) != "" {
			log.Warnf("logging: unknown level %q, using info", cfg.Level)
		}
	}
	log.SetLevel(level)

	if strings.TrimSpace(cfg.File) == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}, nil
	}
	if errMkdir := os.MkdirAll(filepath.Dir(cfg.File), 0o755); errMkdir != nil {
		return nil, errMkdir
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return rotator, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
