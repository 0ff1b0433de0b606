package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kamaltrader/luxecraft/internal/config"
	log "github.com/sirupsen/logrus"
)

func TestSetupWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "server.log")
	closer, err := Setup(config.LogConfig{Level: "debug", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
	})

	if log.GetLevel() != log.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}
	log.Debug("storefront ready")
	if errClose := closer.Close(); errClose != nil {
		t.Fatalf("close: %v", errClose)
	}
	data, errRead := os.ReadFile(path)
	if errRead != nil {
		t.Fatalf("read log: %v", errRead)
	}
	if !strings.Contains(string(data), "storefront ready") {
		t.Fatalf("expected message in log file, got %q", string(data))
	}
}

func TestSetupFallsBackToInfo(t *testing.T) {
	closer, err := Setup(config.LogConfig{Level: "chatty"})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	defer closer.Close()
	if log.GetLevel() != log.InfoLevel {
		t.Fatalf("expected info level, got %s", log.GetLevel())
	}
}
