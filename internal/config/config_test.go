package config

import (
	"path/filepath"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv(EnvPort, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvHeadless, "")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.Port() != DefaultPort {
		t.Errorf("Port() = %d, want %d", cfg.Port(), DefaultPort)
	}
	if cfg.LogLevel() != DefaultLogLevel {
		t.Errorf("LogLevel() = %q, want %q", cfg.LogLevel(), DefaultLogLevel)
	}
	if cfg.Headless() {
		t.Error("Headless() = true, want false by default")
	}
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv(EnvPort, "9100")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvDataDir, "/tmp/cutline-test")
	t.Setenv(EnvHeadless, "true")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if cfg.Port() != 9100 {
		t.Errorf("Port() = %d, want 9100", cfg.Port())
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("LogLevel() = %q, want debug", cfg.LogLevel())
	}
	if !cfg.Headless() {
		t.Error("Headless() = false, want true")
	}
	if cfg.DBPath() != filepath.Join("/tmp/cutline-test", DBFilename) {
		t.Errorf("DBPath() = %q", cfg.DBPath())
	}
	if cfg.BlobDir() != filepath.Join("/tmp/cutline-test", BlobDirname) {
		t.Errorf("BlobDir() = %q", cfg.BlobDir())
	}
}

func TestNew_InvalidPort(t *testing.T) {
	for _, v := range []string{"abc", "0", "70000"} {
		t.Setenv(EnvPort, v)
		if _, err := New(); err == nil {
			t.Errorf("New() with port %q succeeded, want error", v)
		}
	}
}
