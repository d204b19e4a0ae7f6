package db

import (
	"path/filepath"
	"testing"
)

func TestNew_RunsMigrations(t *testing.T) {
	dir := t.TempDir()
	database, err := New(filepath.Join(dir, "cutline.db"), nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer database.Close()

	for _, table := range []string{"projects", "media_files", "config", "_migrations"} {
		var one int
		err := database.Conn().QueryRow(
			"SELECT 1 FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&one)
		if err != nil {
			t.Errorf("table %s missing after migration: %v", table, err)
		}
	}
}

func TestNew_MigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutline.db")

	first, err := New(path, nil)
	if err != nil {
		t.Fatalf("first New() error = %v", err)
	}
	first.Close()

	second, err := New(path, nil)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	second.Close()
}
