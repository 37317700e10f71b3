package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_FileBackendPersistsAcrossSessions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataDir := t.TempDir()
	opts := Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml"), DataDir: dataDir}

	env, err := Open(opts)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	env.Store.ToggleDisplayMode()
	if err := env.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dataDir, "darkMode.json")); err != nil {
		t.Fatalf("display mode not written to data dir: %v", err)
	}

	env, err = Open(opts)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer env.Close()
	if !env.Store.Snapshot().DarkMode {
		t.Fatal("dark mode did not survive a restart")
	}
}

func TestOpen_SQLiteBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataDir := t.TempDir()

	env, err := Open(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml"), DataDir: dataDir, Backend: "SQLite"})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer env.Close()
	if env.Config.Backend != "sqlite" {
		t.Fatalf("Backend = %q, want sqlite", env.Config.Backend)
	}
	env.Store.OpenSettings()
	if err := env.Store.UpdateDraftField("username", "@sql"); err != nil {
		t.Fatalf("UpdateDraftField: %v", err)
	}
	env.Store.CommitSettings()
	if env.Store.Snapshot().LastPersistError != nil {
		t.Fatalf("sqlite write failed: %v", env.Store.Snapshot().LastPersistError)
	}
}

func TestOpen_EphemeralWritesNothing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dataDir := filepath.Join(t.TempDir(), "data")

	env, err := Open(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml"), DataDir: dataDir, Ephemeral: true})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	env.Store.ToggleDisplayMode()
	env.Store.AddWallpapers(context.Background(), nil)
	_ = env.Close()

	if _, err := os.Stat(dataDir); !os.IsNotExist(err) {
		t.Fatalf("ephemeral session created %s (err=%v)", dataDir, err)
	}
}

func TestOpen_UnknownBackendFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	_, err := Open(Options{ConfigPath: filepath.Join(t.TempDir(), "missing.toml"), DataDir: t.TempDir(), Backend: "redis"})
	if err == nil || !strings.Contains(err.Error(), "invalid backend") {
		t.Fatalf("Open err = %v, want invalid backend", err)
	}
}
