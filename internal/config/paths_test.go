package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("GetConfigDir() returned empty string")
	}
		if filepath.Base(dir) != "inkboard" {
		t.Errorf("expected dir to end with 'inkboard', got %q", filepath.Base(dir))
	}
}

func TestGetConfigDirXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	expected := filepath.Join(tmp, "inkboard")
	if dir != expected {
		t.Errorf("expected %q, got %q", expected, dir)
	}
}

func TestGetDataDir(t *testing.T) {
	dir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir() error: %v", err)
	}
	if dir == "" {
		t.Fatal("GetDataDir() returned empty string")
	}
	if filepath.Base(dir) != "inkboard" {
		t.Errorf("expected dir to end with 'inkboard', got %q", filepath.Base(dir))
	}
}

func TestSnapshotsDir(t *testing.T) {
	dir, err := GetSnapshotsDir()
	if err != nil {
		t.Fatalf("GetSnapshotsDir() error: %v", err)
	}
	if filepath.Base(dir) != "snapshots" {
		t.Errorf("expected dir to end with 'snapshots', got %q", filepath.Base(dir))
	}
}

func TestSecretsPath(t *testing.T) {
	path, err := GetSecretsPath()
	if err != nil {
		t.Fatalf("GetSecretsPath() error: %v", err)
	}
	if filepath.Base(path) != "secrets.enc" {
		t.Errorf("expected 'secrets.enc', got %q", filepath.Base(path))
	}
}

func TestOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Output.Folder = "/srv/inkboard"
	dir, err := cfg.OutputDir()
	if err != nil {
		t.Fatalf("OutputDir() error: %v", err)
	}
	if dir != "/srv/inkboard" {
		t.Errorf("expected configured folder, got %q", dir)
	}

	cfg.Output.Folder = ""
	dir, err = cfg.OutputDir()
	if err != nil {
		t.Fatalf("OutputDir() error: %v", err)
	}
	if filepath.Base(dir) != "inkboard" {
		t.Errorf("expected data dir fallback, got %q", dir)
	}
}
