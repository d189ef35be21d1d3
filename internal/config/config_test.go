package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tonhe/inkboard/internal/chart"
	"github.com/tonhe/inkboard/internal/series"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("expected refresh interval 5m, got %v", cfg.RefreshInterval)
	}
	if cfg.Display.Width != 800 || cfg.Display.Height != 480 {
		t.Errorf("expected 800x480, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if len(cfg.Appliances) != 3 {
		t.Errorf("expected 3 appliances, got %d", len(cfg.Appliances))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	cfg := DefaultConfig()
	cfg.RefreshInterval = 90 * time.Second
	cfg.HomeAssistant.URL = "http://ha.local:8123"
	cfg.Display.Cadence = "15m"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if loaded.RefreshInterval != 90*time.Second {
		t.Errorf("expected refresh interval 90s, got %v", loaded.RefreshInterval)
	}
	if loaded.HomeAssistant.URL != "http://ha.local:8123" {
		t.Errorf("expected url 'http://ha.local:8123', got %q", loaded.HomeAssistant.URL)
	}
	if loaded.Display.Cadence != "15m" {
		t.Errorf("expected cadence '15m', got %q", loaded.Display.Cadence)
	}
	if loaded.Labels.Weekdays[6] != "Ne" {
		t.Errorf("expected weekday labels to survive, got %v", loaded.Labels.Weekdays)
	}
}

func TestConfigLoadMissing(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("LoadConfig() should return defaults for missing file, got error: %v", err)
	}
	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected default listen address, got %q", cfg.Server.Listen)
	}
}

func TestConfigLoadPartialLabels(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	os.WriteFile(path, []byte("[labels]\ncurrent_price = \"SPOT PRICE\"\n"), 0644)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Labels.CurrentPrice != "SPOT PRICE" {
		t.Errorf("expected overridden label, got %q", cfg.Labels.CurrentPrice)
	}
	if cfg.Labels.Min != "minimum" {
		t.Errorf("expected default min label, got %q", cfg.Labels.Min)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"bad cadence", func(c *Config) { c.Display.Cadence = "5m" }},
		{"bad style", func(c *Config) { c.Display.Style = "dotted" }},
		{"bad classifier", func(c *Config) { c.Display.Classifier = "median" }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"zero interval", func(c *Config) { c.RefreshInterval = 0 }},
		{"appliance without entity", func(c *Config) { c.Appliances[0].Entity = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Timezone = "UTC"
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestComposerOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.Display.Cadence = "15m"
	cfg.Display.Style = "checker"

	opts, err := cfg.ComposerOptions()
	if err != nil {
		t.Fatalf("ComposerOptions() error: %v", err)
	}
	if opts.Cadence != series.QuarterHour {
		t.Errorf("expected quarter-hour cadence, got %v", opts.Cadence)
	}
	if opts.Style != chart.CheckerStyle {
		t.Errorf("expected checker style, got %v", opts.Style)
	}
	if opts.Location != time.UTC {
		t.Errorf("expected UTC, got %v", opts.Location)
	}
}

func TestWatch(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")
	cfg := DefaultConfig()
	cfg.Timezone = "UTC"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan *Config, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, slog.New(slog.NewTextHandler(io.Discard, nil)), func(c *Config) {
			select {
			case reloaded <- c:
			default:
			}
		})
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	cfg.Server.Listen = ":9090"
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	// Truncation may surface as its own write event, so wait for the
	// final contents.
	timeout := time.After(5 * time.Second)
wait:
	for {
		select {
		case c := <-reloaded:
			if c.Server.Listen == ":9090" {
				break wait
			}
		case <-timeout:
			t.Fatal("timed out waiting for reload")
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error: %v", err)
	}
}
