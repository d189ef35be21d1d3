package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the reloaded config whenever path is written,
// until ctx is done. Configs that fail to load or validate are logged
// and skipped. The parent directory is watched so editors that replace
// the file are seen too.
func Watch(ctx context.Context, path string, logger *slog.Logger, fn func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(path)
			if err == nil {
				err = cfg.Validate()
			}
			if err != nil {
				logger.Warn("config_reload_failed", "path", path, "error", err)
				continue
			}
			logger.Info("config_reloaded", "path", path)
			fn(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config_watch_error", "error", err)
		}
	}
}
