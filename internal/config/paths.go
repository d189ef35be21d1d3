package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "inkboard"

// GetConfigDir returns the platform-specific config directory.
// Unix: $XDG_CONFIG_HOME/inkboard or ~/.config/inkboard
// Windows: %APPDATA%\inkboard
func GetConfigDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(base, appName), nil
}

// GetDataDir returns the platform-specific data directory.
// Unix: $XDG_DATA_HOME/inkboard or ~/.local/share/inkboard
// Windows: %LOCALAPPDATA%\inkboard
func GetDataDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			base = filepath.Join(home, ".local", "share")
		}
	}
	return filepath.Join(base, appName), nil
}

// GetConfigPath returns the path of config.toml.
func GetConfigPath() (string, error) {
	cfgDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "config.toml"), nil
}

// GetSnapshotsDir returns the directory for saved source snapshots.
func GetSnapshotsDir() (string, error) {
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "snapshots"), nil
}

// GetSecretsPath returns the path to the encrypted secret vault.
func GetSecretsPath() (string, error) {
	cfgDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "secrets.enc"), nil
}

// OutputDir returns the configured output folder or the data directory.
func (c *Config) OutputDir() (string, error) {
	if c.Output.Folder != "" {
		return c.Output.Folder, nil
	}
	return GetDataDir()
}

// EnsureDirs creates all required directories if they don't exist.
func EnsureDirs() error {
	dirs := []func() (string, error){GetConfigDir, GetDataDir, GetSnapshotsDir}
	for _, fn := range dirs {
		dir, err := fn()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0700); err != nil {
			return err
		}
	}
	return nil
}
