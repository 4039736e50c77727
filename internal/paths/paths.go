// Package paths resolves where tabula keeps its configuration and its
// table store.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user configuration directory.
const AppName = "tabula"

// File and directory names.
const (
	ConfigFileName     = "config.yaml"
	DefaultDataDirName = ".tabula-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "TABULA_CONFIG_DIR"
	EnvDataDir   = "TABULA_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/tabula (fallback ~/.config/tabula)
// macOS:   ~/Library/Application Support/tabula
// Windows: %APPDATA%/tabula
func DefaultConfigDir() (string, error) {
	if platformDir.goos == "linux" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, AppName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", AppName), nil
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > TABULA_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if dir, ok, err := firstAbs(flag, os.Getenv(EnvConfigDir)); ok || err != nil {
		return dir, err
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the directory holding the table store:
// flag > config value > TABULA_DATA_DIR > $(CWD)/.tabula-db.
// A relative config value is taken relative to configDir.
func ResolveDataDir(flag, configValue, configDir string) (string, error) {
	if configValue != "" && configDir != "" && !filepath.IsAbs(configValue) {
		configValue = filepath.Join(configDir, configValue)
	}
	if dir, ok, err := firstAbs(flag, configValue, os.Getenv(EnvDataDir)); ok || err != nil {
		return dir, err
	}
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// ConfigFile returns the config file path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// firstAbs returns the first non-empty candidate as an absolute path.
func firstAbs(candidates ...string) (string, bool, error) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		abs, err := filepath.Abs(c)
		return abs, true, err
	}
	return "", false, nil
}
