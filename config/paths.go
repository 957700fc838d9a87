package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Environment variables read at startup.
const (
	EnvOpenRouterAPIKey  = "TABCHAT_OPENROUTER_API_KEY"
	EnvOpenRouterBaseURL = "TABCHAT_OPENROUTER_BASE_URL"
	EnvGoogleAPIKey      = "TABCHAT_GOOGLE_API_KEY"
	EnvGoogleBaseURL     = "TABCHAT_GOOGLE_BASE_URL"
	EnvConfigDir         = "TABCHAT_CONFIG_DIR"
	EnvDataDir           = "TABCHAT_DATA_DIR"
	EnvDebug             = "TABCHAT_DEBUG"
)

// GetConfigDir returns the platform-specific configuration directory
// Linux/Mac: ~/.config/tabchat
// Windows: C:\Users\username\.config\tabchat
// TABCHAT_CONFIG_DIR takes precedence when set.
func GetConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(GetHomeDir(), ".config", "tabchat")
}

// GetDefaultDataDir returns the platform-specific default data directory
// Linux/Mac: ~/.local/share/tabchat
// Windows: C:\Users\username\AppData\Local\tabchat
func GetDefaultDataDir() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(GetHomeDir(), "AppData", "Local")
		}
		return filepath.Join(localAppData, "tabchat")
	}

	return filepath.Join(GetHomeDir(), ".local", "share", "tabchat")
}

// GetUserConfigPath returns the path to config.toml inside configDir
func GetUserConfigPath(configDir string) string {
	return filepath.Join(configDir, "config.toml")
}

// GetKeybindingsPath returns the path to keybindings.toml inside configDir
func GetKeybindingsPath(configDir string) string {
	return filepath.Join(configDir, "keybindings.toml")
}

// GetHomeDir returns the user's home directory across platforms
// Windows: %USERPROFILE% (C:\Users\username)
// Linux/Mac: $HOME (/home/username)
func GetHomeDir() string {
	if runtime.GOOS == "windows" {
		home := os.Getenv("USERPROFILE")
		if home == "" {
			home = os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
		}
		if home == "" {
			home = "C:\\"
		}
		return home
	}
	home := os.Getenv("HOME")
	if home == "" {
		home = "/"
	}
	return home
}

// ExpandPath expands ~ and environment variables in a path
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(GetHomeDir(), path[2:])
	}

	path = os.ExpandEnv(path)

	return filepath.Clean(path)
}

// EnsureDir creates a directory if it doesn't exist (0700 - user-only access)
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0700)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
