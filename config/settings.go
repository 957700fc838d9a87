package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// UserConfig mirrors config.toml.
type UserConfig struct {
	DataDirectory   string               `toml:"data_directory,omitempty"`
	DefaultProvider string               `toml:"default_provider"`
	OpenRouter      FamilyConfig         `toml:"openrouter"`
	Google          FamilyConfig         `toml:"google"`
	Providers       []ProviderDescriptor `toml:"providers,omitempty"`
}

// LoadUserConfig reads config.toml from configDir, writing the default
// template first if the file does not exist yet.
func LoadUserConfig(configDir string) (*UserConfig, error) {
	cfg := DefaultUserConfig()
	userConfigPath := GetUserConfigPath(configDir)

	if !FileExists(userConfigPath) {
		if err := CreateDefaultUserConfig(configDir); err != nil {
			return nil, fmt.Errorf("failed to create user config: %w", err)
		}
		return cfg, nil
	}

	return LoadUserConfigFromPath(userConfigPath)
}

// LoadUserConfigFromPath decodes a config file at an explicit path.
func LoadUserConfigFromPath(configPath string) (*UserConfig, error) {
	cfg := DefaultUserConfig()
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}
	return cfg, nil
}

func CreateDefaultUserConfig(configDir string) error {
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	userConfigPath := GetUserConfigPath(configDir)
	if FileExists(userConfigPath) {
		return nil
	}

	content := GenerateUserConfigTemplate()
	if err := os.WriteFile(userConfigPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}
