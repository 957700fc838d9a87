package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// FamilyConfig holds connection settings for one provider family.
// APIKey is only ever populated from the environment.
type FamilyConfig struct {
	APIKey       string `toml:"-"`
	BaseURL      string `toml:"base_url,omitempty"`
	DefaultModel string `toml:"default_model,omitempty"`
}

// Configured reports whether the family has the credentials it needs.
func (f FamilyConfig) Configured() bool {
	return f.APIKey != ""
}

type Config struct {
	ConfigDirectory string
	DataDirectory   string
	DefaultProvider string

	OpenRouter FamilyConfig
	Google     FamilyConfig

	Providers   []ProviderDescriptor
	KeyBindings *KeyBindingsConfig
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) ConfigDir() string {
	return ExpandPath(c.ConfigDirectory)
}

// Family returns the settings for the named provider family.
func (c *Config) Family(name string) (FamilyConfig, bool) {
	switch name {
	case FamilyOpenRouter:
		return c.OpenRouter, true
	case FamilyGoogle:
		return c.Google, true
	default:
		return FamilyConfig{}, false
	}
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv(EnvOpenRouterAPIKey); key != "" {
		c.OpenRouter.APIKey = key
	}
	if baseURL := os.Getenv(EnvOpenRouterBaseURL); baseURL != "" {
		c.OpenRouter.BaseURL = baseURL
	}
	if key := os.Getenv(EnvGoogleAPIKey); key != "" {
		c.Google.APIKey = key
	}
	if baseURL := os.Getenv(EnvGoogleBaseURL); baseURL != "" {
		c.Google.BaseURL = baseURL
	}
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv(EnvDebug)
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log carries raw provider payloads
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (%s=%s) ===", EnvDebug, os.Getenv(EnvDebug))
	DebugLog.Printf("Log path: %s", logPath)
}

// Load builds the runtime configuration: built-in defaults, then
// config.toml from the config directory, then environment overrides.
// A missing API key is not an error; the family simply stays unconfigured.
func Load() (*Config, error) {
	cfg := &Config{
		ConfigDirectory: GetConfigDir(),
		DataDirectory:   GetDefaultDataDir(),
		DefaultProvider: DefaultProviders()[0].ID,
		OpenRouter: FamilyConfig{
			BaseURL:      DefaultOpenRouterBaseURL,
			DefaultModel: DefaultOpenRouterModel,
		},
		Google: FamilyConfig{
			BaseURL:      DefaultGoogleBaseURL,
			DefaultModel: DefaultGoogleModel,
		},
		Providers: DefaultProviders(),
	}

	configDir := cfg.ConfigDir()
	userCfg, err := LoadUserConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.applyUserConfig(userCfg)
	cfg.applyEnvOverrides()

	if err := ValidateProviders(cfg.Providers); err != nil {
		return nil, fmt.Errorf("invalid provider list: %w", err)
	}
	if _, ok := FindProvider(cfg.Providers, cfg.DefaultProvider); !ok {
		cfg.DefaultProvider = cfg.Providers[0].ID
	}

	keybindings, err := LoadKeybindings(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load keybindings: %w", err)
	}
	cfg.KeyBindings = keybindings

	dataDir := cfg.DataDir()
	if err := EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyUserConfig(u *UserConfig) {
	if u == nil {
		return
	}
	if u.DataDirectory != "" {
		c.DataDirectory = u.DataDirectory
	}
	if u.DefaultProvider != "" {
		c.DefaultProvider = u.DefaultProvider
	}
	if u.OpenRouter.BaseURL != "" {
		c.OpenRouter.BaseURL = u.OpenRouter.BaseURL
	}
	if u.OpenRouter.DefaultModel != "" {
		c.OpenRouter.DefaultModel = u.OpenRouter.DefaultModel
	}
	if u.Google.BaseURL != "" {
		c.Google.BaseURL = u.Google.BaseURL
	}
	if u.Google.DefaultModel != "" {
		c.Google.DefaultModel = u.Google.DefaultModel
	}
	if len(u.Providers) > 0 {
		c.Providers = u.Providers
	}
}
