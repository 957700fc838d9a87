package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// KeyBindingsConfig holds the modifier customization and optional per-action overrides
type KeyBindingsConfig struct {
	Modifiers ModifierConfig    `toml:"modifiers"`
	Actions   map[string]string `toml:"actions"`
}

type ModifierConfig struct {
	Primary string `toml:"primary"` // e.g., "alt", "ctrl", "meta", "super"
}

// actionDef defines the default modifier and key for an action
type actionDef struct {
	modifier string // "primary" or "none"
	key      string // "j", "k", "enter", etc.
}

// actionRegistry maps action names to their default keybindings
// Users can override any of these in the [actions] section of keybindings.toml
var actionRegistry = map[string]actionDef{
	// Main view - Modal toggles
	"help":            {"primary", "h"},
	"provider_picker": {"primary", "p"},

	// Main view - Provider tabs
	"next_provider": {"none", "tab"},
	"prev_provider": {"none", "shift+tab"},

	// Main view - Scrolling
	"half_page_down": {"primary", "j"},
	"half_page_up":   {"primary", "k"},
	"page_down":      {"none", "pgdown"},
	"page_up":        {"none", "pgup"},

	// Main view - Actions
	"quit":               {"primary", "q"},
	"new_conversation":   {"primary", "n"},
	"yank_last_response": {"primary", "y"},
	"yank_conversation":  {"primary", "c"},
	"clear_input":        {"primary", "u"},

	// Provider picker - navigation works while typing the filter
	"picker_down": {"none", "down"},
	"picker_up":   {"none", "up"},
}

// DefaultKeybindings returns default configuration
func DefaultKeybindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Modifiers: ModifierConfig{
			Primary: "alt",
		},
	}
}

// LoadKeybindings loads keybindings from the config directory
func LoadKeybindings(configDir string) (*KeyBindingsConfig, error) {
	cfg := DefaultKeybindings()
	keybindingsPath := GetKeybindingsPath(configDir)

	if !FileExists(keybindingsPath) {
		if err := CreateDefaultKeybindings(configDir); err != nil {
			return nil, fmt.Errorf("failed to create keybindings: %w", err)
		}
		return cfg, nil
	}

	_, err := toml.DecodeFile(keybindingsPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keybindings: %w", err)
	}

	if cfg.Modifiers.Primary == "" {
		cfg.Modifiers.Primary = "alt"
	}
	if ok, warning := cfg.Validate(); !ok {
		return nil, fmt.Errorf("invalid keybindings: %s", warning)
	}

	return cfg, nil
}

// CreateDefaultKeybindings creates default keybindings.toml
func CreateDefaultKeybindings(configDir string) error {
	if err := EnsureDir(configDir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	keybindingsPath := GetKeybindingsPath(configDir)
	if FileExists(keybindingsPath) {
		return nil
	}

	content := GenerateKeybindingsTemplate()
	if err := os.WriteFile(keybindingsPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write keybindings: %w", err)
	}

	return nil
}

// GenerateKeybindingsTemplate returns the default TOML template
func GenerateKeybindingsTemplate() string {
	return `# tabchat keybindings
# Location: ~/.config/tabchat/keybindings.toml
# This file uses TOML format: https://toml.io

# Change these to avoid conflicts with your window manager/terminal multiplexer

[modifiers]
primary = "alt"   # Default: alt (Options: alt, ctrl, meta, super)

# For tmux users (Alt may conflict):
#   primary = "ctrl"

# Per-action overrides. Available actions:
#   help, provider_picker, next_provider, prev_provider,
#   half_page_down, half_page_up, page_down, page_up,
#   quit, new_conversation, yank_last_response, yank_conversation,
#   clear_input, picker_down, picker_up

[actions]
# next_provider = "ctrl+right"
# prev_provider = "ctrl+left"
# quit = "ctrl+shift+q"
`
}

// Primary returns the primary modifier
func (kb *KeyBindingsConfig) Primary() string {
	if kb.Modifiers.Primary == "" {
		return "alt"
	}
	return kb.Modifiers.Primary
}

// PrimaryKey joins the primary modifier and key: PrimaryKey("p") is "alt+p".
func (kb *KeyBindingsConfig) PrimaryKey(key string) string {
	return kb.Primary() + "+" + key
}

// GetActionKey returns the keybinding for an action, preferring the user
// override over the registry default. Unknown actions return "".
func (kb *KeyBindingsConfig) GetActionKey(action string) string {
	if override, ok := kb.Actions[action]; ok && override != "" {
		return override
	}

	def, ok := actionRegistry[action]
	if !ok {
		return ""
	}
	if def.modifier == "primary" {
		return kb.PrimaryKey(def.key)
	}
	return def.key
}

// Matches reports whether a pressed key string triggers action.
func (kb *KeyBindingsConfig) Matches(pressed, action string) bool {
	key := kb.GetActionKey(action)
	return key != "" && pressed == key
}

// DisplayActionKey returns the binding formatted for the help screen
// Example: "ctrl+shift+j" -> "Ctrl+Shift+J"
func (kb *KeyBindingsConfig) DisplayActionKey(action string) string {
	key := kb.GetActionKey(action)
	if key == "" {
		return ""
	}

	parts := strings.Split(key, "+")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "+")
}

// Validate rejects modifiers that would swallow ordinary typing.
// Returns (isValid, warningMessage)
func (kb *KeyBindingsConfig) Validate() (bool, string) {
	primary := kb.Primary()

	if primary == "shift" {
		return false, "Shift alone conflicts with typing"
	}

	if strings.Contains(primary, "ctrl") {
		return true, "Warning: Ctrl may conflict with terminal shortcuts (Ctrl+C, Ctrl+Z, Ctrl+D)"
	}

	return true, ""
}
