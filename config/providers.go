package config

import (
	"fmt"

	"github.com/sahilm/fuzzy"
)

// Provider families. Several provider tabs may share one family; the family
// decides the wire protocol and which credentials are needed.
const (
	FamilyOpenRouter = "openrouter"
	FamilyGoogle     = "google"
)

// ProviderDescriptor describes one selectable provider tab.
type ProviderDescriptor struct {
	ID          string `toml:"id"`
	DisplayName string `toml:"display_name"`
	Icon        string `toml:"icon"`
	Color       string `toml:"color"`
	ModelID     string `toml:"model"`
	Family      string `toml:"family"`
}

// Label is the tab caption: icon followed by display name.
func (p ProviderDescriptor) Label() string {
	if p.Icon == "" {
		return p.DisplayName
	}
	return p.Icon + " " + p.DisplayName
}

// DefaultProviders returns the built-in provider list.
// A fresh slice is returned on every call.
func DefaultProviders() []ProviderDescriptor {
	return []ProviderDescriptor{
		{
			ID:          "openrouter-gpt",
			DisplayName: "OpenRouter GPT",
			Icon:        "🤖",
			Color:       "#10a37f",
			ModelID:     "openai/gpt-3.5-turbo",
			Family:      FamilyOpenRouter,
		},
		{
			ID:          "openrouter-claude",
			DisplayName: "Claude 3 Opus",
			Icon:        "🦉",
			Color:       "#ffb300",
			ModelID:     "anthropic/claude-3-opus",
			Family:      FamilyOpenRouter,
		},
		{
			ID:          "gemini",
			DisplayName: "Gemini 2.5 Pro",
			Icon:        "✨",
			Color:       "#4285f4",
			ModelID:     "gemini-2.5-pro",
			Family:      FamilyGoogle,
		},
	}
}

// FindProvider looks up a descriptor by ID.
func FindProvider(providers []ProviderDescriptor, id string) (ProviderDescriptor, bool) {
	for _, p := range providers {
		if p.ID == id {
			return p, true
		}
	}
	return ProviderDescriptor{}, false
}

// IsKnownFamily reports whether name is a family this build can talk to.
func IsKnownFamily(name string) bool {
	switch name {
	case FamilyOpenRouter, FamilyGoogle:
		return true
	default:
		return false
	}
}

// APIKeyEnvVar names the environment variable holding a family's API key.
func APIKeyEnvVar(family string) string {
	switch family {
	case FamilyOpenRouter:
		return EnvOpenRouterAPIKey
	case FamilyGoogle:
		return EnvGoogleAPIKey
	default:
		return ""
	}
}

// ValidateProviders checks a provider list loaded from config.toml:
// it must be non-empty, IDs must be unique and every family must be known.
func ValidateProviders(providers []ProviderDescriptor) error {
	if len(providers) == 0 {
		return fmt.Errorf("no providers defined")
	}

	seen := make(map[string]bool, len(providers))
	for i, p := range providers {
		if p.ID == "" {
			return fmt.Errorf("provider %d: id is required", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("provider %s: duplicate id", p.ID)
		}
		seen[p.ID] = true

		if !IsKnownFamily(p.Family) {
			return fmt.Errorf("provider %s: unknown family %q", p.ID, p.Family)
		}
	}
	return nil
}

// MatchProviders filters providers by a fuzzy query against the ID and
// display name, best match first. An empty query returns all providers.
func MatchProviders(providers []ProviderDescriptor, query string) []ProviderDescriptor {
	if query == "" {
		return providers
	}

	targets := make([]string, len(providers))
	for i, p := range providers {
		targets[i] = p.DisplayName + " " + p.ID
	}

	matches := fuzzy.Find(query, targets)
	result := make([]ProviderDescriptor, len(matches))
	for i, match := range matches {
		result[i] = providers[match.Index]
	}
	return result
}
