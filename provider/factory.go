package provider

import (
	"fmt"

	"tabchat/model"
)

// NewAdapter creates an adapter based on configuration.
//
// This is the centralized factory function for creating any adapter type.
// It dispatches to the family's constructor based on Config.Family.
//
// Supported families:
//   - FamilyOpenRouter: OpenRouter chat completions (openai-go SDK)
//   - FamilyGoogle: Gemini generateContent (net/http)
//
// Returns an error if:
//   - The family is unknown
//   - The family constructor fails (e.g., missing API key)
//
// Example:
//
//	a, err := provider.NewAdapter(provider.Config{
//	    Family: provider.FamilyGoogle,
//	    APIKey: os.Getenv("TABCHAT_GOOGLE_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewAdapter(cfg Config) (model.Adapter, error) {
	switch cfg.Family {
	case FamilyOpenRouter:
		a, err := NewOpenRouterAdapter(cfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	case FamilyGoogle:
		a, err := NewGoogleAdapter(cfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown provider family: %s", cfg.Family)
	}
}
