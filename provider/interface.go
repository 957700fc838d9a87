// Package provider translates tabchat conversations into each provider
// family's wire format and routes requests to the right backend.
//
// tabchat talks to several hosted LLMs through a small number of provider
// families. A family owns a wire protocol and a set of credentials; any
// number of provider tabs can share a family and differ only in the model
// they ask for. The UI and the conversation flow only ever see
// model.ChatRequest and model.ChatResponse.
//
// # Families
//
//   - FamilyOpenRouter: OpenAI-compatible chat completions, served by
//     OpenRouterAdapter on top of the official openai-go SDK
//   - FamilyGoogle: the Gemini generateContent endpoint, served by
//     GoogleAdapter over plain net/http
//
// # Type Conversions
//
// All conversions between tabchat's provider-agnostic types and the wire
// types live in conversions.go:
//   - ConvertToOpenAIMessages / ConvertOpenAIUsage
//   - ConvertToGeminiContents / ConvertGeminiUsage / GeminiRole
//
// # Architecture
//
//   - model.Adapter defines the per-family contract (interface)
//   - provider.NewAdapter() factory creates adapters from a Config
//   - provider.Service maps provider IDs to families and dispatches
//   - provider.InitializeService() builds the Service from config.Config
//
// # Usage
//
//	svc := provider.InitializeService(cfg)
//	req, _ := model.NewChatRequest("gemini", "gemini-2.5-pro", history, next)
//	resp, err := svc.Send(ctx, req)
//	if err != nil {
//	    // *model.NotConfiguredError, *model.TransportError, ...
//	}
package provider

import (
	"net/http"

	"tabchat/config"
)

// Note: The Adapter and Dispatcher interfaces are defined in the model package
// (model/provider.go) to avoid import cycles. This package implements them.

// Family identifies a provider family and the adapter that serves it.
type Family string

const (
	FamilyOpenRouter Family = config.FamilyOpenRouter
	FamilyGoogle     Family = config.FamilyGoogle
)

// Credentials are the per-family settings handed to the dispatch service.
// A family with an empty APIKey is left unregistered.
type Credentials struct {
	APIKey       string
	BaseURL      string
	DefaultModel string
}

// Config holds adapter-specific configuration.
type Config struct {
	Family     Family
	BaseURL    string
	APIKey     string
	Model      string       // Used when a request carries no model ID
	HTTPClient *http.Client // Optional; defaults to http.DefaultClient
}

// displayName is the provider name used in error messages.
func displayName(family Family) string {
	switch family {
	case FamilyOpenRouter:
		return "OpenRouter"
	case FamilyGoogle:
		return "Google"
	default:
		return string(family)
	}
}
