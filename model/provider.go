package model

import "context"

// Adapter translates ChatRequests into one provider family's wire format
// and maps the family's reply back into a ChatResponse.
//
// This interface is defined in the model package (not provider package) so
// the conversation flow and the UI can depend on it without importing the
// concrete adapters.
type Adapter interface {
	// Send issues exactly one HTTP call. Failures are *TransportError,
	// *ResponseShapeError, or a wrapped network/context error.
	Send(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Family returns the provider family name, e.g. "openrouter".
	Family() string
}

// Dispatcher routes a request to the adapter owning its provider.
type Dispatcher interface {
	Send(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// IsConfigured is advisory: a send to an unconfigured provider still
	// fails cleanly on its own.
	IsConfigured(providerID string) bool
}
