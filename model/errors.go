package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured means the provider family has no credentials.
	ErrNotConfigured = errors.New("provider not configured")

	// ErrUnsupportedProvider means no family is mapped to the provider ID.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrInvalidResponseShape means the backend answered 2xx with a body
	// that does not match its documented schema.
	ErrInvalidResponseShape = errors.New("invalid response shape")

	ErrEmptyConversation = errors.New("no messages to send")
	ErrEmptyMessage      = errors.New("message is empty")
	ErrRequestInFlight   = errors.New("a request is already in progress")
)

// NotConfiguredError is returned by the dispatch service for a provider
// whose family was not registered at startup.
type NotConfiguredError struct {
	ProviderID string
	Family     string
	EnvVar     string // Variable the user has to set
}

func (e *NotConfiguredError) Error() string {
	if e.EnvVar == "" {
		return fmt.Sprintf("%s API key not configured", e.ProviderID)
	}
	return fmt.Sprintf("%s API key not configured. Set %s and restart.", e.ProviderID, e.EnvVar)
}

func (e *NotConfiguredError) Is(target error) bool {
	return target == ErrNotConfigured
}

// UnsupportedProviderError is returned for a provider ID with no family
// mapping at all. It indicates a broken provider list.
type UnsupportedProviderError struct {
	ProviderID string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider: %s", e.ProviderID)
}

func (e *UnsupportedProviderError) Is(target error) bool {
	return target == ErrUnsupportedProvider
}

// TransportError carries a non-2xx HTTP answer.
type TransportError struct {
	Provider   string
	StatusCode int
	Status     string
	Body       string
}

func (e *TransportError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if e.Body == "" {
		return fmt.Sprintf("%s API error: %s", e.Provider, status)
	}
	return fmt.Sprintf("%s API error: %s - %s", e.Provider, status, e.Body)
}

// ResponseShapeError is returned when a 2xx body cannot be mapped to a
// ChatResponse. Payload holds the raw body for the debug log and is kept
// out of Error().
type ResponseShapeError struct {
	Provider string
	Reason   string
	Payload  string
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("invalid response from %s API: %s", e.Provider, e.Reason)
}

func (e *ResponseShapeError) Is(target error) bool {
	return target == ErrInvalidResponseShape
}
