package testutil

import (
	"context"
	"sync"

	"tabchat/model"
)

// MockAdapter implements model.Adapter for testing
type MockAdapter struct {
	// Configurable response
	SendFunc func(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)

	family string

	mu       sync.Mutex
	requests []model.ChatRequest
}

// NewMockAdapter creates a mock adapter that echoes the last message
func NewMockAdapter(family string) *MockAdapter {
	mock := &MockAdapter{family: family}
	mock.SendFunc = mock.defaultSend
	return mock
}

func (m *MockAdapter) defaultSend(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	last := req.Messages[len(req.Messages)-1]
	return &model.ChatResponse{
		Content:    "Mock response to: " + last.Content,
		ProviderID: req.ProviderID,
	}, nil
}

func (m *MockAdapter) Send(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.SendFunc(ctx, req)
}

func (m *MockAdapter) Family() string {
	return m.family
}

// Requests returns every request the adapter received, in order.
func (m *MockAdapter) Requests() []model.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ChatRequest(nil), m.requests...)
}

// MockDispatcher implements model.Dispatcher for testing
type MockDispatcher struct {
	SendFunc   func(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
	Configured map[string]bool

	mu    sync.Mutex
	calls int
}

// NewMockDispatcher creates a dispatcher that answers every request with
// reply and treats the given provider IDs as configured.
func NewMockDispatcher(reply string, configured ...string) *MockDispatcher {
	d := &MockDispatcher{Configured: make(map[string]bool)}
	for _, id := range configured {
		d.Configured[id] = true
	}
	d.SendFunc = func(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
		return &model.ChatResponse{Content: reply, ProviderID: req.ProviderID}, nil
	}
	return d
}

func (d *MockDispatcher) Send(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	return d.SendFunc(ctx, req)
}

func (d *MockDispatcher) IsConfigured(providerID string) bool {
	return d.Configured[providerID]
}

// Calls returns how many times Send was invoked.
func (d *MockDispatcher) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}
