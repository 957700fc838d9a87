package provider

import (
	"context"
	"net/http"

	"tabchat/config"
	"tabchat/model"
)

// Service routes chat requests to the adapter registered for the target
// provider's family. It is read-only after NewService returns and safe for
// concurrent use.
type Service struct {
	providers []config.ProviderDescriptor
	byID      map[string]config.ProviderDescriptor
	adapters  map[Family]model.Adapter
}

type serviceOptions struct {
	httpClient *http.Client
}

// ServiceOption configures NewService.
type ServiceOption func(*serviceOptions)

// WithHTTPClient makes every adapter use hc instead of http.DefaultClient.
func WithHTTPClient(hc *http.Client) ServiceOption {
	return func(o *serviceOptions) {
		o.httpClient = hc
	}
}

// NewService registers one adapter per family that has an API key.
// Families without credentials stay unregistered; their providers can still
// be selected but every send fails with *model.NotConfiguredError.
func NewService(providers []config.ProviderDescriptor, creds map[Family]Credentials, opts ...ServiceOption) *Service {
	var o serviceOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Service{
		providers: append([]config.ProviderDescriptor(nil), providers...),
		byID:      make(map[string]config.ProviderDescriptor, len(providers)),
		adapters:  make(map[Family]model.Adapter),
	}
	for _, p := range providers {
		s.byID[p.ID] = p
	}

	for family, c := range creds {
		if c.APIKey == "" {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Provider] %s not configured (set %s)", displayName(family), config.APIKeyEnvVar(string(family)))
			}
			continue
		}

		a, err := NewAdapter(Config{
			Family:     family,
			BaseURL:    c.BaseURL,
			APIKey:     c.APIKey,
			Model:      c.DefaultModel,
			HTTPClient: o.httpClient,
		})
		if err != nil {
			// Log warning but don't fail - allow app to start
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Provider] Warning: failed to initialize %s: %v", family, err)
			}
			continue
		}

		s.adapters[family] = a
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Provider] Registered %s adapter", family)
		}
	}

	return s
}

// InitializeService builds the Service for the application from the loaded
// configuration. It is called once at startup.
func InitializeService(cfg *config.Config) *Service {
	creds := make(map[Family]Credentials)
	for _, name := range []string{config.FamilyOpenRouter, config.FamilyGoogle} {
		fc, _ := cfg.Family(name)
		if !fc.Configured() {
			if config.DebugLog != nil {
				config.DebugLog.Printf("[Provider] %s not configured (set %s)", displayName(Family(name)), config.APIKeyEnvVar(name))
			}
			continue
		}
		creds[Family(name)] = credentialsFrom(fc)
	}
	return NewService(cfg.Providers, creds)
}

func credentialsFrom(f config.FamilyConfig) Credentials {
	return Credentials{
		APIKey:       f.APIKey,
		BaseURL:      f.BaseURL,
		DefaultModel: f.DefaultModel,
	}
}

// Send implements model.Dispatcher. Adapter results and errors are
// returned unchanged.
func (s *Service) Send(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	p, ok := s.byID[req.ProviderID]
	if !ok {
		return nil, &model.UnsupportedProviderError{ProviderID: req.ProviderID}
	}

	if !config.IsKnownFamily(p.Family) {
		return nil, &model.UnsupportedProviderError{ProviderID: p.ID}
	}

	family := Family(p.Family)
	a, ok := s.adapters[family]
	if !ok {
		return nil, &model.NotConfiguredError{
			ProviderID: p.ID,
			Family:     p.Family,
			EnvVar:     config.APIKeyEnvVar(string(family)),
		}
	}

	if req.ModelID == "" {
		req.ModelID = p.ModelID
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Provider] %s -> %s adapter", p.ID, family)
	}
	return a.Send(ctx, req)
}

// IsConfigured reports whether sends to providerID can reach a backend.
func (s *Service) IsConfigured(providerID string) bool {
	p, ok := s.byID[providerID]
	if !ok {
		return false
	}
	_, ok = s.adapters[Family(p.Family)]
	return ok
}

// ConfiguredProviders returns the IDs of providers whose family is
// registered, in registry order.
func (s *Service) ConfiguredProviders() []string {
	var ids []string
	for _, p := range s.providers {
		if s.IsConfigured(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// Providers returns a copy of the provider registry.
func (s *Service) Providers() []config.ProviderDescriptor {
	return append([]config.ProviderDescriptor(nil), s.providers...)
}

func (s *Service) Descriptor(id string) (config.ProviderDescriptor, bool) {
	p, ok := s.byID[id]
	return p, ok
}
