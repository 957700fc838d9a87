package model

import (
	"tabchat/config"
)

// Model holds the core application data and business logic state
type Model struct {
	// Core dependencies
	Config  *config.Config
	Service Dispatcher

	// Application data
	Conversation *Conversation
	Providers    []config.ProviderDescriptor
	Active       int

	// Runtime state (not UI)
	Quitting bool

	// Application metadata
	Version string
}

// NewModel creates a new Model with the given configuration. The active
// tab starts on the configured default provider.
func NewModel(cfg *config.Config, svc Dispatcher, version string) *Model {
	m := &Model{
		Config:       cfg,
		Service:      svc,
		Conversation: NewConversation(),
		Providers:    cfg.Providers,
		Version:      version,
	}

	if !m.SelectProviderID(cfg.DefaultProvider) && config.DebugLog != nil {
		config.DebugLog.Printf("[Model] Default provider %q not in registry, using %s", cfg.DefaultProvider, m.ActiveProvider().ID)
	}

	return m
}

// ActiveProvider returns the descriptor of the selected tab.
func (m *Model) ActiveProvider() config.ProviderDescriptor {
	if len(m.Providers) == 0 {
		return config.ProviderDescriptor{}
	}
	return m.Providers[m.Active]
}

// ActiveConfigured reports whether the selected tab can send.
func (m *Model) ActiveConfigured() bool {
	return m.Service.IsConfigured(m.ActiveProvider().ID)
}

// SelectProvider switches to tab i, wrapping around in both directions.
func (m *Model) SelectProvider(i int) {
	n := len(m.Providers)
	if n == 0 {
		return
	}
	m.Active = ((i % n) + n) % n
}

func (m *Model) NextProvider() { m.SelectProvider(m.Active + 1) }

func (m *Model) PrevProvider() { m.SelectProvider(m.Active - 1) }

// SelectProviderID switches to the tab with the given ID.
func (m *Model) SelectProviderID(id string) bool {
	for i, p := range m.Providers {
		if p.ID == id {
			m.Active = i
			return true
		}
	}
	return false
}

// NewConversation discards the current conversation.
func (m *Model) NewConversation() error {
	return m.Conversation.Reset()
}
