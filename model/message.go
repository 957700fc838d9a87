package model

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is the provider-agnostic wire shape of one conversation turn.
type ChatMessage struct {
	Role    Role
	Content string
}

// Message represents a chat message in the conversation
type Message struct {
	ID         string
	Role       Role
	Content    string
	ProviderID string // Tab that was active when the message was produced
	Usage      *Usage
	IsError    bool   // Assistant entry synthesized from a failed send
	Rendered   string // Cached rendered markdown
	Timestamp  time.Time
}

func newMessage(role Role, content, providerID string) Message {
	return Message{
		ID:         uuid.NewString(),
		Role:       role,
		Content:    content,
		ProviderID: providerID,
		Rendered:   content,
		Timestamp:  time.Now(),
	}
}

// ChatMessage projects the entry onto the shape sent to providers.
func (m Message) ChatMessage() ChatMessage {
	return ChatMessage{Role: m.Role, Content: m.Content}
}
