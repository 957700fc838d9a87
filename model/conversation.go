package model

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"tabchat/config"
)

// ErrorPrefix marks assistant entries synthesized from a failed send.
const ErrorPrefix = "❌ Error: "

// Conversation is the ordered message list shared by all provider tabs,
// plus the loading flag that allows one outstanding request at a time.
type Conversation struct {
	mu       sync.Mutex
	messages []Message
	loading  bool
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Begin appends the user's message and marks the conversation as loading.
// The returned request replays the full prior history followed by text.
func (c *Conversation) Begin(p config.ProviderDescriptor, text string) (ChatRequest, error) {
	if strings.TrimSpace(text) == "" {
		return ChatRequest{}, ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return ChatRequest{}, ErrRequestInFlight
	}

	req, err := NewChatRequest(p.ID, p.ModelID, c.historyLocked(), ChatMessage{Role: RoleUser, Content: text})
	if err != nil {
		return ChatRequest{}, err
	}

	c.messages = append(c.messages, newMessage(RoleUser, text, p.ID))
	c.loading = true

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Conversation] Begin %s with %d turns", p.ID, len(req.Messages))
	}

	return req, nil
}

// Complete appends exactly one assistant entry for the outcome of a send
// and clears the loading flag. A nil response without an error is treated
// as an invalid response.
func (c *Conversation) Complete(providerID string, resp *ChatResponse, err error) Message {
	if err == nil && (resp == nil || resp.Content == "") {
		err = &ResponseShapeError{Provider: providerID, Reason: "empty response"}
	}

	var msg Message
	if err != nil {
		msg = newMessage(RoleAssistant, ErrorPrefix+err.Error(), providerID)
		msg.IsError = true
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Conversation] %s failed: %v", providerID, err)
		}
	} else {
		msg = newMessage(RoleAssistant, resp.Content, providerID)
		msg.Usage = resp.Usage
	}

	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.loading = false
	c.mu.Unlock()

	return msg
}

// Send runs a complete round trip synchronously. The returned error is
// non-nil only when the send was refused; dispatch failures end up in the
// returned error entry.
func (c *Conversation) Send(ctx context.Context, d Dispatcher, p config.ProviderDescriptor, text string) (msg Message, err error) {
	req, err := c.Begin(p, text)
	if err != nil {
		return Message{}, err
	}

	var (
		resp    *ChatResponse
		sendErr error
	)
	defer func() {
		if r := recover(); r != nil {
			sendErr = fmt.Errorf("dispatch panicked: %v", r)
			resp = nil
		}
		msg = c.Complete(p.ID, resp, sendErr)
	}()

	resp, sendErr = d.Send(ctx, req)
	return msg, nil
}

// Messages returns a copy of all entries in display order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// History returns the turns replayed to providers. Error entries are
// replayed as assistant turns carrying their error text.
func (c *Conversation) History() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.historyLocked()
}

func (c *Conversation) historyLocked() []ChatMessage {
	history := make([]ChatMessage, 0, len(c.messages))
	for _, m := range c.messages {
		history = append(history, m.ChatMessage())
	}
	return history
}

func (c *Conversation) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// LastAssistant returns the most recent successful reply.
func (c *Conversation) LastAssistant() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.messages) - 1; i >= 0; i-- {
		m := c.messages[i]
		if m.Role == RoleAssistant && !m.IsError {
			return m, true
		}
	}
	return Message{}, false
}

// SetRendered caches rendered markdown for the entry with the given ID.
// It reports false when no such entry exists, which happens when a render
// finishes after the conversation was reset.
func (c *Conversation) SetRendered(id, rendered string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Rendered = rendered
			return true
		}
	}
	return false
}

// Reset clears all entries. It is refused while a request is in flight.
func (c *Conversation) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return ErrRequestInFlight
	}
	c.messages = nil
	return nil
}

// Transcript formats the conversation as plain text for the clipboard.
func (c *Conversation) Transcript() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	for i, m := range c.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch m.Role {
		case RoleUser:
			b.WriteString("You: ")
		default:
			fmt.Fprintf(&b, "Assistant (%s): ", m.ProviderID)
		}
		b.WriteString(m.Content)
	}
	return b.String()
}
