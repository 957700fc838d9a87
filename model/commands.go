package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tabchat/config"
)

// SendCmd dispatches req off the UI loop. The result always arrives as a
// ChatResultMsg so the conversation can complete exactly once.
func SendCmd(d Dispatcher, req ChatRequest) tea.Cmd {
	return func() tea.Msg {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Model] Dispatching %d messages to %s", len(req.Messages), req.ProviderID)
		}

		resp, err := d.Send(context.Background(), req)
		return ChatResultMsg{
			ProviderID: req.ProviderID,
			Response:   resp,
			Err:        err,
		}
	}
}

// SendMessage starts a round trip from the active tab. It returns a nil
// command and the refusal error when the send cannot start.
func (m *Model) SendMessage(text string) (tea.Cmd, error) {
	p := m.ActiveProvider()
	req, err := m.Conversation.Begin(p, text)
	if err != nil {
		return nil, err
	}
	return SendCmd(m.Service, req), nil
}

// ApplyResult records the outcome of a dispatched request.
func (m *Model) ApplyResult(msg ChatResultMsg) Message {
	return m.Conversation.Complete(msg.ProviderID, msg.Response, msg.Err)
}
