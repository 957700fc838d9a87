package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"tabchat/config"
	appmodel "tabchat/model"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.resize(msg.Width, msg.Height)
		a.ready = true
		a.updateViewportContent(true)

		// Re-render replies at the new width
		var cmds []tea.Cmd
		for _, m := range a.dataModel.Conversation.Messages() {
			if m.Role == appmodel.RoleAssistant && !m.IsError {
				cmds = append(cmds, a.renderMarkdownAsync(m.ID, m.Content))
			}
		}
		return a, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !a.dataModel.Conversation.IsLoading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		a.updateViewportContent(true)
		return a, cmd

	case chatResultMsg:
		return a.handleChatResult(msg)

	case markdownRenderedMsg:
		if !a.dataModel.Conversation.SetRendered(msg.MessageID, msg.Rendered) {
			return a, nil
		}
		a.updateViewportContent(true)
		return a, nil

	case clipboardCopiedMsg:
		if msg.Err != nil {
			a.notice = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			a.notice = fmt.Sprintf("Copied %s to clipboard", msg.What)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pressed := msg.String()

	// PRIORITY 0: Always-global shortcuts (quit, help toggle)
	if a.keys.Matches(pressed, "quit") || pressed == "ctrl+c" {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Quit requested")
		}
		a.dataModel.Quitting = true
		return a, tea.Quit
	}
	if a.keys.Matches(pressed, "help") {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		if pressed == "esc" {
			a.showHelp = false
		}
		return a, nil
	}

	if a.picker.visible {
		return a.handlePickerKey(msg)
	}

	a.notice = ""

	switch {
	case a.keys.Matches(pressed, "next_provider"):
		a.dataModel.NextProvider()
		return a, nil

	case a.keys.Matches(pressed, "prev_provider"):
		a.dataModel.PrevProvider()
		return a, nil

	case a.keys.Matches(pressed, "provider_picker"):
		a.picker.open()
		return a, nil

	case a.keys.Matches(pressed, "new_conversation"):
		if err := a.dataModel.NewConversation(); err != nil {
			a.notice = "Wait for the current response before starting over"
			return a, nil
		}
		a.updateViewportContent(true)
		return a, nil

	case a.keys.Matches(pressed, "yank_last_response"):
		last, ok := a.dataModel.Conversation.LastAssistant()
		if !ok {
			a.notice = "Nothing to copy yet"
			return a, nil
		}
		return a, copyToClipboard("last response", last.Content)

	case a.keys.Matches(pressed, "yank_conversation"):
		if a.dataModel.Conversation.Len() == 0 {
			a.notice = "Nothing to copy yet"
			return a, nil
		}
		return a, copyToClipboard("conversation", a.dataModel.Conversation.Transcript())

	case a.keys.Matches(pressed, "clear_input"):
		a.textarea.Reset()
		return a, nil

	case a.keys.Matches(pressed, "half_page_down"):
		a.viewport.HalfPageDown()
		return a, nil

	case a.keys.Matches(pressed, "half_page_up"):
		a.viewport.HalfPageUp()
		return a, nil

	case a.keys.Matches(pressed, "page_down"):
		a.viewport.PageDown()
		return a, nil

	case a.keys.Matches(pressed, "page_up"):
		a.viewport.PageUp()
		return a, nil

	case pressed == "enter":
		return a.send()
	}

	if i, ok := a.providerIndexForKey(pressed); ok {
		a.dataModel.SelectProvider(i)
		return a, nil
	}

	// Typing is ignored while a request is in flight
	if a.dataModel.Conversation.IsLoading() {
		return a, nil
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	return a, cmd
}

// send starts a round trip from the active tab. The input keeps its text
// when the send is refused.
func (a AppView) send() (tea.Model, tea.Cmd) {
	cmd, err := a.dataModel.SendMessage(a.textarea.Value())
	switch {
	case errors.Is(err, appmodel.ErrEmptyMessage):
		return a, nil
	case errors.Is(err, appmodel.ErrRequestInFlight):
		a.notice = "Waiting for the current response..."
		return a, nil
	case err != nil:
		a.notice = err.Error()
		return a, nil
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[UI] Sending to %s", a.dataModel.ActiveProvider().ID)
	}

	a.textarea.Reset()
	a.textarea.Blur()
	a.updateViewportContent(true)

	return a, tea.Batch(cmd, a.loadingSpinner.Tick)
}

func (a AppView) handleChatResult(msg chatResultMsg) (tea.Model, tea.Cmd) {
	if config.DebugLog != nil && msg.Err != nil {
		config.DebugLog.Printf("[UI] %s returned error: %v", msg.ProviderID, msg.Err)
	}

	entry := a.dataModel.ApplyResult(msg)

	focusCmd := a.textarea.Focus()
	a.updateViewportContent(true)

	if entry.IsError {
		return a, focusCmd
	}
	return a, tea.Batch(focusCmd, a.renderMarkdownAsync(entry.ID, entry.Content))
}

func (a AppView) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pressed := msg.String()

	switch {
	case pressed == "esc":
		a.picker.close()
		return a, nil

	case pressed == "enter":
		if p, ok := a.picker.choice(); ok {
			a.dataModel.SelectProviderID(p.ID)
		}
		a.picker.close()
		return a, nil

	case a.keys.Matches(pressed, "picker_down"):
		a.picker.move(1)
		return a, nil

	case a.keys.Matches(pressed, "picker_up"):
		a.picker.move(-1)
		return a, nil
	}

	var cmd tea.Cmd
	a.picker.input, cmd = a.picker.input.Update(msg)
	a.picker.refilter()
	return a, cmd
}
