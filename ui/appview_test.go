package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tabchat/config"
	"tabchat/model"
	"tabchat/provider/testutil"
)

func newTestView(t *testing.T, reply string, configured ...string) (AppView, *testutil.MockDispatcher) {
	t.Helper()

	cfg := &config.Config{
		DefaultProvider: "openrouter-gpt",
		Providers:       config.DefaultProviders(),
		KeyBindings:     config.DefaultKeybindings(),
	}
	d := testutil.NewMockDispatcher(reply, configured...)

	v := NewAppView(cfg, d, "test")
	next, _ := v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppView), d
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func runeKeys(s string) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		keys = append(keys, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return keys
}

func press(t *testing.T, v AppView, keys ...tea.KeyMsg) (AppView, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = v.Update(k)
		v = next.(AppView)
	}
	return v, cmd
}

// collect runs cmd and any batched commands, returning the messages produced.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func findResult(t *testing.T, msgs []tea.Msg) chatResultMsg {
	t.Helper()
	for _, m := range msgs {
		if r, ok := m.(chatResultMsg); ok {
			return r
		}
	}
	t.Fatalf("no chat result among %d messages", len(msgs))
	return chatResultMsg{}
}

func TestSendRoundTrip(t *testing.T) {
	v, d := newTestView(t, "Hi there", "openrouter-gpt")

	v.textarea.SetValue("hello")
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	conv := v.dataModel.Conversation
	if !conv.IsLoading() {
		t.Fatal("expected loading after send")
	}
	if conv.Len() != 1 {
		t.Fatalf("expected user entry before reply, got %d entries", conv.Len())
	}
	if v.textarea.Value() != "" {
		t.Errorf("input not cleared: %q", v.textarea.Value())
	}

	result := findResult(t, collect(cmd))
	if result.ProviderID != "openrouter-gpt" {
		t.Errorf("result provider = %q", result.ProviderID)
	}

	next, _ := v.Update(result)
	v = next.(AppView)

	if conv.IsLoading() {
		t.Error("loading not cleared after result")
	}
	msgs := conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(msgs))
	}
	if msgs[1].Role != model.RoleAssistant || msgs[1].Content != "Hi there" {
		t.Errorf("unexpected reply entry: %+v", msgs[1])
	}
	if d.Calls() != 1 {
		t.Errorf("dispatcher calls = %d, want 1", d.Calls())
	}
}

func TestSendErrorEntry(t *testing.T) {
	v, d := newTestView(t, "", "openrouter-gpt")
	d.SendFunc = func(_ context.Context, _ model.ChatRequest) (*model.ChatResponse, error) {
		return nil, errors.New("boom")
	}

	v.textarea.SetValue("hello")
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	next, _ := v.Update(findResult(t, collect(cmd)))
	v = next.(AppView)

	msgs := v.dataModel.Conversation.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(msgs))
	}
	if !msgs[1].IsError {
		t.Error("expected error entry")
	}
	if !strings.HasPrefix(msgs[1].Content, model.ErrorPrefix) || !strings.Contains(msgs[1].Content, "boom") {
		t.Errorf("error entry content = %q", msgs[1].Content)
	}
}

func TestSendRefusedWhileLoading(t *testing.T) {
	v, d := newTestView(t, "ok", "openrouter-gpt")

	v.textarea.SetValue("first")
	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	v.textarea.SetValue("second")
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no command for a refused send")
	}
	if v.dataModel.Conversation.Len() != 1 {
		t.Errorf("entries = %d, want 1", v.dataModel.Conversation.Len())
	}
	if v.textarea.Value() != "second" {
		t.Errorf("refused send should keep input, got %q", v.textarea.Value())
	}
	if v.notice == "" {
		t.Error("expected a notice for the refused send")
	}
	if d.Calls() != 0 {
		t.Errorf("dispatcher called %d times before commands ran", d.Calls())
	}
}

func TestEnterOnBlankInput(t *testing.T) {
	v, _ := newTestView(t, "ok", "openrouter-gpt")

	v.textarea.SetValue("   ")
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("blank input should not send")
	}
	if v.dataModel.Conversation.Len() != 0 {
		t.Error("blank input should not add entries")
	}
}

func TestTabSwitching(t *testing.T) {
	tests := []struct {
		name   string
		keys   []tea.KeyMsg
		wantID string
	}{
		{"tab moves right", []tea.KeyMsg{{Type: tea.KeyTab}}, "openrouter-claude"},
		{"shift+tab wraps left", []tea.KeyMsg{{Type: tea.KeyShiftTab}}, "gemini"},
		{"tab wraps right", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyTab}, {Type: tea.KeyTab}}, "openrouter-gpt"},
		{"alt+3 jumps", []tea.KeyMsg{altKey('3')}, "gemini"},
		{"alt+9 beyond tabs ignored", []tea.KeyMsg{altKey('9')}, "openrouter-gpt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newTestView(t, "ok")
			v, _ = press(t, v, tt.keys...)
			if got := v.dataModel.ActiveProvider().ID; got != tt.wantID {
				t.Errorf("active = %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestProviderPicker(t *testing.T) {
	v, _ := newTestView(t, "ok")

	v, _ = press(t, v, altKey('p'))
	if !v.picker.visible {
		t.Fatal("picker did not open")
	}

	v, _ = press(t, v, runeKeys("gem")...)
	if len(v.picker.matches) != 1 || v.picker.matches[0].ID != "gemini" {
		t.Fatalf("matches = %+v", v.picker.matches)
	}

	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEnter})
	if v.picker.visible {
		t.Error("picker still visible after choosing")
	}
	if got := v.dataModel.ActiveProvider().ID; got != "gemini" {
		t.Errorf("active = %q, want gemini", got)
	}
	if v.dataModel.Conversation.Len() != 0 {
		t.Error("enter in the picker must not send")
	}
}

func TestProviderPickerEscape(t *testing.T) {
	v, _ := newTestView(t, "ok")

	v, _ = press(t, v, altKey('p'), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEsc})
	if v.picker.visible {
		t.Error("esc should close the picker")
	}
	if got := v.dataModel.ActiveProvider().ID; got != "openrouter-gpt" {
		t.Errorf("esc changed the active tab to %q", got)
	}
}

func TestNewConversationKey(t *testing.T) {
	v, _ := newTestView(t, "ok", "openrouter-gpt")

	v.textarea.SetValue("hello")
	v, cmd := press(t, v, tea.KeyMsg{Type: tea.KeyEnter})

	// Refused while the reply is pending
	v, _ = press(t, v, altKey('n'))
	if v.dataModel.Conversation.Len() != 1 {
		t.Fatal("conversation reset while loading")
	}

	next, _ := v.Update(findResult(t, collect(cmd)))
	v = next.(AppView)

	v, _ = press(t, v, altKey('n'))
	if v.dataModel.Conversation.Len() != 0 {
		t.Errorf("entries after reset = %d", v.dataModel.Conversation.Len())
	}
}

func TestYankLastResponse(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { writeClipboard = orig }()

	v, _ := newTestView(t, "the answer", "openrouter-gpt")

	v, cmd := press(t, v, altKey('y'))
	if cmd != nil || v.notice == "" {
		t.Error("expected a notice and no command with nothing to copy")
	}

	v.textarea.SetValue("question")
	v, cmd = press(t, v, tea.KeyMsg{Type: tea.KeyEnter})
	next, _ := v.Update(findResult(t, collect(cmd)))
	v = next.(AppView)

	v, cmd = press(t, v, altKey('y'))
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(msgs))
	}
	next, _ = v.Update(msgs[0])
	v = next.(AppView)

	if copied != "the answer" {
		t.Errorf("copied %q", copied)
	}
	if !strings.Contains(v.notice, "last response") {
		t.Errorf("notice = %q", v.notice)
	}
}

func TestNoticeLineUnconfigured(t *testing.T) {
	v, _ := newTestView(t, "ok", "openrouter-gpt")

	if line := v.noticeLine(); strings.Contains(line, "not configured") {
		t.Errorf("configured tab shows warning: %q", line)
	}

	v, _ = press(t, v, altKey('3'))
	line := v.noticeLine()
	if !strings.Contains(line, "not configured") || !strings.Contains(line, config.EnvGoogleAPIKey) {
		t.Errorf("notice = %q", line)
	}
}

func TestViewStates(t *testing.T) {
	cfg := &config.Config{
		DefaultProvider: "gemini",
		Providers:       config.DefaultProviders(),
	}
	v := NewAppView(cfg, testutil.NewMockDispatcher("ok"), "test")
	if got := v.View(); got != "Loading tabchat..." {
		t.Errorf("view before size = %q", got)
	}

	next, _ := v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v = next.(AppView)
	if !strings.Contains(v.View(), "Gemini") {
		t.Error("tab bar missing provider label")
	}

	v, _ = press(t, v, altKey('h'))
	if !strings.Contains(v.View(), "Keyboard Shortcuts") {
		t.Error("help overlay not shown")
	}
	v, _ = press(t, v, tea.KeyMsg{Type: tea.KeyEsc})
	if v.showHelp {
		t.Error("esc should close help")
	}
}
