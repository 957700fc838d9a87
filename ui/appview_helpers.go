package ui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"tabchat/config"
)

// writeClipboard is swapped out in tests; the real clipboard needs a
// display server.
var writeClipboard = clipboard.WriteAll

// copyToClipboard writes text off the UI loop and reports what was copied.
func copyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		err := writeClipboard(text)
		if err != nil && config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Clipboard write failed: %v", err)
		}
		return clipboardCopiedMsg{What: what, Err: err}
	}
}

// providerIndexForKey maps primary+1 … primary+9 to a tab index.
func (a AppView) providerIndexForKey(pressed string) (int, bool) {
	for i := 0; i < len(a.dataModel.Providers) && i < 9; i++ {
		if pressed == a.keys.PrimaryKey(string(rune('1'+i))) {
			return i, true
		}
	}
	return 0, false
}
