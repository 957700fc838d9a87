package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"tabchat/config"
	"tabchat/model"
)

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "Gemini", 10, "Gemini"},
		{"truncated", "OpenRouter GPT", 8, "OpenRou…"},
		{"zero width", "Gemini", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateLabel(tt.in, tt.width); got != tt.want {
				t.Errorf("truncateLabel(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}

	// Wide runes count as two cells
	if got := truncateLabel("✨ Gemini 2.5 Pro", 6); runewidth.StringWidth(got) > 6 {
		t.Errorf("label %q exceeds 6 cells", got)
	}
}

func TestTabLabelWidth(t *testing.T) {
	tests := []struct {
		total, tabs, want int
	}{
		{120, 3, 24},
		{60, 3, 15},
		{20, 3, minTabLabelWidth},
		{80, 0, maxTabLabelWidth},
	}

	for _, tt := range tests {
		if got := tabLabelWidth(tt.total, tt.tabs); got != tt.want {
			t.Errorf("tabLabelWidth(%d, %d) = %d, want %d", tt.total, tt.tabs, got, tt.want)
		}
	}
}

func TestRenderTabBarMarksUnconfigured(t *testing.T) {
	providers := config.DefaultProviders()
	configured := func(id string) bool { return id != "gemini" }

	bar := renderTabBar(providers, 0, configured, 120)
	if strings.Count(bar, " !") != 1 {
		t.Errorf("expected one unconfigured marker in %q", bar)
	}
	for _, p := range providers {
		if !strings.Contains(bar, p.DisplayName) {
			t.Errorf("tab bar missing %q", p.DisplayName)
		}
	}
}

func TestStripCodeBlockPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  ┃ fmt.Println()", "fmt.Println()"},
		{"┃x", "x"},
		{"plain line", "plain line"},
	}

	for _, tt := range tests {
		if got := stripCodeBlockPrefix(tt.in); got != tt.want {
			t.Errorf("stripCodeBlockPrefix(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFrameCodeBlocks(t *testing.T) {
	in := "before\n┃ line one\n┃ line two\nafter"
	out := frameCodeBlocks(in, 40)

	if !strings.Contains(out, "[code]") {
		t.Error("missing code block header")
	}
	if strings.Contains(out, codeBlockBar) {
		t.Error("code block bar not stripped")
	}
	lines := strings.Split(out, "\n")
	if lines[0] != "before" || lines[len(lines)-1] != "after" {
		t.Errorf("surrounding text moved: %q", out)
	}
}

func TestPreprocessLinks(t *testing.T) {
	got := preprocessLinks("see [docs](https://example.com/a) now")
	if got != "see https://example.com/a now" {
		t.Errorf("preprocessLinks = %q", got)
	}
}

func TestFormatUserMessage(t *testing.T) {
	out := formatUserMessage("[10:00]", "You", "line one\nline two")
	if strings.Count(out, "┃") != 3 {
		t.Errorf("expected a bar on header and each line: %q", out)
	}
	if !strings.Contains(out, "line two") {
		t.Error("content missing")
	}
}

func TestFormatUsage(t *testing.T) {
	if formatUsage(nil) != "" {
		t.Error("nil usage should render empty")
	}
	got := formatUsage(&model.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5})
	if !strings.Contains(got, "3 prompt") || !strings.Contains(got, "5 total") {
		t.Errorf("formatUsage = %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out := renderMarkdown("# Title\n\nSome **bold** text", 80)
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Errorf("rendered markdown lost content: %q", out)
	}
}

func TestDisplayKey(t *testing.T) {
	if got := displayKey("alt+1-9"); got != "Alt+1-9" {
		t.Errorf("displayKey = %q", got)
	}
}

func TestStartupErrorView(t *testing.T) {
	v := NewStartupErrorView("Configuration Error", errors.New("invalid provider list: no providers defined"), "Fix config.toml")

	next, _ := v.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	v = next.(StartupErrorView)

	out := v.View()
	for _, want := range []string{"Configuration Error", "no providers defined", "Fix config.toml"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	if _, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Error("enter should quit")
	}
}
