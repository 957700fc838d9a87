package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"tabchat/config"
)

// providerPicker is the fuzzy "jump to tab" overlay.
type providerPicker struct {
	visible  bool
	input    textinput.Model
	all      []config.ProviderDescriptor
	matches  []config.ProviderDescriptor
	selected int
}

func newProviderPicker(providers []config.ProviderDescriptor) providerPicker {
	input := textinput.New()
	input.Prompt = "Filter: "
	input.CharLimit = 64

	return providerPicker{
		input:   input,
		all:     providers,
		matches: providers,
	}
}

func (p *providerPicker) open() {
	p.visible = true
	p.input.SetValue("")
	p.input.Focus()
	p.refilter()
}

func (p *providerPicker) close() {
	p.visible = false
	p.input.Blur()
}

// refilter applies the current query and resets the selection.
func (p *providerPicker) refilter() {
	p.matches = config.MatchProviders(p.all, p.input.Value())
	p.selected = 0
}

func (p *providerPicker) move(delta int) {
	if len(p.matches) == 0 {
		return
	}
	p.selected = (p.selected + delta + len(p.matches)) % len(p.matches)
}

// choice returns the highlighted provider, if any.
func (p providerPicker) choice() (config.ProviderDescriptor, bool) {
	if p.selected < 0 || p.selected >= len(p.matches) {
		return config.ProviderDescriptor{}, false
	}
	return p.matches[p.selected], true
}

func renderProviderPicker(p providerPicker, activeID string, configured func(string) bool, width, height int) string {
	// Modal dimensions
	modalWidth := width - 10
	if modalWidth > 60 {
		modalWidth = 60
	}
	if modalWidth < 20 {
		modalWidth = 20
	}

	titleSection := TitleStyle.
		Align(lipgloss.Center).
		Width(modalWidth).
		Render("Switch Provider")

	headerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(p.input.View())

	var lines []string
	if len(p.matches) == 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(dimColor).
			Italic(true).
			Align(lipgloss.Center).
			Width(modalWidth).
			Render("No matches found"))
	}
	for i, d := range p.matches {
		indicator := "  "
		if i == p.selected {
			indicator = "▶ "
		}

		line := indicator + truncateLabel(d.Label(), modalWidth-24)
		if d.ID == activeID {
			line += HighlightStyle.Render(" (current)")
		}
		if !configured(d.ID) {
			line += WarningStyle.Render(" (no key)")
		}
		line += "  " + DimStyle.Render(d.ModelID)

		if i == p.selected {
			line = SelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}

	count := DimStyle.Render(fmt.Sprintf("%d of %d providers", len(p.matches), len(p.all)))
	footer := FormatFooter("↑/↓", "Navigate", "Enter", "Switch", "Esc", "Close")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleSection,
		headerSection,
		lipgloss.JoinVertical(lipgloss.Left, lines...),
		"",
		count,
		footer,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
