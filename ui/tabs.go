package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tabchat/config"
)

const (
	minTabLabelWidth = 6
	maxTabLabelWidth = 24
)

// truncateLabel shortens s to at most width terminal cells.
func truncateLabel(s string, width int) string {
	if width < 1 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// tabLabelWidth splits the terminal width evenly between tabs.
func tabLabelWidth(totalWidth, tabs int) int {
	if tabs == 0 {
		return maxTabLabelWidth
	}
	// padding (2) + separator (1) + unconfigured marker (2)
	w := totalWidth/tabs - 5
	if w < minTabLabelWidth {
		return minTabLabelWidth
	}
	if w > maxTabLabelWidth {
		return maxTabLabelWidth
	}
	return w
}

// renderTabBar draws one tab per provider. Unconfigured providers are
// dimmed and marked with "!".
func renderTabBar(providers []config.ProviderDescriptor, active int, configured func(string) bool, width int) string {
	labelWidth := tabLabelWidth(width, len(providers))

	tabs := make([]string, 0, len(providers))
	for i, p := range providers {
		label := truncateLabel(p.Label(), labelWidth)
		ok := configured(p.ID)
		if !ok {
			label += " !"
		}

		var style lipgloss.Style
		switch {
		case !ok:
			style = unconfiguredTabStyle
		case i == active:
			style = activeTabStyle.Foreground(lipgloss.Color(p.Color))
		default:
			style = tabStyle.Foreground(lipgloss.Color(p.Color))
		}
		if i == active && !ok {
			style = style.Underline(true)
		}

		tabs = append(tabs, style.Render(label))
	}

	return strings.Join(tabs, DimStyle.Render("│"))
}
