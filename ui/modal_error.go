package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StartupErrorView is a standalone program shown when tabchat cannot start,
// typically because config.toml is invalid. Any of enter, esc, q quits.
type StartupErrorView struct {
	title  string
	err    error
	hint   string
	width  int
	height int
}

// NewStartupErrorView builds the view. hint is shown under the error and
// may be empty.
func NewStartupErrorView(title string, err error, hint string) StartupErrorView {
	return StartupErrorView{
		title: title,
		err:   err,
		hint:  hint,
	}
}

func (m StartupErrorView) Init() tea.Cmd {
	return nil
}

func (m StartupErrorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m StartupErrorView) View() string {
	if m.width < 20 || m.height < 10 {
		return m.title + ": " + m.err.Error()
	}

	modalWidth := 70
	if m.width < modalWidth+10 {
		modalWidth = m.width - 10
	}

	titleSection := lipgloss.NewStyle().
		Bold(true).
		Foreground(dangerColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		Render(m.title)

	body := []string{
		"",
		lipgloss.NewStyle().Width(modalWidth).Render(m.err.Error()),
	}
	if m.hint != "" {
		body = append(body, "", DimStyle.Width(modalWidth).Render(m.hint))
	}
	body = append(body, "")

	messageSection := lipgloss.NewStyle().
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render(strings.Join(body, "\n"))

	footerSection := lipgloss.NewStyle().
		Foreground(dimColor).
		Align(lipgloss.Center).
		Width(modalWidth).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor).
		Render("Press Enter to quit")

	content := strings.Join([]string{titleSection, messageSection, footerSection}, "\n")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
