package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabchat/config"
	appmodel "tabchat/model"
)

// Lines taken by everything except the viewport: tab bar, separator,
// notice line, textarea (3) and status bar.
const chromeHeight = 7

type AppView struct {
	// Reference to core data model
	dataModel *appmodel.Model
	keys      *config.KeyBindingsConfig

	// UI Components
	viewport viewport.Model
	textarea textarea.Model

	// Window state
	width  int
	height int
	ready  bool

	showHelp bool
	picker   providerPicker

	// Loading spinner (bubbles/spinner)
	loadingSpinner spinner.Model

	// One-line feedback under the viewport (clipboard, refusals)
	notice string
}

func NewAppView(cfg *config.Config, svc appmodel.Dispatcher, version string) AppView {
	ta := textarea.New()
	ta.Placeholder = "Type your message here..."
	ta.Focus()
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(80)

	// Custom KeyMap: Alt+Enter for newline, Enter alone does nothing (handled separately)
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))

	// Set dynamic prompt: "> " for first line, "| " for subsequent lines
	ta.SetPromptFunc(2, func(lineIdx int) string {
		if lineIdx == 0 {
			return "> "
		}
		return "| "
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = AssistantStyle

	keys := cfg.KeyBindings
	if keys == nil {
		keys = config.DefaultKeybindings()
	}

	dataModel := appmodel.NewModel(cfg, svc, version)

	return AppView{
		dataModel:      dataModel,
		keys:           keys,
		textarea:       ta,
		viewport:       viewport.New(0, 0),
		loadingSpinner: sp,
		picker:         newProviderPicker(dataModel.Providers),
	}
}

func (a AppView) Init() tea.Cmd {
	return textarea.Blink
}

func (a AppView) View() string {
	if !a.ready {
		return "Loading tabchat..."
	}

	// Overlays, top layer first
	if a.showHelp {
		return a.renderHelpModal(a.width, a.height)
	}
	if a.picker.visible {
		return renderProviderPicker(a.picker, a.dataModel.ActiveProvider().ID, a.dataModel.Service.IsConfigured, a.width, a.height)
	}

	tabBar := renderTabBar(a.dataModel.Providers, a.dataModel.Active, a.dataModel.Service.IsConfigured, a.width)

	// Separator with bottom margin for header (empty line forces spacing)
	separator := ""

	viewportView := a.viewport.View()
	noticeLine := a.noticeLine()
	inputView := a.textarea.View()

	// Status bar with bold user green descriptions (main chat uses user green)
	descStyle := lipgloss.NewStyle().Foreground(successColor).Bold(true)
	statusBar := fmt.Sprintf("%s %s  %s %s  %s %s  Enter %s  Alt+Enter %s  %s %s",
		a.keys.DisplayActionKey("quit"), descStyle.Render("Quit"),
		a.keys.DisplayActionKey("next_provider"), descStyle.Render("Next tab"),
		a.keys.DisplayActionKey("provider_picker"), descStyle.Render("Providers"),
		descStyle.Render("Send"),
		descStyle.Render("New Line"),
		a.keys.DisplayActionKey("help"), descStyle.Render("Help"),
	)
	statusBar = StatusStyle.Render(statusBar)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tabBar,
		separator,
		viewportView,
		noticeLine,
		inputView,
		statusBar,
	)
}

// noticeLine shows transient feedback, or a warning when the active tab
// cannot send.
func (a AppView) noticeLine() string {
	if a.notice != "" {
		return DimStyle.Render(a.notice)
	}

	p := a.dataModel.ActiveProvider()
	if !a.dataModel.ActiveConfigured() {
		env := config.APIKeyEnvVar(p.Family)
		return WarningStyle.Render(fmt.Sprintf("⚠ %s is not configured. Set %s and restart.", p.DisplayName, env))
	}

	return DimStyle.Render(fmt.Sprintf("%s · %s", p.Label(), p.ModelID))
}

func (a *AppView) resize(width, height int) {
	a.width = width
	a.height = height

	viewportHeight := height - chromeHeight
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	a.viewport.Width = width
	a.viewport.Height = viewportHeight
	a.textarea.SetWidth(width)
}
