package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tabchat/config"
	"tabchat/provider"
	"tabchat/ui"
)

const (
	Version = "v0.01.00"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		hint := fmt.Sprintf("Fix %s or remove it to restore the defaults.",
			config.GetUserConfigPath(config.GetConfigDir()))

		p := tea.NewProgram(
			ui.NewStartupErrorView("Configuration Error", err, hint),
			tea.WithAltScreen(),
		)
		if _, runErr := p.Run(); runErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		}
		os.Exit(1)
	}

	// Initialize debug logging after config is loaded
	config.InitDebugLog(cfg.DataDir())

	svc := provider.InitializeService(cfg)
	if config.DebugLog != nil {
		config.DebugLog.Printf("Configured providers: %v", svc.ConfiguredProviders())
	}

	p := tea.NewProgram(
		ui.NewAppView(cfg, svc, Version),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running tabchat: %v\n", err)
		os.Exit(1)
	}
}
