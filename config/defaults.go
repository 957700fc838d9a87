package config

const (
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "openai/gpt-3.5-turbo"
	DefaultGoogleBaseURL     = "https://generativelanguage.googleapis.com"
	DefaultGoogleModel       = "gemini-2.5-flash"
)

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		DefaultProvider: "openrouter-gpt",
		OpenRouter: FamilyConfig{
			BaseURL:      DefaultOpenRouterBaseURL,
			DefaultModel: DefaultOpenRouterModel,
		},
		Google: FamilyConfig{
			BaseURL:      DefaultGoogleBaseURL,
			DefaultModel: DefaultGoogleModel,
		},
	}
}

func GenerateUserConfigTemplate() string {
	return `# tabchat configuration
# Location: ~/.config/tabchat/config.toml
# This file uses TOML format: https://toml.io
#
# API keys are never read from this file. Export them instead:
#   TABCHAT_OPENROUTER_API_KEY   OpenRouter tabs
#   TABCHAT_GOOGLE_API_KEY       Gemini tab
# A provider family without a key stays unconfigured; its tabs are shown
# dimmed and sending to them reports an error in the conversation.

# Directory for debug.log (TABCHAT_DEBUG=1)
# data_directory = "~/.local/share/tabchat"

# Tab selected on startup
default_provider = "openrouter-gpt"

[openrouter]
# Overridden by TABCHAT_OPENROUTER_BASE_URL
base_url = "https://openrouter.ai/api/v1"
# Used when a tab does not name a model
default_model = "openai/gpt-3.5-turbo"

[google]
# Overridden by TABCHAT_GOOGLE_BASE_URL
base_url = "https://generativelanguage.googleapis.com"
default_model = "gemini-2.5-flash"

# Replace the built-in tab list (uncomment every entry you want to keep).
# family is "openrouter" or "google".
#
# [[providers]]
# id = "openrouter-gpt"
# display_name = "OpenRouter GPT"
# icon = "🤖"
# color = "#10a37f"
# model = "openai/gpt-3.5-turbo"
# family = "openrouter"
#
# [[providers]]
# id = "gemini"
# display_name = "Gemini 2.5 Pro"
# icon = "✨"
# color = "#4285f4"
# model = "gemini-2.5-pro"
# family = "google"
`
}
