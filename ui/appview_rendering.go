package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"tabchat/config"
	"tabchat/model"
)

// Pre-compiled regex patterns for better performance
var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

const codeBlockBar = "┃"

func (a *AppView) updateViewportContent(gotoBottom bool) {
	messages := a.dataModel.Conversation.Messages()
	loading := a.dataModel.Conversation.IsLoading()

	if len(messages) == 0 {
		a.viewport.SetContent(DimStyle.Render("No messages yet. Pick a provider tab and start chatting!"))
		return
	}

	var content strings.Builder

	for _, msg := range messages {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))

		if msg.Role == model.RoleUser {
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render("You"), msg.Rendered))
			continue
		}

		role := AssistantStyle.Render(a.providerLabel(msg.ProviderID))
		body := msg.Rendered
		if msg.IsError {
			role = ErrorStyle.Render(a.providerLabel(msg.ProviderID))
			body = ErrorStyle.Render(msg.Content)
		}

		content.WriteString(fmt.Sprintf("%s %s\n%s\n", timestamp, role, body))
		if usage := formatUsage(msg.Usage); usage != "" {
			content.WriteString(DimStyle.Render(usage) + "\n")
		}
		content.WriteString("\n")
	}

	if loading {
		content.WriteString(fmt.Sprintf("%s %s\n", a.loadingSpinner.View(), DimStyle.Render("Waiting for response...")))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// providerLabel returns the tab label for a provider ID, falling back to
// the ID itself for providers no longer in the registry.
func (a *AppView) providerLabel(id string) string {
	if p, ok := config.FindProvider(a.dataModel.Providers, id); ok {
		return p.Label()
	}
	return id
}

// formatUsage renders token counts for an assistant reply.
func formatUsage(u *model.Usage) string {
	if u == nil {
		return ""
	}
	return fmt.Sprintf("tokens: %d prompt · %d completion · %d total", u.PromptTokens, u.CompletionTokens, u.TotalTokens)
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + "┃" + reset

	lines := strings.Split(content, "\n")

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range lines {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

func postProcessMarkdown(rendered string, width int) string {
	// 1. Fix inline code: Blue background → Red text
	rendered = fixInlineCode(rendered)

	// 2. Color plain URLs red (autolink disabled keeps URLs plain)
	rendered = fixMarkdownLinks(rendered)

	// 3. Frame code blocks with horizontal lines
	rendered = frameCodeBlocks(rendered, width)

	return rendered
}

// preprocessLinks strips markdown link syntax [text](url) down to the url.
func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	// \x1b[44;3m...\x1b[0m (Blue BG + Italic) -> \x1b[31m...\x1b[0m (Red text)
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		// Code block lines keep their own colors
		if !strings.Contains(line, codeBlockBar) {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}

	return strings.Join(lines, "\n")
}

func frameCodeBlocks(s string, width int) string {
	lineLen := width - 4
	if lineLen < 10 {
		lineLen = 10
	}

	darkGray := "\x1b[90m"
	reset := "\x1b[0m"

	topBorder := func() string {
		label := "[code]"
		leftLen := (lineLen - len(label)) / 2
		rightLen := lineLen - len(label) - leftLen
		return darkGray + strings.Repeat("━", leftLen) + reset + label + darkGray + strings.Repeat("━", rightLen) + reset
	}
	bottomBorder := darkGray + strings.Repeat("━", lineLen) + reset

	var result []string
	inCodeBlock := false

	for _, line := range strings.Split(s, "\n") {
		if strings.Contains(line, codeBlockBar) {
			if !inCodeBlock {
				inCodeBlock = true
				result = append(result, "", topBorder(), "")
			}
			result = append(result, stripCodeBlockPrefix(line))
			continue
		}

		if inCodeBlock {
			result = append(result, "", bottomBorder, "")
			inCodeBlock = false
		}
		result = append(result, line)
	}

	if inCodeBlock {
		result = append(result, "", bottomBorder, "")
	}

	return strings.Join(result, "\n")
}

// stripCodeBlockPrefix removes everything up to and including the code
// block bar plus one following space.
func stripCodeBlockPrefix(line string) string {
	idx := strings.Index(line, codeBlockBar)
	if idx < 0 {
		return line
	}
	after := idx + len(codeBlockBar)
	if after < len(line) && line[after] == ' ' {
		after++
	}
	return line[after:]
}

// renderMarkdown converts a reply into terminal markdown at the given width.
func renderMarkdown(content string, width int) string {
	content = preprocessLinks(content)

	// Autolink stays off so terminals can detect URLs themselves
	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)

	renderWidth := width - 4
	if renderWidth < 20 {
		renderWidth = 20
	}
	r := markdown.NewRenderer(renderWidth, 0)
	rendered := gomarkdown.Render(p.Parse([]byte(content)), r)

	return strings.TrimRight(postProcessMarkdown(string(rendered), width), "\n")
}

func (a AppView) renderMarkdownAsync(messageID, content string) tea.Cmd {
	width := a.width
	return func() tea.Msg {
		startTime := time.Now()
		rendered := renderMarkdown(content, width)

		if config.DebugLog != nil {
			config.DebugLog.Printf("[UI] Markdown for message %s (%d chars) rendered in %v", messageID, len(content), time.Since(startTime))
		}

		return markdownRenderedMsg{
			MessageID: messageID,
			Rendered:  rendered,
		}
	}
}
