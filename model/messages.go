package model

// ChatResultMsg carries the outcome of SendCmd back into the Update loop.
type ChatResultMsg struct {
	ProviderID string
	Response   *ChatResponse
	Err        error
}

// MarkdownRenderedMsg carries rendered markdown for the entry with MessageID.
type MarkdownRenderedMsg struct {
	MessageID string
	Rendered  string
}

type ClipboardCopiedMsg struct {
	What string
	Err  error
}
