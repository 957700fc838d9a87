package model

// Usage holds token counts reported by a provider.
type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

// ChatRequest is a provider-agnostic chat call. Build it with
// NewChatRequest; it is never mutated after construction.
type ChatRequest struct {
	ProviderID string
	ModelID    string
	Messages   []ChatMessage
}

// ChatResponse is an adapter's normalized reply. Content is never empty.
type ChatResponse struct {
	Content    string
	ProviderID string
	Usage      *Usage
}

// NewChatRequest copies history and appends next, if given.
// It fails with ErrEmptyConversation when the result has no turns.
func NewChatRequest(providerID, modelID string, history []ChatMessage, next ...ChatMessage) (ChatRequest, error) {
	messages := make([]ChatMessage, 0, len(history)+len(next))
	messages = append(messages, history...)
	messages = append(messages, next...)

	if len(messages) == 0 {
		return ChatRequest{}, ErrEmptyConversation
	}

	return ChatRequest{
		ProviderID: providerID,
		ModelID:    modelID,
		Messages:   messages,
	}, nil
}
