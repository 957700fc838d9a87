package testutil

import (
	"tabchat/config"
	"tabchat/model"
)

// TestMessages returns a sample conversation for testing
func TestMessages() []model.ChatMessage {
	return []model.ChatMessage{
		{Role: model.RoleUser, Content: "Hello, how are you?"},
		{Role: model.RoleAssistant, Content: "I'm doing well, thank you!"},
		{Role: model.RoleUser, Content: "Can you help me with a task?"},
	}
}

// SingleUserMessage returns a single user message for simple tests
func SingleUserMessage(content string) []model.ChatMessage {
	return []model.ChatMessage{
		{Role: model.RoleUser, Content: content},
	}
}

// Request builds a ChatRequest for the provider, panicking on empty input
func Request(providerID, modelID string, messages []model.ChatMessage) model.ChatRequest {
	req, err := model.NewChatRequest(providerID, modelID, messages)
	if err != nil {
		panic(err)
	}
	return req
}

// TestProviders returns the built-in registry
func TestProviders() []config.ProviderDescriptor {
	return config.DefaultProviders()
}

// OpenRouterCompletion is a minimal chat completion body
func OpenRouterCompletion(content string) string {
	return `{
  "id": "gen-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "openai/gpt-3.5-turbo",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "` + content + `"}}
  ],
  "usage": {"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5}
}`
}

// GeminiReply is a minimal generateContent body
func GeminiReply(text string) string {
	return `{
  "candidates": [
    {"content": {"role": "model", "parts": [{"text": "` + text + `"}]}, "finishReason": "STOP", "index": 0}
  ],
  "usageMetadata": {"promptTokenCount": 4, "candidatesTokenCount": 6, "totalTokenCount": 10}
}`
}
