package provider

import (
	"tabchat/model"

	"github.com/openai/openai-go/v3"
)

// ConvertToOpenAIMessages converts tabchat messages to OpenAI SDK format.
// Order is preserved; unknown roles are sent as user turns.
func ConvertToOpenAIMessages(messages []model.ChatMessage) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case model.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}

	return result
}

// ConvertOpenAIUsage maps chat completion usage. It returns nil when the
// response reported no token counts.
func ConvertOpenAIUsage(usage openai.CompletionUsage) *model.Usage {
	if usage.PromptTokens == 0 && usage.CompletionTokens == 0 && usage.TotalTokens == 0 {
		return nil
	}
	return &model.Usage{
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
}

// GeminiRole maps a tabchat role onto the two roles Gemini accepts.
func GeminiRole(role model.Role) string {
	if role == model.RoleAssistant {
		return "model"
	}
	return "user"
}

// ConvertToGeminiContents converts tabchat messages to Gemini contents,
// one single-part content per message.
func ConvertToGeminiContents(messages []model.ChatMessage) []GeminiContent {
	result := make([]GeminiContent, 0, len(messages))

	for _, msg := range messages {
		result = append(result, GeminiContent{
			Role:  GeminiRole(msg.Role),
			Parts: []GeminiPart{{Text: msg.Content}},
		})
	}

	return result
}

// ConvertGeminiUsage maps usageMetadata; nil in, nil out.
func ConvertGeminiUsage(usage *GeminiUsage) *model.Usage {
	if usage == nil {
		return nil
	}
	return &model.Usage{
		PromptTokens:     usage.PromptTokenCount,
		CompletionTokens: usage.CandidatesTokenCount,
		TotalTokens:      usage.TotalTokenCount,
	}
}
