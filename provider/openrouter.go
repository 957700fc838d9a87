package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tabchat/config"
	"tabchat/model"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Sampling parameters sent with every request, for both families.
const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1000
)

// OpenRouterAdapter implements model.Adapter using OpenAI's official Go SDK.
// It connects to OpenRouter's API which is 100% OpenAI-compatible.
type OpenRouterAdapter struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenRouterAdapter creates a new OpenRouter adapter instance.
//
// Parameters (from cfg):
//   - BaseURL: OpenRouter API base URL (default: "https://openrouter.ai/api/v1")
//   - APIKey: OpenRouter API key (required)
//   - Model: model used when a request carries none (default: "openai/gpt-3.5-turbo")
//
// Returns an error if the API key is missing.
func NewOpenRouterAdapter(cfg Config) (*OpenRouterAdapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultOpenRouterBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = config.DefaultOpenRouterModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	// Create OpenAI client with custom base URL for OpenRouter.
	// One Send is one HTTP call, so SDK retries stay off.
	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)

	return &OpenRouterAdapter{
		client:  client,
		model:   modelName,
		baseURL: baseURL,
	}, nil
}

func (a *OpenRouterAdapter) Family() string {
	return string(FamilyOpenRouter)
}

// Send implements model.Adapter with a single chat completion call.
func (a *OpenRouterAdapter) Send(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, model.ErrEmptyConversation
	}

	modelName := req.ModelID
	if modelName == "" {
		modelName = a.model
	}

	params := openai.ChatCompletionNewParams{
		Messages:    ConvertToOpenAIMessages(req.Messages),
		Model:       openai.ChatModel(modelName),
		MaxTokens:   openai.Int(defaultMaxTokens),
		Temperature: openai.Float(defaultTemperature),
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[OpenRouter] POST %s/chat/completions model=%s (%d messages)", a.baseURL, modelName, len(req.Messages))
	}

	capture := &bodyCapture{provider: displayName(FamilyOpenRouter)}
	completion, err := a.client.Chat.Completions.New(ctx, params, option.WithMiddleware(capture.middleware))
	if err != nil {
		return nil, a.classifyError(err)
	}

	shapeErr := func(reason string) error {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[OpenRouter] Invalid response (%s): %s", reason, capture.body)
		}
		return &model.ResponseShapeError{
			Provider: displayName(FamilyOpenRouter),
			Reason:   reason,
			Payload:  string(capture.body),
		}
	}

	if len(completion.Choices) == 0 {
		return nil, shapeErr("missing choices")
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return nil, shapeErr("empty message content")
	}

	return &model.ChatResponse{
		Content:    content,
		ProviderID: req.ProviderID,
		Usage:      ConvertOpenAIUsage(completion.Usage),
	}, nil
}

// classifyError maps SDK failures onto the model error taxonomy.
func (a *OpenRouterAdapter) classifyError(err error) error {
	var transportErr *model.TransportError
	if errors.As(err, &transportErr) {
		return transportErr
	}
	var shapeErr *model.ResponseShapeError
	if errors.As(err, &shapeErr) {
		return shapeErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &model.TransportError{
			Provider:   displayName(FamilyOpenRouter),
			StatusCode: apiErr.StatusCode,
			Status:     fmt.Sprintf("%d %s", apiErr.StatusCode, http.StatusText(apiErr.StatusCode)),
			Body:       apiErr.RawJSON(),
		}
	}

	if config.DebugLog != nil {
		config.DebugLog.Printf("[OpenRouter] Request failed: %v", err)
	}
	return fmt.Errorf("OpenRouter: request failed: %w", err)
}

// bodyCapture keeps the raw response body of one request. Non-2xx answers
// become *model.TransportError before the SDK sees them, and a 2xx body
// that is not JSON becomes *model.ResponseShapeError.
type bodyCapture struct {
	provider string
	body     []byte
}

func (c *bodyCapture) middleware(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	resp, err := next(req)
	if err != nil {
		return resp, err
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	c.body = raw
	resp.Body = io.NopCloser(bytes.NewReader(raw))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[OpenRouter] %s: %s", resp.Status, raw)
		}
		return nil, &model.TransportError{
			Provider:   c.provider,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if !json.Valid(raw) {
		return nil, &model.ResponseShapeError{
			Provider: c.provider,
			Reason:   "malformed JSON",
			Payload:  string(raw),
		}
	}

	return resp, nil
}
