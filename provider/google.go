package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tabchat/config"
	"tabchat/model"
)

// GeminiContent is a single turn in a generateContent request.
// Only two roles exist: "user" and "model".
type GeminiContent struct {
	Role  string       `json:"role"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text string `json:"text"`
}

type geminiRequest struct {
	Contents         []GeminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse is the subset of the generateContent reply we read.
// Text is a pointer so a missing field can be told apart from "", and a
// non-string value fails decoding.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata *GeminiUsage   `json:"usageMetadata"`
	Error         *geminiAPIError `json:"error"`
}

// GeminiUsage tracks token consumption as reported in usageMetadata.
type GeminiUsage struct {
	PromptTokenCount     int64 `json:"promptTokenCount"`
	CandidatesTokenCount int64 `json:"candidatesTokenCount"`
	TotalTokenCount      int64 `json:"totalTokenCount"`
}

type geminiAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// GoogleAdapter implements model.Adapter for the Gemini generateContent API.
type GoogleAdapter struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewGoogleAdapter creates a Google family adapter.
//
// Parameters (from cfg):
//   - BaseURL: API base URL (default: "https://generativelanguage.googleapis.com")
//   - APIKey: Gemini API key (required)
//   - Model: model used when a request carries none (default: "gemini-2.5-flash")
func NewGoogleAdapter(cfg Config) (*GoogleAdapter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Google API key is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultGoogleBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = config.DefaultGoogleModel
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &GoogleAdapter{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      modelName,
	}, nil
}

func (a *GoogleAdapter) Family() string {
	return string(FamilyGoogle)
}

// resolveModel strips a "google/" vendor prefix, as used by gateway-style
// model IDs, and falls back to the adapter default.
func (a *GoogleAdapter) resolveModel(modelID string) string {
	modelID = strings.TrimPrefix(modelID, "google/")
	if modelID == "" {
		return a.model
	}
	return modelID
}

// Send implements model.Adapter with a single generateContent call.
func (a *GoogleAdapter) Send(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error) {
	if len(req.Messages) == 0 {
		return nil, model.ErrEmptyConversation
	}

	body, err := json.Marshal(geminiRequest{
		Contents: ConvertToGeminiContents(req.Messages),
		GenerationConfig: geminiGenerationConfig{
			Temperature:     defaultTemperature,
			MaxOutputTokens: defaultMaxTokens,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Google: failed to marshal request: %w", err)
	}

	modelName := a.resolveModel(req.ModelID)
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", a.baseURL, url.PathEscape(modelName))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("Google: failed to create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", a.apiKey)

	if config.DebugLog != nil {
		config.DebugLog.Printf("[Google] POST %s (%d contents)", endpoint, len(req.Messages))
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("Google: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Google: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Google] %s: %s", resp.Status, raw)
		}
		return nil, &model.TransportError{
			Provider:   displayName(FamilyGoogle),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	return a.parseResponse(req.ProviderID, raw)
}

func (a *GoogleAdapter) parseResponse(providerID string, raw []byte) (*model.ChatResponse, error) {
	shapeErr := func(reason string) error {
		if config.DebugLog != nil {
			config.DebugLog.Printf("[Google] Invalid response (%s): %s", reason, raw)
		}
		return &model.ResponseShapeError{
			Provider: displayName(FamilyGoogle),
			Reason:   reason,
			Payload:  string(raw),
		}
	}

	var data geminiResponse
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, shapeErr(fmt.Sprintf("malformed JSON: %v", err))
	}

	if data.Error != nil {
		msg := data.Error.Message
		if msg == "" {
			msg = data.Error.Status
		}
		return nil, shapeErr(fmt.Sprintf("API error: %s", msg))
	}
	if len(data.Candidates) == 0 {
		return nil, shapeErr("missing candidates")
	}

	parts := data.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0].Text == nil {
		return nil, shapeErr("cannot find text content")
	}
	if *parts[0].Text == "" {
		return nil, shapeErr("empty text content")
	}

	return &model.ChatResponse{
		Content:    *parts[0].Text,
		ProviderID: providerID,
		Usage:      ConvertGeminiUsage(data.UsageMetadata),
	}, nil
}
