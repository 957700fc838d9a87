package provider

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tabchat/model"
	"tabchat/provider/testutil"
)

type openRouterWireRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

// newOpenRouterServer answers every request with status and body and
// records the decoded request bodies.
func newOpenRouterServer(t *testing.T, status int, body string) (*httptest.Server, *[]openRouterWireRequest, *[]*http.Request) {
	t.Helper()
	var bodies []openRouterWireRequest
	var reqs []*http.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var wire openRouterWireRequest
		if err := json.Unmarshal(raw, &wire); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		bodies = append(bodies, wire)
		reqs = append(reqs, r.Clone(context.Background()))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies, &reqs
}

func newTestOpenRouterAdapter(t *testing.T, srv *httptest.Server) *OpenRouterAdapter {
	t.Helper()
	a, err := NewOpenRouterAdapter(Config{
		Family:     FamilyOpenRouter,
		BaseURL:    srv.URL + "/api/v1",
		APIKey:     "or-test-key",
		HTTPClient: srv.Client(),
	})
	if err != nil {
		t.Fatalf("NewOpenRouterAdapter() error = %v", err)
	}
	return a
}

func TestOpenRouterSendSuccess(t *testing.T) {
	srv, bodies, reqs := newOpenRouterServer(t, http.StatusOK, testutil.OpenRouterCompletion("hi"))
	a := newTestOpenRouterAdapter(t, srv)

	req := testutil.Request("openrouter-gpt", "openai/gpt-3.5-turbo", testutil.SingleUserMessage("hello"))
	resp, err := a.Send(context.Background(), req)
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if resp.Content != "hi" {
		t.Errorf("Content = %q, want hi", resp.Content)
	}
	if resp.ProviderID != "openrouter-gpt" {
		t.Errorf("ProviderID = %q", resp.ProviderID)
	}
	if resp.Usage == nil || resp.Usage.PromptTokens != 3 || resp.Usage.CompletionTokens != 2 || resp.Usage.TotalTokens != 5 {
		t.Errorf("Usage = %+v, want 3/2/5", resp.Usage)
	}

	if len(*reqs) != 1 {
		t.Fatalf("server saw %d requests, want exactly 1", len(*reqs))
	}
	r := (*reqs)[0]
	if r.Method != http.MethodPost || r.URL.Path != "/api/v1/chat/completions" {
		t.Errorf("request = %s %s", r.Method, r.URL.Path)
	}
	if got := r.Header.Get("Authorization"); got != "Bearer or-test-key" {
		t.Errorf("Authorization = %q", got)
	}

	wire := (*bodies)[0]
	if wire.Model != "openai/gpt-3.5-turbo" || wire.MaxTokens != 1000 || wire.Temperature != 0.7 {
		t.Errorf("body = model %q, max_tokens %d, temperature %v", wire.Model, wire.MaxTokens, wire.Temperature)
	}
	if len(wire.Messages) != 1 || wire.Messages[0].Role != "user" || wire.Messages[0].Content != "hello" {
		t.Errorf("messages = %+v", wire.Messages)
	}
}

func TestOpenRouterReplaysHistoryInOrder(t *testing.T) {
	srv, bodies, _ := newOpenRouterServer(t, http.StatusOK, testutil.OpenRouterCompletion("sure"))
	a := newTestOpenRouterAdapter(t, srv)

	history := testutil.TestMessages()
	if _, err := a.Send(context.Background(), testutil.Request("openrouter-claude", "anthropic/claude-3-opus", history)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	wire := (*bodies)[0]
	if wire.Model != "anthropic/claude-3-opus" {
		t.Errorf("model = %q", wire.Model)
	}
	if len(wire.Messages) != len(history) {
		t.Fatalf("sent %d messages, want %d", len(wire.Messages), len(history))
	}
	for i, m := range history {
		if wire.Messages[i].Role != string(m.Role) || wire.Messages[i].Content != m.Content {
			t.Errorf("message %d = %+v, want %+v", i, wire.Messages[i], m)
		}
	}
}

func TestOpenRouterDefaultModel(t *testing.T) {
	srv, bodies, _ := newOpenRouterServer(t, http.StatusOK, testutil.OpenRouterCompletion("ok"))
	a := newTestOpenRouterAdapter(t, srv)

	if _, err := a.Send(context.Background(), testutil.Request("openrouter-gpt", "", testutil.SingleUserMessage("x"))); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got := (*bodies)[0].Model; got != "openai/gpt-3.5-turbo" {
		t.Errorf("model = %q, want adapter default", got)
	}
}

func TestOpenRouterInvalidShape(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty choices", `{"id":"x","choices":[]}`},
		{"missing choices", `{"id":"x"}`},
		{"empty content", `{"choices":[{"index":0,"message":{"role":"assistant","content":""}}]}`},
		{"null content", `{"choices":[{"index":0,"message":{"role":"assistant","content":null}}]}`},
		{"not json", `<html>gateway</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newOpenRouterServer(t, http.StatusOK, tt.body)
			a := newTestOpenRouterAdapter(t, srv)

			resp, err := a.Send(context.Background(), testutil.Request("openrouter-gpt", "", testutil.SingleUserMessage("hello")))
			if resp != nil {
				t.Errorf("expected nil response, got %+v", resp)
			}
			if !errors.Is(err, model.ErrInvalidResponseShape) {
				t.Fatalf("error = %v, want invalid response shape", err)
			}

			var shapeErr *model.ResponseShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("error type = %T", err)
			}
			if shapeErr.Payload != tt.body {
				t.Errorf("Payload = %q, want raw body", shapeErr.Payload)
			}
			if strings.Contains(err.Error(), tt.body) {
				t.Error("raw payload should not appear in the error message")
			}
		})
	}
}

func TestOpenRouterTransportError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized json", http.StatusUnauthorized, `{"error":{"message":"No auth credentials found","code":401}}`},
		{"server error text", http.StatusInternalServerError, "upstream exploded"},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, reqs := newOpenRouterServer(t, tt.status, tt.body)
			a := newTestOpenRouterAdapter(t, srv)

			_, err := a.Send(context.Background(), testutil.Request("openrouter-gpt", "", testutil.SingleUserMessage("hello")))

			var transportErr *model.TransportError
			if !errors.As(err, &transportErr) {
				t.Fatalf("error = %v (%T), want *model.TransportError", err, err)
			}
			if transportErr.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", transportErr.StatusCode, tt.status)
			}
			if !strings.Contains(transportErr.Body, strings.TrimSpace(tt.body)) {
				t.Errorf("Body = %q, want %q", transportErr.Body, tt.body)
			}
			if len(*reqs) != 1 {
				t.Errorf("server saw %d requests, retries must be off", len(*reqs))
			}
		})
	}
}

func TestOpenRouterNetworkError(t *testing.T) {
	srv, _, _ := newOpenRouterServer(t, http.StatusOK, "{}")
	a := newTestOpenRouterAdapter(t, srv)
	srv.Close()

	_, err := a.Send(context.Background(), testutil.Request("openrouter-gpt", "", testutil.SingleUserMessage("hello")))
	if err == nil {
		t.Fatal("expected error from closed server")
	}

	var transportErr *model.TransportError
	if errors.As(err, &transportErr) {
		t.Error("a failed connection is not a transport status error")
	}
	if errors.Is(err, model.ErrInvalidResponseShape) {
		t.Error("a failed connection is not a shape error")
	}
}

func TestOpenRouterRejectsEmptyRequest(t *testing.T) {
	srv, _, reqs := newOpenRouterServer(t, http.StatusOK, "{}")
	a := newTestOpenRouterAdapter(t, srv)

	if _, err := a.Send(context.Background(), model.ChatRequest{ProviderID: "openrouter-gpt"}); !errors.Is(err, model.ErrEmptyConversation) {
		t.Errorf("error = %v, want ErrEmptyConversation", err)
	}
	if len(*reqs) != 0 {
		t.Error("empty request must not reach the network")
	}
}
