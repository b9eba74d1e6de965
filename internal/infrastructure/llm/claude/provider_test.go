package claude

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nyukimin/supportdesk/internal/domain/llm"
)

func TestNewClaudeProvider(t *testing.T) {
	provider := NewClaudeProvider("test-api-key", "claude-sonnet-4-20250514")

	if provider == nil {
		t.Fatal("NewClaudeProvider should not return nil")
	}

	if provider.Name() != "claude-claude-sonnet-4-20250514" {
		t.Errorf("Unexpected provider name: %s", provider.Name())
	}
}

func TestClaudeProvider_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path '/v1/messages', got '%s'", r.URL.Path)
		}

		var reqBody map[string]interface{}
		json.NewDecoder(r.Body).Decode(&reqBody)

		if reqBody["model"] != "claude-sonnet-4-20250514" {
			t.Errorf("Expected model 'claude-sonnet-4-20250514', got '%v'", reqBody["model"])
		}

		// システムプロンプトはトップレベルで渡ること
		if reqBody["system"] == nil {
			t.Error("Expected top-level system prompt")
		}

		response := map[string]interface{}{
			"id":   "msg_123",
			"type": "message",
			"role": "assistant",
			"content": []map[string]interface{}{
				{"type": "text", "text": "Let me help you troubleshoot that."},
			},
			"model":       "claude-sonnet-4-20250514",
			"stop_reason": "end_turn",
			"usage": map[string]interface{}{
				"input_tokens":  15,
				"output_tokens": 25,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	provider := NewClaudeProviderWithBaseURL("test-api-key", "claude-sonnet-4-20250514", server.URL)

	resp, err := provider.Generate(context.Background(), llm.GenerateRequest{
		SystemPrompt: "You're Alex from Technical Support.",
		Messages: []llm.Message{
			{Role: "user", Content: "The app keeps crashing"},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if resp.Content != "Let me help you troubleshoot that." {
		t.Errorf("Unexpected content: %s", resp.Content)
	}

	if resp.TokensUsed != 40 {
		t.Errorf("Expected 40 tokens, got %d", resp.TokensUsed)
	}

	if resp.FinishReason != "end_turn" {
		t.Errorf("Expected finish reason 'end_turn', got '%s'", resp.FinishReason)
	}
}

func TestClaudeProvider_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"type": "error", "error": {"type": "invalid_request_error", "message": "max_tokens required"}}`))
	}))
	defer server.Close()

	provider := NewClaudeProviderWithBaseURL("test-api-key", "claude-sonnet-4-20250514", server.URL)

	_, err := provider.Generate(context.Background(), llm.GenerateRequest{
		Messages: []llm.Message{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatal("Expected error for bad request")
	}
}
