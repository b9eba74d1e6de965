package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nyukimin/supportdesk/internal/domain/llm"
)

func TestNewGroqProvider(t *testing.T) {
	provider := NewGroqProvider("test-api-key", "meta-llama/llama-4-scout-17b-16e-instruct")

	if provider == nil {
		t.Fatal("NewGroqProvider should not return nil")
	}

	if provider.Name() != "groq-meta-llama/llama-4-scout-17b-16e-instruct" {
		t.Errorf("Unexpected provider name: %s", provider.Name())
	}
}

func TestGroqProvider_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Expected path '/v1/chat/completions', got '%s'", r.URL.Path)
		}

		// Authorizationヘッダー確認
		auth := r.Header.Get("Authorization")
		if auth != "Bearer test-api-key" {
			t.Errorf("Expected 'Bearer test-api-key', got '%s'", auth)
		}

		// リクエストボディ検証
		var reqBody map[string]interface{}
		json.NewDecoder(r.Body).Decode(&reqBody)

		if reqBody["model"] != "llama-3.3-70b-versatile" {
			t.Errorf("Expected model 'llama-3.3-70b-versatile', got '%v'", reqBody["model"])
		}

		// システムプロンプトが先頭メッセージとして渡ること
		messages := reqBody["messages"].([]interface{})
		first := messages[0].(map[string]interface{})
		if first["role"] != "system" {
			t.Errorf("Expected first message role 'system', got '%v'", first["role"])
		}

		response := map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": `{"department": "billing", "confidence": 0.9, "reason": "charge"}`,
					},
					"finish_reason": "stop",
				},
			},
			"usage": map[string]interface{}{
				"total_tokens": 42,
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	provider := NewGroqProvider("test-api-key", "llama-3.3-70b-versatile")
	provider.SetBaseURL(server.URL)

	req := llm.GenerateRequest{
		SystemPrompt: "You are a classifier.",
		Messages: []llm.Message{
			{Role: "user", Content: "I was charged twice"},
		},
		MaxTokens:   200,
		Temperature: 0.2,
	}

	resp, err := provider.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if resp.Content == "" {
		t.Error("Expected non-empty content")
	}

	if resp.TokensUsed != 42 {
		t.Errorf("Expected 42 tokens, got %d", resp.TokensUsed)
	}

	if resp.FinishReason != "stop" {
		t.Errorf("Expected finish reason 'stop', got '%s'", resp.FinishReason)
	}
}

func TestGroqProvider_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limit exceeded"}}`))
	}))
	defer server.Close()

	provider := NewGroqProvider("test-api-key", "llama-3.3-70b-versatile")
	provider.SetBaseURL(server.URL)

	_, err := provider.Generate(context.Background(), llm.GenerateRequest{
		Messages: []llm.Message{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatal("Expected error for non-200 status")
	}
}

func TestGroqProvider_Generate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	provider := NewGroqProvider("test-api-key", "llama-3.3-70b-versatile")
	provider.SetBaseURL(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.Generate(ctx, llm.GenerateRequest{
		Messages: []llm.Message{{Role: "user", Content: "hello"}},
	})
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}
}
