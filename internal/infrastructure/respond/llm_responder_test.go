package respond

import (
	"context"
	"errors"
	"testing"

	"github.com/Nyukimin/supportdesk/internal/domain/llm"
	"github.com/Nyukimin/supportdesk/internal/domain/persona"
	"github.com/Nyukimin/supportdesk/internal/domain/query"
	"github.com/Nyukimin/supportdesk/internal/domain/routing"
)

// mockLLMProvider はテスト用のLLMプロバイダー
type mockLLMProvider struct {
	response string
	err      error
	lastReq  llm.GenerateRequest
}

func (m *mockLLMProvider) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return llm.GenerateResponse{}, m.err
	}
	return llm.GenerateResponse{Content: m.response}, nil
}

func (m *mockLLMProvider) Name() string {
	return "mock-llm"
}

func TestLLMResponder_Respond(t *testing.T) {
	mock := &mockLLMProvider{response: "I'm sorry to hear about the double charge."}
	responder := NewLLMResponder(mock)

	p := persona.Persona{
		Department:         routing.DepartmentBilling,
		Name:               "Sarah",
		InstructionProfile: "You're Sarah from the Billing Department with 5 years of experience.",
	}
	q := query.NewQuery(query.NewQueryID(), "I was charged twice for my monthly subscription")

	response, err := responder.Respond(context.Background(), q, p)
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	if response != "I'm sorry to hear about the double charge." {
		t.Errorf("Unexpected response: %s", response)
	}

	// Personaの指示文がそのままシステムプロンプトになること
	if mock.lastReq.SystemPrompt != p.InstructionProfile {
		t.Errorf("Expected instruction profile as system prompt, got: %s", mock.lastReq.SystemPrompt)
	}

	if len(mock.lastReq.Messages) != 1 || mock.lastReq.Messages[0].Content != q.Text() {
		t.Error("Expected the query text as the single user message")
	}
}

func TestLLMResponder_Respond_ProviderError(t *testing.T) {
	mock := &mockLLMProvider{err: errors.New("timeout")}
	responder := NewLLMResponder(mock)

	p := persona.Persona{Department: routing.DepartmentGeneral, Name: "Taylor", InstructionProfile: "general"}
	q := query.NewQuery(query.NewQueryID(), "some question")

	_, err := responder.Respond(context.Background(), q, p)
	if err == nil {
		t.Fatal("Expected error when provider fails")
	}
}
