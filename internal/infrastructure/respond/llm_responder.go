package respond

import (
	"context"
	"fmt"

	"github.com/Nyukimin/supportdesk/internal/domain/llm"
	"github.com/Nyukimin/supportdesk/internal/domain/persona"
	"github.com/Nyukimin/supportdesk/internal/domain/query"
)

// LLMResponder はLLMベースの応答生成器
// Personaの指示文をシステムプロンプトとして与え、自由文の応答を生成する
type LLMResponder struct {
	provider llm.LLMProvider
}

// NewLLMResponder は新しいLLMResponderを作成
func NewLLMResponder(provider llm.LLMProvider) *LLMResponder {
	return &LLMResponder{
		provider: provider,
	}
}

// Respond は問い合わせに対するPersonaの応答を生成
func (r *LLMResponder) Respond(ctx context.Context, q query.Query, p persona.Persona) (string, error) {
	req := llm.GenerateRequest{
		SystemPrompt: p.InstructionProfile,
		Messages: []llm.Message{
			{Role: "user", Content: q.Text()},
		},
		MaxTokens:   2048,
		Temperature: 0.7,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM response generation failed: %w", err)
	}

	return resp.Content, nil
}
