package llm

import "context"

// Message はLLMへ渡す対話メッセージを表す
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// GenerateRequest はLLM生成リクエスト
type GenerateRequest struct {
	Messages     []Message
	MaxTokens    int
	Temperature  float64
	SystemPrompt string
}

// GenerateResponse はLLM生成レスポンス
type GenerateResponse struct {
	Content      string
	TokensUsed   int
	FinishReason string
}

// LLMProvider はLLMプロバイダーの抽象化
// 実装はネットワーク越しの呼び出しであり、ctxによるタイムアウト・キャンセルに対応すること
type LLMProvider interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error)
	Name() string
}
