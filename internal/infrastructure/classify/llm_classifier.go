package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nyukimin/supportdesk/internal/domain/llm"
	"github.com/Nyukimin/supportdesk/internal/domain/query"
	"github.com/Nyukimin/supportdesk/internal/domain/routing"
)

// classifierSystemPrompt は分類用のシステムプロンプト
// 各部門の定義は分類器との契約の一部であり、そのまま変更せずに提示する
const classifierSystemPrompt = `You are an experienced customer service manager who has handled thousands of customer inquiries.

Classify incoming customer messages into one of these departments:
- billing: Payment issues, charges, invoices, subscription fees, refunds, payment methods, billing cycles
- tech_support: Technical problems, error messages, software/hardware issues, setup help, troubleshooting steps
- sales: New purchases, product comparisons, upgrade options, pricing questions, availability, features

Your classification must be accurate as it determines which specialist will help the customer.

Respond with a single JSON object and nothing else:
{"department": "<billing|tech_support|sales>", "confidence": <number between 0.0 and 1.0>, "reason": "<brief explanation>"}`

// LLMClassifier はLLMベースの問い合わせ分類器
type LLMClassifier struct {
	provider llm.LLMProvider
}

// NewLLMClassifier は新しいLLMClassifierを作成
func NewLLMClassifier(provider llm.LLMProvider) *LLMClassifier {
	return &LLMClassifier{
		provider: provider,
	}
}

// Classify は問い合わせを分類
func (c *LLMClassifier) Classify(ctx context.Context, q query.Query) (routing.Classification, error) {
	req := llm.GenerateRequest{
		SystemPrompt: classifierSystemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: q.Text()},
		},
		MaxTokens:   200,
		Temperature: 0.2, // 低温度で安定した分類
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return routing.Classification{}, fmt.Errorf("LLM classification failed: %w", err)
	}

	return c.parseClassification(resp.Content)
}

// classificationDTO はLLM応答のJSONスキーマ
type classificationDTO struct {
	Department string  `json:"department"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// parseClassification はLLM応答からClassificationを抽出
// スキーマ外の部門はここで拒否する（リモート側のスキーマ制約だけに頼らない）
// Confidenceの範囲（0.0-1.0）はここでは検証しない：範囲外の値は
// そのままポリシーの閾値比較に渡される（既知の境界検証課題）
func (c *LLMClassifier) parseClassification(content string) (routing.Classification, error) {
	raw := stripCodeFence(content)

	var dto classificationDTO
	if err := json.Unmarshal([]byte(raw), &dto); err != nil {
		return routing.Classification{}, fmt.Errorf("malformed classifier output: %w", err)
	}

	dept := routing.Department(strings.ToLower(strings.TrimSpace(dto.Department)))
	if !dept.IsClassifiable() {
		return routing.Classification{}, fmt.Errorf("classifier returned unknown department: %q", dto.Department)
	}

	return routing.NewClassification(dept, dto.Confidence, dto.Reason), nil
}

// stripCodeFence はMarkdownコードフェンスを除去
// 一部のモデルはJSONを```で囲んで返すため
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)

	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")

	return strings.TrimSpace(trimmed)
}
