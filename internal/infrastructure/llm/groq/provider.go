package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Nyukimin/supportdesk/internal/domain/llm"
)

const defaultBaseURL = "https://api.groq.com/openai"

// GroqProvider はGroq APIプロバイダーの実装
// Groq APIはOpenAI互換のため、チャット補完エンドポイントをそのまま利用する
type GroqProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewGroqProvider は新しいGroqProviderを作成
func NewGroqProvider(apiKey, model string) *GroqProvider {
	return &GroqProvider{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// SetBaseURL はベースURLを設定（テスト用）
func (p *GroqProvider) SetBaseURL(url string) {
	p.baseURL = url
}

// Generate はLLM生成を実行
func (p *GroqProvider) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	// Groq APIリクエスト構築（OpenAI互換）
	groqReq := map[string]interface{}{
		"model":    p.model,
		"messages": p.convertMessages(req),
	}

	if req.MaxTokens > 0 {
		groqReq["max_tokens"] = req.MaxTokens
	}

	if req.Temperature > 0 {
		groqReq["temperature"] = req.Temperature
	}

	reqBody, err := json.Marshal(groqReq)
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	// HTTPリクエスト作成
	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.baseURL+"/v1/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	// リクエスト実行
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return llm.GenerateResponse{}, fmt.Errorf("groq API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	// レスポンスパース
	var groqResp struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&groqResp); err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	// コンテンツ抽出
	var content string
	var finishReason string
	if len(groqResp.Choices) > 0 {
		content = groqResp.Choices[0].Message.Content
		finishReason = groqResp.Choices[0].FinishReason
	}

	return llm.GenerateResponse{
		Content:      content,
		TokensUsed:   groqResp.Usage.TotalTokens,
		FinishReason: finishReason,
	}, nil
}

// Name はプロバイダー名を返す
func (p *GroqProvider) Name() string {
	return fmt.Sprintf("groq-%s", p.model)
}

// convertMessages はドメインメッセージをOpenAI互換フォーマットに変換
func (p *GroqProvider) convertMessages(req llm.GenerateRequest) []map[string]interface{} {
	messages := make([]map[string]interface{}, 0)

	// システムプロンプトを最初に追加
	if req.SystemPrompt != "" {
		messages = append(messages, map[string]interface{}{
			"role":    "system",
			"content": req.SystemPrompt,
		})
	}

	for _, msg := range req.Messages {
		messages = append(messages, map[string]interface{}{
			"role":    msg.Role,
			"content": msg.Content,
		})
	}

	return messages
}
