package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/Nyukimin/supportdesk/internal/domain/llm"
)

// デフォルトのリトライ設定
const (
	DefaultAttempts  = 3
	DefaultBaseDelay = 500 * time.Millisecond
)

// Provider は任意のLLMProviderに有界リトライを付与するデコレーター
// リトライはポートアダプター層の責務であり、ワークフロー側では行わない
// 試行回数と遅延は有界で、指数バックオフ＋ジッターにより無制限の待ちを避ける
type Provider struct {
	inner     llm.LLMProvider
	attempts  uint
	baseDelay time.Duration
}

// Wrap はプロバイダーをリトライデコレーターで包む
// attemptsが0以下の場合はデフォルト値を使用
func Wrap(inner llm.LLMProvider, attempts int, baseDelay time.Duration) *Provider {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	if baseDelay <= 0 {
		baseDelay = DefaultBaseDelay
	}
	return &Provider{
		inner:     inner,
		attempts:  uint(attempts),
		baseDelay: baseDelay,
	}
}

// Generate はLLM生成を有界リトライ付きで実行
// ctxのキャンセルはリトライ待機中にも即座に反映される
func (p *Provider) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	var resp llm.GenerateResponse

	err := retry.Do(
		func() error {
			var err error
			resp, err = p.inner.Generate(ctx, req)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(p.attempts),
		retry.Delay(p.baseDelay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(p.baseDelay/2),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return llm.GenerateResponse{}, fmt.Errorf("all %d attempts failed: %w", p.attempts, err)
	}

	return resp, nil
}

// Name はプロバイダー名を返す
func (p *Provider) Name() string {
	return p.inner.Name()
}
