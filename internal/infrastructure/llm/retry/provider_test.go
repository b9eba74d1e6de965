package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Nyukimin/supportdesk/internal/domain/llm"
)

// flakyProvider は指定回数だけ失敗してから成功するプロバイダー
type flakyProvider struct {
	failures int
	calls    int
}

func (f *flakyProvider) Generate(ctx context.Context, req llm.GenerateRequest) (llm.GenerateResponse, error) {
	f.calls++
	if f.calls <= f.failures {
		return llm.GenerateResponse{}, errors.New("transient error")
	}
	return llm.GenerateResponse{Content: "ok"}, nil
}

func (f *flakyProvider) Name() string {
	return "flaky"
}

func TestProvider_Generate_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &flakyProvider{failures: 2}
	provider := Wrap(inner, 3, time.Millisecond)

	resp, err := provider.Generate(context.Background(), llm.GenerateRequest{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if resp.Content != "ok" {
		t.Errorf("Unexpected content: %s", resp.Content)
	}

	if inner.calls != 3 {
		t.Errorf("Expected 3 calls, got %d", inner.calls)
	}
}

func TestProvider_Generate_ExhaustsAttempts(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	provider := Wrap(inner, 3, time.Millisecond)

	_, err := provider.Generate(context.Background(), llm.GenerateRequest{})
	if err == nil {
		t.Fatal("Expected error after exhausting attempts")
	}

	// 試行回数は有界
	if inner.calls != 3 {
		t.Errorf("Expected exactly 3 calls, got %d", inner.calls)
	}
}

func TestProvider_Generate_ContextCancelled(t *testing.T) {
	inner := &flakyProvider{failures: 10}
	provider := Wrap(inner, 5, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := provider.Generate(ctx, llm.GenerateRequest{})
	if err == nil {
		t.Fatal("Expected error for cancelled context")
	}

	// キャンセル後にバックオフ待機を続けないこと
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Retry kept waiting after cancellation: %v", elapsed)
	}
}

func TestProvider_Name_DelegatesToInner(t *testing.T) {
	provider := Wrap(&flakyProvider{}, 3, time.Millisecond)

	if provider.Name() != "flaky" {
		t.Errorf("Expected inner provider name, got %s", provider.Name())
	}
}

func TestWrap_DefaultsForInvalidSettings(t *testing.T) {
	provider := Wrap(&flakyProvider{}, 0, 0)

	if provider.attempts != DefaultAttempts {
		t.Errorf("Expected default attempts %d, got %d", DefaultAttempts, provider.attempts)
	}

	if provider.baseDelay != DefaultBaseDelay {
		t.Errorf("Expected default base delay %v, got %v", DefaultBaseDelay, provider.baseDelay)
	}
}
