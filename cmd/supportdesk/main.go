package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	slackapi "github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/Nyukimin/supportdesk/internal/adapter/config"
	"github.com/Nyukimin/supportdesk/internal/adapter/httpapi"
	slackadapter "github.com/Nyukimin/supportdesk/internal/adapter/slack"
	"github.com/Nyukimin/supportdesk/internal/application/workflow"
	"github.com/Nyukimin/supportdesk/internal/domain/llm"
	"github.com/Nyukimin/supportdesk/internal/domain/persona"
	"github.com/Nyukimin/supportdesk/internal/infrastructure/classify"
	"github.com/Nyukimin/supportdesk/internal/infrastructure/llm/claude"
	"github.com/Nyukimin/supportdesk/internal/infrastructure/llm/groq"
	"github.com/Nyukimin/supportdesk/internal/infrastructure/llm/ollama"
	"github.com/Nyukimin/supportdesk/internal/infrastructure/llm/openai"
	"github.com/Nyukimin/supportdesk/internal/infrastructure/llm/retry"
	personarepo "github.com/Nyukimin/supportdesk/internal/infrastructure/persistence/persona"
	"github.com/Nyukimin/supportdesk/internal/infrastructure/respond"
	"github.com/Nyukimin/supportdesk/pkg/logger"
)

func main() {
	// .envから環境変数を読み込み（ファイルがなければ無視）
	_ = godotenv.Load()

	// 設定読み込み
	configPath := getConfigPath()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLogger.Sync()

	if configPath != "" {
		zapLogger.Info("loaded config", zap.String("path", configPath))
	}

	// 依存関係構築
	mux, err := buildHandler(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to build dependencies", zap.Error(err))
	}

	// HTTPサーバー起動
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("starting supportdesk server",
		zap.String("addr", addr),
		zap.String("provider", cfg.Provider.Name))

	if err := http.ListenAndServe(addr, mux); err != nil {
		zapLogger.Fatal("server failed", zap.Error(err))
	}
}

// getConfigPath は設定ファイルパスを決定
func getConfigPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return os.Getenv("SUPPORTDESK_CONFIG")
}

// buildHandler は依存関係を構築してHTTPハンドラーを返す
func buildHandler(cfg *config.Config, zapLogger *zap.Logger) (http.Handler, error) {
	// 1. LLM Provider（設定で選択し、リトライデコレーターで包む）
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}
	provider = retry.Wrap(provider, cfg.Retry.MaxAttempts, time.Duration(cfg.Retry.BaseDelayMS)*time.Millisecond)

	zapLogger.Info("LLM provider ready", zap.String("name", provider.Name()))

	// 2. Persona Registry（網羅性検証は起動時に1回だけ、失敗したらリクエストを受け付けない）
	personas, err := personarepo.NewYAMLRepository(cfg.Personas.Path).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}

	registry, err := persona.NewRegistry(personas)
	if err != nil {
		return nil, fmt.Errorf("persona registry validation failed: %w", err)
	}

	// 3. Workflow Engine
	engine := workflow.NewEngine(
		classify.NewLLMClassifier(provider),
		respond.NewLLMResponder(provider),
		registry,
		zapLogger,
	)

	// 4. Adapters
	mux := http.NewServeMux()
	mux.Handle("/", httpapi.NewHandler(engine, zapLogger))

	if cfg.Slack.Enabled {
		slackClient := slackapi.New(cfg.Slack.BotToken)
		mux.Handle("/slack/events", slackadapter.NewHandler(engine, slackClient, cfg.Slack.SigningSecret, zapLogger))
		zapLogger.Info("slack intake enabled")
	}

	return mux, nil
}

// buildProvider は設定に応じたLLMプロバイダーを作成
func buildProvider(cfg *config.Config) (llm.LLMProvider, error) {
	switch cfg.Provider.Name {
	case "groq":
		return groq.NewGroqProvider(cfg.Groq.APIKey, cfg.Groq.Model), nil
	case "openai":
		return openai.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil
	case "claude":
		return claude.NewClaudeProvider(cfg.Claude.APIKey, cfg.Claude.Model), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.Ollama.BaseURL, cfg.Ollama.Model), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider.Name)
	}
}
