package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"

	"github.com/Nyukimin/supportdesk/internal/adapter/config"
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
	"github.com/Nyukimin/supportdesk/pkg/samples"
)

// 1回の問い合わせ処理のタイムアウト
const queryTimeout = 2 * time.Minute

func main() {
	// .envから環境変数を読み込み（ファイルがなければ無視）
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to build workflow engine: %v", err)
	}

	rl, err := readline.New("query> ")
	if err != nil {
		log.Fatalf("Failed to initialize readline: %v", err)
	}
	defer rl.Close()

	fmt.Println("supportdesk console — type a customer query, /samples to browse examples, /quit to exit")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return
		}

		input := strings.TrimSpace(line)
		switch {
		case input == "":
			continue
		case input == "/quit" || input == "/exit":
			return
		case input == "/samples":
			printSampleCategories()
		case strings.HasPrefix(input, "/samples "):
			printSamples(strings.TrimPrefix(input, "/samples "))
		default:
			runQuery(engine, input)
		}
	}
}

// getConfigPath は設定ファイルパスを決定
func getConfigPath() string {
	if len(os.Args) > 1 {
		return os.Args[1]
	}
	return os.Getenv("SUPPORTDESK_CONFIG")
}

// printSampleCategories はサンプルカテゴリ一覧を表示
func printSampleCategories() {
	fmt.Println("Sample categories:")
	for _, name := range samples.Categories() {
		fmt.Printf("  /samples %s\n", name)
	}
}

// printSamples は指定カテゴリのサンプル質問を表示
func printSamples(category string) {
	questions := samples.ForCategory(strings.TrimSpace(category))
	if questions == nil {
		fmt.Printf("Unknown category: %s\n", category)
		printSampleCategories()
		return
	}

	for _, q := range questions {
		fmt.Printf("  - %s\n", q)
	}
}

// runQuery は問い合わせを実行して結果を表示
func runQuery(engine *workflow.Engine, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	fmt.Println("Analyzing query...")

	result, err := engine.Run(ctx, text)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrEmptyQuery):
			fmt.Println("Please enter a query before proceeding.")
		case errors.Is(err, workflow.ErrClassification):
			fmt.Printf("Classification failed: %v\n", err)
		case errors.Is(err, workflow.ErrResponse):
			fmt.Printf("Response generation failed: %v\n", err)
		default:
			fmt.Printf("Error: %v\n", err)
		}
		return
	}

	c := result.Classification
	fmt.Printf("\nDepartment: %s\n", strings.ToUpper(c.Department.String()))
	fmt.Printf("Confidence: %s %.2f\n", confidenceBand(c.Confidence), c.Confidence)
	fmt.Printf("Reason:     %s\n", c.Reason)
	fmt.Printf("Handler:    %s\n", result.Decision.Handler)
	fmt.Printf("\n%s\n\n", result.Response)
}

// confidenceBand は確信度の帯域表示を返す
func confidenceBand(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "[high]"
	case confidence >= 0.7:
		return "[medium]"
	default:
		return "[low]"
	}
}

// buildEngine は依存関係を構築してワークフローエンジンを返す
func buildEngine(cfg *config.Config) (*workflow.Engine, error) {
	provider, err := buildProvider(cfg)
	if err != nil {
		return nil, err
	}
	provider = retry.Wrap(provider, cfg.Retry.MaxAttempts, time.Duration(cfg.Retry.BaseDelayMS)*time.Millisecond)

	personas, err := personarepo.NewYAMLRepository(cfg.Personas.Path).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}

	registry, err := persona.NewRegistry(personas)
	if err != nil {
		return nil, fmt.Errorf("persona registry validation failed: %w", err)
	}

	return workflow.NewEngine(
		classify.NewLLMClassifier(provider),
		respond.NewLLMResponder(provider),
		registry,
		nil,
	), nil
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
