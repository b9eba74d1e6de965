package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Provider ProviderConfig `yaml:"provider"`
	Groq     GroqConfig     `yaml:"groq"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Claude   ClaudeConfig   `yaml:"claude"`
	Ollama   OllamaConfig   `yaml:"ollama"`
	Retry    RetryConfig    `yaml:"retry"`
	Personas PersonasConfig `yaml:"personas"`
	Slack    SlackConfig    `yaml:"slack"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig はHTTPサーバー設定
type ServerConfig struct {
	Host string `yaml:"host" env:"SUPPORTDESK_SERVER_HOST"`
	Port int    `yaml:"port" env:"SUPPORTDESK_SERVER_PORT"`
}

// ProviderConfig は使用するLLMプロバイダーの選択
type ProviderConfig struct {
	Name string `yaml:"name" env:"SUPPORTDESK_PROVIDER"` // groq / openai / claude / ollama
}

// GroqConfig はGroq API設定
type GroqConfig struct {
	APIKey string `yaml:"api_key" env:"GROQ_API_KEY"` // 環境変数から読み込み推奨
	Model  string `yaml:"model" env:"SUPPORTDESK_GROQ_MODEL"`
}

// OpenAIConfig はOpenAI API設定
type OpenAIConfig struct {
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"` // 環境変数から読み込み推奨
	Model  string `yaml:"model" env:"SUPPORTDESK_OPENAI_MODEL"`
}

// ClaudeConfig はClaude API設定
type ClaudeConfig struct {
	APIKey string `yaml:"api_key" env:"ANTHROPIC_API_KEY"` // 環境変数から読み込み推奨
	Model  string `yaml:"model" env:"SUPPORTDESK_CLAUDE_MODEL"`
}

// OllamaConfig はOllama設定
type OllamaConfig struct {
	BaseURL string `yaml:"base_url" env:"SUPPORTDESK_OLLAMA_BASE_URL"`
	Model   string `yaml:"model" env:"SUPPORTDESK_OLLAMA_MODEL"`
}

// RetryConfig はポートアダプターのリトライ設定
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts" env:"SUPPORTDESK_RETRY_MAX_ATTEMPTS"`
	BaseDelayMS int `yaml:"base_delay_ms" env:"SUPPORTDESK_RETRY_BASE_DELAY_MS"`
}

// PersonasConfig はPersonaファイル設定
// Pathが空の場合は組み込みデフォルトを使用
type PersonasConfig struct {
	Path string `yaml:"path" env:"SUPPORTDESK_PERSONAS_PATH"`
}

// SlackConfig はSlack受付チャネル設定
type SlackConfig struct {
	Enabled       bool   `yaml:"enabled" env:"SUPPORTDESK_SLACK_ENABLED"`
	SigningSecret string `yaml:"signing_secret" env:"SLACK_SIGNING_SECRET"`
	BotToken      string `yaml:"bot_token" env:"SLACK_BOT_TOKEN"`
}

// LogConfig はログ設定
type LogConfig struct {
	Level  string `yaml:"level" env:"SUPPORTDESK_LOG_LEVEL"`
	Format string `yaml:"format" env:"SUPPORTDESK_LOG_FORMAT"`
}

// 有効なプロバイダー名
var validProviders = map[string]bool{
	"groq":   true,
	"openai": true,
	"claude": true,
	"ollama": true,
}

// LoadConfig は設定ファイルを読み込む
// pathが空の場合はデフォルト値＋環境変数のみで構築する
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	// 環境変数で上書き（機密情報はファイルに平文保存しない）
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults はデフォルト値を設定
func (c *Config) setDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}

	if c.Provider.Name == "" {
		c.Provider.Name = "groq"
	}

	if c.Groq.Model == "" {
		c.Groq.Model = "meta-llama/llama-4-scout-17b-16e-instruct"
	}

	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}

	if c.Claude.Model == "" {
		c.Claude.Model = "claude-sonnet-4-20250514"
	}

	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = "http://localhost:11434"
	}

	if c.Ollama.Model == "" {
		c.Ollama.Model = "llama3"
	}

	if c.Retry.MaxAttempts == 0 {
		c.Retry.MaxAttempts = 3
	}

	if c.Retry.BaseDelayMS == 0 {
		c.Retry.BaseDelayMS = 500
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate は設定の妥当性を検証
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}

	if !validProviders[c.Provider.Name] {
		return fmt.Errorf("invalid provider: %q (must be groq, openai, claude or ollama)", c.Provider.Name)
	}

	// 選択したプロバイダーのAPIキー検証（ollamaはキー不要）
	switch c.Provider.Name {
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("groq api_key is required (set GROQ_API_KEY)")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai api_key is required (set OPENAI_API_KEY)")
		}
	case "claude":
		if c.Claude.APIKey == "" {
			return fmt.Errorf("claude api_key is required (set ANTHROPIC_API_KEY)")
		}
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be at least 1")
	}

	if c.Slack.Enabled {
		if c.Slack.SigningSecret == "" {
			return fmt.Errorf("slack signing_secret is required when slack is enabled")
		}
		if c.Slack.BotToken == "" {
			return fmt.Errorf("slack bot_token is required when slack is enabled")
		}
	}

	return nil
}
