package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LLM providers accepted in LLM_PROVIDER.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderNone      = "none"
)

var defaultModels = map[string]string{
	ProviderOpenAI:    "llama-3.1-8b-instant",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderGemini:    "gemini-1.5-flash",
}

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL   string
	SessionTTL time.Duration

	LLMProvider     string
	ModelName       string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	GeminiAPIKey    string
	LLMTimeout      time.Duration

	PDFFontPath string
}

// Load reads configuration from the environment, after merging a .env file
// from the working directory if one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	sessionTTL, err := getDuration("SESSION_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	llmTimeout, err := getDuration("LLM_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		SessionTTL:      sessionTTL,
		LLMProvider:     provider,
		ModelName:       getEnv("MODEL_NAME", defaultModels[provider]),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", os.Getenv("GROQ_API_KEY")),
		OpenAIBaseURL:   strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.groq.com/openai/v1"), "/"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		LLMTimeout:      llmTimeout,
		PDFFontPath:     os.Getenv("PDF_FONT_PATH"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the provider and that its API key is present.
func (c *Config) Validate() error {
	var key string
	switch c.LLMProvider {
	case ProviderOpenAI:
		key = c.OpenAIAPIKey
	case ProviderAnthropic:
		key = c.AnthropicAPIKey
	case ProviderGemini:
		key = c.GeminiAPIKey
	case ProviderNone:
		return nil
	default:
		return fmt.Errorf("invalid LLM_PROVIDER %q (supported: openai, anthropic, gemini, none)", c.LLMProvider)
	}
	if key == "" {
		return fmt.Errorf("an API key is required for LLM provider %q", c.LLMProvider)
	}
	if c.ModelName == "" {
		return errors.New("MODEL_NAME is required")
	}
	return nil
}

// LLMConfigured reports whether turns will call a model at all.
func (c *Config) LLMConfigured() bool {
	return c.LLMProvider != ProviderNone
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
