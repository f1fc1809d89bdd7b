package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "SESSION_TTL", "LLM_PROVIDER",
	"MODEL_NAME", "OPENAI_API_KEY", "GROQ_API_KEY", "OPENAI_BASE_URL",
	"ANTHROPIC_API_KEY", "GEMINI_API_KEY", "LLM_TIMEOUT", "PDF_FONT_PATH",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.ModelName)
	assert.Equal(t, "gsk_test", cfg.OpenAIAPIKey)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.True(t, cfg.LLMConfigured())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("LOG_LEVEL", "warning")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("OPENAI_BASE_URL", "http://localhost:9999/v1/")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.ModelName)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, 45*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout)
	assert.Equal(t, "http://localhost:9999/v1", cfg.OpenAIBaseURL)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"LLM_PROVIDER": "venice"}},
		{"missing openai key", map[string]string{"LLM_PROVIDER": "openai"}},
		{"missing anthropic key", map[string]string{"LLM_PROVIDER": "anthropic"}},
		{"bad ttl", map[string]string{"LLM_PROVIDER": "none", "SESSION_TTL": "soon"}},
		{"negative timeout", map[string]string{"LLM_PROVIDER": "none", "LLM_TIMEOUT": "-1s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_NoProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "none")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.LLMConfigured())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}
