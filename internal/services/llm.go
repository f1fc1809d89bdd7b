package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/sentry-coach/internal/config"
	"github.com/jwebster45206/sentry-coach/pkg/chat"
)

// ErrEmptyResponse is returned when a provider answers with no text.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// LLMService is a chat-completion backend for the simulated child.
type LLMService interface {
	// InitModel prepares the named model on startup
	InitModel(ctx context.Context, modelName string) error

	// Chat sends the full message list and returns the raw reply text
	Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error)
}

// NewLLMService builds the provider named in cfg. The "none" provider
// returns a nil service and turns always use the deterministic fallback.
func NewLLMService(ctx context.Context, cfg *config.Config, log *slog.Logger) (LLMService, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		log.Info("Using OpenAI-compatible LLM provider", "base_url", cfg.OpenAIBaseURL)
		return NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.ModelName, log), nil
	case config.ProviderAnthropic:
		log.Info("Using Anthropic LLM provider")
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log), nil
	case config.ProviderGemini:
		log.Info("Using Gemini LLM provider")
		return NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.ModelName, log)
	case config.ProviderNone:
		log.Warn("No LLM provider configured, child replies will use the fallback line")
		return nil, nil
	}
	return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
}
