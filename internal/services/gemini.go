package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
)

// GeminiService implements LLMService with the Gemini SDK.
type GeminiService struct {
	client    *genai.Client
	modelName string
	logger    *slog.Logger
}

func NewGeminiService(ctx context.Context, apiKey, modelName string, logger *slog.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{client: client, modelName: modelName, logger: logger}, nil
}

func (g *GeminiService) InitModel(ctx context.Context, modelName string) error {
	if modelName != "" {
		g.modelName = modelName
	}
	return nil
}

func (g *GeminiService) Close() error {
	return g.client.Close()
}

func (g *GeminiService) Chat(ctx context.Context, messages []chat.ChatMessage) (*chat.ChatResponse, error) {
	system, history, last, err := toGeminiContents(messages)
	if err != nil {
		return nil, err
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(DefaultOpenAITemperature)
	model.ResponseMIMEType = "application/json"
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	cs.History = history
	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := getText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyResponse
	}
	return &chat.ChatResponse{Message: text}, nil
}

// toGeminiContents maps chat messages onto a system instruction, prior
// history, and the final user message to send.
func toGeminiContents(messages []chat.ChatMessage) (string, []*genai.Content, string, error) {
	system, turns := splitChatMessages(messages)
	if len(turns) == 0 || turns[len(turns)-1].Role != chat.ChatRoleUser {
		return "", nil, "", fmt.Errorf("last message must come from the user")
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, t := range turns[:len(turns)-1] {
		role := "user"
		if t.Role == chat.ChatRoleAgent {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(t.Content)}})
	}
	return system, history, turns[len(turns)-1].Content, nil
}

func getText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
