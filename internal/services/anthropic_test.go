package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSplitChatMessages(t *testing.T) {
	tests := []struct {
		name           string
		messages       []chat.ChatMessage
		expectedSystem string
		expectedTurns  []chat.ChatMessage
	}{
		{
			name: "systems joined",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleSystem, Content: "Role."},
				{Role: chat.ChatRoleSystem, Content: "Scenario."},
				{Role: chat.ChatRoleUser, Content: "Hello"},
			},
			expectedSystem: "Role.\n\nScenario.",
			expectedTurns:  []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "Hello"}},
		},
		{
			name: "child speaks first",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleAgent, Content: "Should I click it?"},
				{Role: chat.ChatRoleUser, Content: "No."},
			},
			expectedTurns: []chat.ChatMessage{
				{Role: chat.ChatRoleUser, Content: conversationOpener},
				{Role: chat.ChatRoleAgent, Content: "Should I click it?"},
				{Role: chat.ChatRoleUser, Content: "No."},
			},
		},
		{
			name: "same role merged and blanks dropped",
			messages: []chat.ChatMessage{
				{Role: chat.ChatRoleUser, Content: "Wait."},
				{Role: chat.ChatRoleAgent, Content: "  "},
				{Role: chat.ChatRoleUser, Content: "Look."},
			},
			expectedTurns: []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "Wait.\nLook."}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, turns := splitChatMessages(tt.messages)
			assert.Equal(t, tt.expectedSystem, system)
			assert.Equal(t, tt.expectedTurns, turns)
		})
	}
}

func TestAnthropicService_Chat(t *testing.T) {
	var got AnthropicChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_ = json.NewEncoder(w).Encode(AnthropicChatResponse{
			Model:   "claude-test",
			Content: []AnthropicContentBlock{{Type: "text", Text: `{"child_reply":"Okay."}`}},
		})
	}))
	defer server.Close()

	svc := NewAnthropicService("test-key", "claude-test", discardLogger())
	svc.baseURL = server.URL

	resp, err := svc.Chat(context.Background(), []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "Be a child."},
		{Role: chat.ChatRoleUser, Content: "Let's look together."},
	})
	require.NoError(t, err)
	assert.Equal(t, `{"child_reply":"Okay."}`, resp.Message)
	assert.Equal(t, "Be a child.", got.System)
	assert.Equal(t, "claude-test", got.Model)
	require.Len(t, got.Messages, 1)
}

func TestAnthropicService_ChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload any
	}{
		{"http error", http.StatusTooManyRequests, map[string]string{"error": "slow down"}},
		{"api error", http.StatusOK, map[string]any{"error": map[string]string{"type": "invalid", "message": "bad"}}},
		{"empty content", http.StatusOK, AnthropicChatResponse{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.payload)
			}))
			defer server.Close()

			svc := NewAnthropicService("k", "m", discardLogger())
			svc.baseURL = server.URL
			_, err := svc.Chat(context.Background(), []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "hi"}})
			assert.Error(t, err)
		})
	}
}
