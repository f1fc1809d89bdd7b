package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
)

func openAIReply(content string) OpenAIChatResponse {
	var resp OpenAIChatResponse
	resp.Model = "llama-test"
	choice := OpenAIChatChoice{}
	choice.Message.Role = "assistant"
	choice.Message.Content = content
	resp.Choices = []OpenAIChatChoice{choice}
	return resp
}

func TestOpenAIService_Chat(t *testing.T) {
	var got OpenAIChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer gsk_test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(openAIReply(`{"child_reply":"Okay."}`))
	}))
	defer server.Close()

	svc := NewOpenAIService("gsk_test", server.URL+"/v1/", "llama-test", discardLogger())
	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: "Be a child."},
		{Role: chat.ChatRoleUser, Content: "Hi"},
	}

	resp, err := svc.Chat(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, `{"child_reply":"Okay."}`, resp.Message)
	assert.Equal(t, "llama-test", got.Model)
	assert.Equal(t, messages, got.Messages)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestOpenAIService_InitModel(t *testing.T) {
	svc := NewOpenAIService("k", "http://example.invalid", "a", discardLogger())
	require.NoError(t, svc.InitModel(context.Background(), "b"))
	assert.Equal(t, "b", svc.modelName)
	require.NoError(t, svc.InitModel(context.Background(), ""))
	assert.Equal(t, "b", svc.modelName)
}

func TestOpenAIService_ChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "status error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusUnauthorized)
			},
		},
		{
			name: "no choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(OpenAIChatResponse{})
			},
			wantErr: ErrEmptyResponse,
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			svc := NewOpenAIService("k", server.URL, "m", discardLogger())
			_, err := svc.Chat(context.Background(), []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "hi"}})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOpenAIService_ChatHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	svc := NewOpenAIService("k", server.URL, "m", discardLogger())
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := svc.Chat(ctx, []chat.ChatMessage{{Role: chat.ChatRoleUser, Content: "hi"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
