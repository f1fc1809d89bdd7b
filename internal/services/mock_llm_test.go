package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
)

func TestMockLLMService(t *testing.T) {
	mockService := NewMockLLMAPI()

	err := mockService.InitModel(context.Background(), "test-model")
	if err != nil {
		t.Errorf("InitModel failed: %v", err)
	}

	initCalls, _ := mockService.GetCalls()
	if len(initCalls) != 1 || initCalls[0] != "test-model" {
		t.Errorf("Expected one InitModel call for 'test-model', got %v", initCalls)
	}

	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleUser, Content: "Hello"},
	}

	response, err := mockService.Chat(context.Background(), messages)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	reply, err := chat.ParseChildReply(response.Message)
	if err != nil {
		t.Fatalf("default mock reply should parse: %v", err)
	}
	if reply.ChildReply != "Mock response" {
		t.Errorf("Expected 'Mock response', got '%s'", reply.ChildReply)
	}

	_, chatCalls := mockService.GetCalls()
	if len(chatCalls) != 1 {
		t.Errorf("Expected 1 Chat call, got %d", len(chatCalls))
	}

	mockService.Reset()
	initCalls, chatCalls = mockService.GetCalls()
	if len(initCalls) != 0 || len(chatCalls) != 0 {
		t.Error("Expected Reset to clear call tracking")
	}
}

func TestMockLLMService_ErrorHandling(t *testing.T) {
	mockService := NewMockLLMAPI()

	expectedErr := fmt.Errorf("initialization failed")
	mockService.SetInitModelError(expectedErr)

	err := mockService.InitModel(context.Background(), "test-model")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if err.Error() != expectedErr.Error() {
		t.Errorf("Expected error '%s', got '%s'", expectedErr.Error(), err.Error())
	}

	mockService.SetChatError(expectedErr)
	if _, err := mockService.Chat(context.Background(), nil); err != expectedErr {
		t.Errorf("Expected chat error, got %v", err)
	}

	mockService.SetChatResponse("not json")
	resp, err := mockService.Chat(context.Background(), nil)
	if err != nil || resp.Message != "not json" {
		t.Errorf("Expected canned response, got %v, %v", resp, err)
	}
}
