package prompts

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
)

func TestBuilder_Build(t *testing.T) {
	history := []chat.Utterance{
		{Role: chat.RoleKid, Text: "Should I click it?", Turn: 1},
		{Role: chat.RoleAdult, Text: "Let's look first.", Turn: 1},
		{Role: chat.RoleKid, Text: "", Turn: 2},
		{Role: chat.RoleKid, Text: "Okay.", Turn: 2},
	}

	msgs, err := New().
		WithLanguage(lang.English).
		WithEmotionalLoad(4).
		WithHistory(history).
		WithAdultMessage("  Who sent it?  ").
		Build()
	require.NoError(t, err)
	require.Len(t, msgs, 6)

	assert.Equal(t, chat.ChatRoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "SCERTS")
	assert.Contains(t, msgs[0].Content, "Respond ONLY in English.")
	assert.Contains(t, msgs[1].Content, "emotional_load: 4")

	assert.Equal(t, chat.ChatMessage{Role: chat.ChatRoleAgent, Content: "Should I click it?"}, msgs[2])
	assert.Equal(t, chat.ChatMessage{Role: chat.ChatRoleUser, Content: "Let's look first."}, msgs[3])
	assert.Equal(t, chat.ChatMessage{Role: chat.ChatRoleAgent, Content: "Okay."}, msgs[4])
	assert.Equal(t, chat.ChatMessage{Role: chat.ChatRoleUser, Content: "Who sent it?"}, msgs[5])
}

func TestBuilder_Chinese(t *testing.T) {
	msgs, err := New().WithLanguage(lang.TraditionalChinese).WithAdultMessage("我們一起看看").Build()
	require.NoError(t, err)
	assert.Contains(t, msgs[0].Content, "Respond ONLY in Traditional Chinese. No English.")
}

func TestBuilder_HistoryWindow(t *testing.T) {
	var history []chat.Utterance
	for i := 0; i < 20; i++ {
		history = append(history, chat.Utterance{Role: chat.RoleAdult, Text: fmt.Sprintf("line %d", i)})
	}

	msgs, err := New().WithHistory(history).WithAdultMessage("hi").Build()
	require.NoError(t, err)
	assert.Len(t, msgs, 2+DefaultHistoryLimit+1)
	assert.Equal(t, "line 8", msgs[2].Content)

	msgs, err = New().WithHistory(history).WithHistoryLimit(3).WithAdultMessage("hi").Build()
	require.NoError(t, err)
	assert.Len(t, msgs, 6)
}

func TestBuilder_LoadClamped(t *testing.T) {
	msgs, err := New().WithEmotionalLoad(42).WithAdultMessage("hi").Build()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(msgs[1].Content, "emotional_load: 10."))
}

func TestBuilder_RequiresMessage(t *testing.T) {
	_, err := New().WithAdultMessage("   ").Build()
	assert.Error(t, err)
}
