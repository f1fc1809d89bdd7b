package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChildReply(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  error
		expected ChildReply
	}{
		{
			name:    "plain object",
			content: `{"child_reply":"Why not?","emotion_label":"confused","emotional_load":5,"thought_bubble":"I want it."}`,
			expected: ChildReply{
				ChildReply:    "Why not?",
				EmotionLabel:  "confused",
				EmotionalLoad: 5,
				ThoughtBubble: "I want it.",
			},
		},
		{
			name:    "fenced with prose",
			content: "Sure!\n```json\n{\"child_reply\": \"Okay.\", \"emotion_label\": \"happy\", \"emotional_load\": \"3\"}\n```",
			expected: ChildReply{
				ChildReply:    "Okay.",
				EmotionLabel:  "happy",
				EmotionalLoad: 3,
			},
		},
		{
			name:    "trailing comma and bare keys",
			content: `{child_reply: "我不知道", emotion_label: "sad",}`,
			expected: ChildReply{
				ChildReply:   "我不知道",
				EmotionLabel: "sad",
			},
		},
		{
			name:    "no object",
			content: "I am a child and I want the prize",
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "empty reply",
			content: `{"child_reply":"   ","emotion_label":"sad"}`,
			wantErr: ErrNoChildReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChildReply(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *got)
		})
	}
}

func TestParseChildReply_Garbage(t *testing.T) {
	_, err := ParseChildReply(`{"child_reply": "x" "oops"}`)
	assert.Error(t, err)
}

func TestLastByRole(t *testing.T) {
	history := []Utterance{
		{Role: RoleKid, Text: "k1", Turn: 0},
		{Role: RoleAdult, Text: "a1", Turn: 1},
		{Role: RoleKid, Text: "k2", Turn: 1},
		{Role: RoleAdult, Text: "a2", Turn: 2},
		{Role: RoleKid, Text: "k3", Turn: 2},
	}

	got := LastByRole(history, RoleKid, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "k2", got[0].Text)
	assert.Equal(t, "k3", got[1].Text)

	assert.Len(t, LastByRole(history, RoleAdult, 10), 2)
	assert.Empty(t, LastByRole(nil, RoleKid, 4))
}

func TestTurnRequest_Validate(t *testing.T) {
	assert.Error(t, (&TurnRequest{AdultMessage: "  "}).Validate())
	assert.NoError(t, (&TurnRequest{AdultMessage: "Let's look together"}).Validate())
}
