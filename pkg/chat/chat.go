package chat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Role identifies who spoke an utterance in the practice conversation.
type Role string

const (
	RoleAdult Role = "adult"
	RoleKid   Role = "kid"
)

// Utterance is one recorded line of the conversation. History is append-only.
type Utterance struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	Turn int    `json:"turn"`
}

// TurnRequest is the normalized per-turn request shape.
type TurnRequest struct {
	AdultMessage string      `json:"adult_message"`
	History      []Utterance `json:"history,omitempty"`
	Language     string      `json:"language,omitempty"`
}

func (tr *TurnRequest) Validate() error {
	if strings.TrimSpace(tr.AdultMessage) == "" {
		return fmt.Errorf("adult_message cannot be empty")
	}
	return nil
}

// LastByRole returns up to n most recent utterances spoken by role, oldest first.
func LastByRole(history []Utterance, role Role, n int) []Utterance {
	var out []Utterance
	for i := len(history) - 1; i >= 0 && len(out) < n; i-- {
		if history[i].Role == role {
			out = append(out, history[i])
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

const (
	ChatRoleUser   = "user"      // adult
	ChatRoleAgent  = "assistant" // child
	ChatRoleSystem = "system"
)

// ChatMessage is a single message sent to an LLM provider.
type ChatMessage struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// ChatResponse is the raw text a provider returned.
type ChatResponse struct {
	Message string `json:"message,omitempty"`
}

// ChildReply is what the model is asked to produce for each turn. It is
// untrusted until it has been normalized.
type ChildReply struct {
	ChildReply    string `json:"child_reply"`
	EmotionLabel  string `json:"emotion_label"`
	EmotionalLoad Load   `json:"emotional_load"`
	ThoughtBubble string `json:"thought_bubble"`
}

// Load is an emotional load value. Models sometimes send it as a string.
type Load float64

func (l *Load) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*l = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid emotional_load %q: %w", s, err)
	}
	*l = Load(v)
	return nil
}

func (l Load) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(l))
}
