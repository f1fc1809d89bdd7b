package state

import (
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
)

// MaxSeenSuggestions bounds the per-session suggestion exclusion set.
const MaxSeenSuggestions = 30

// Session is everything the server keeps for one practice conversation.
type Session struct {
	ID              uuid.UUID            `json:"id"`
	Language        lang.Language        `json:"language"`
	Game            GameState            `json:"game"`
	Child           ChildState           `json:"child"`
	History         []chat.Utterance     `json:"history"`
	Interventions   []InterventionRecord `json:"interventions"`
	SeenSuggestions []string             `json:"seen_suggestions,omitempty"`
	Suggestions     []string             `json:"suggestions,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func NewSession(l lang.Language) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:            uuid.New(),
		Language:      l,
		Game:          NewGameState(),
		Child:         NewChildState(),
		History:       make([]chat.Utterance, 0),
		Interventions: make([]InterventionRecord, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// AddUtterance appends a line to the history, stamped with the current round.
func (s *Session) AddUtterance(role chat.Role, text string) {
	s.History = append(s.History, chat.Utterance{Role: role, Text: text, Turn: s.Game.Round})
}

// LastKidReply returns the child's most recent line, or "".
func (s *Session) LastKidReply() string {
	recent := chat.LastByRole(s.History, chat.RoleKid, 1)
	if len(recent) == 0 {
		return ""
	}
	return recent[0].Text
}

// MarkSeen adds suggestion keys to the exclusion set, dropping the oldest
// entries beyond MaxSeenSuggestions.
func (s *Session) MarkSeen(keys ...string) {
	s.SeenSuggestions = append(s.SeenSuggestions, keys...)
	if over := len(s.SeenSuggestions) - MaxSeenSuggestions; over > 0 {
		s.SeenSuggestions = append([]string(nil), s.SeenSuggestions[over:]...)
	}
}

// Clone returns a copy whose slices can be changed without touching s.
func (s *Session) Clone() *Session {
	c := *s
	c.History = append([]chat.Utterance(nil), s.History...)
	c.Interventions = append([]InterventionRecord(nil), s.Interventions...)
	c.SeenSuggestions = append([]string(nil), s.SeenSuggestions...)
	c.Suggestions = append([]string(nil), s.Suggestions...)
	return &c
}
