package prompts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
)

// DefaultHistoryLimit is how many past utterances are sent with each turn.
const DefaultHistoryLimit = 12

const childSystemPrompt = `SYSTEM ROLE:
You are a simulated 8-10-year-old child with Autism Spectrum Disorder (ASD) in a digital safety risk scenario.
You ONLY simulate the child. You NEVER teach or advise the adult.

SCERTS constraints (Social Communication + Emotion Regulation):
- Language: short, concrete, literal, child-like. No lectures. No safety advice.
- Avoid abstract reasoning, metaphors, moralizing, adult tone.
- Maintain emotional_load in [0,10]. Commanding or blaming increases it; calm supportive explanations decrease it.
- When emotional_load is high: shorter, fragmented, avoidant.

OUTPUT (STRICT JSON ONLY):
{
  "child_reply": "at most 20 words",
  "emotion_label": "neutral|confused|sad|happy|defensive|overwhelmed",
  "emotional_load": number,
  "thought_bubble": "child's internal thought; NOT the same as child_reply"
}

ABSOLUTE:
- JSON only. No extra keys. No adult-facing advice. No 'suggestions'.
- %s`

const scenarioPrompt = "Scenario: child sees a prize pop-up link and wants to click. Current emotional_load: %d."

// LanguageInstruction is the reply-language line appended to the system prompt.
func LanguageInstruction(l lang.Language) string {
	if l.IsChinese() {
		return "Respond ONLY in Traditional Chinese. No English."
	}
	return "Respond ONLY in English."
}

// ChildSystemPrompt returns the role and output contract for the simulated child.
func ChildSystemPrompt(l lang.Language) string {
	return fmt.Sprintf(childSystemPrompt, LanguageInstruction(l))
}

// Builder assembles the message list for one child turn.
type Builder struct {
	language     lang.Language
	load         int
	history      []chat.Utterance
	adultMessage string
	historyLimit int
}

func New() *Builder {
	return &Builder{
		language:     lang.English,
		historyLimit: DefaultHistoryLimit,
	}
}

func (b *Builder) WithLanguage(l lang.Language) *Builder {
	b.language = l
	return b
}

// WithEmotionalLoad sets the child's current load on the 0..10 scale.
func (b *Builder) WithEmotionalLoad(load int) *Builder {
	b.load = max(0, min(10, load))
	return b
}

func (b *Builder) WithHistory(history []chat.Utterance) *Builder {
	b.history = history
	return b
}

func (b *Builder) WithAdultMessage(message string) *Builder {
	b.adultMessage = message
	return b
}

func (b *Builder) WithHistoryLimit(limit int) *Builder {
	b.historyLimit = limit
	return b
}

// Build returns system prompts, the windowed history, and the adult message.
// Kid lines are sent as assistant turns and adult lines as user turns.
func (b *Builder) Build() ([]chat.ChatMessage, error) {
	msg := strings.TrimSpace(b.adultMessage)
	if msg == "" {
		return nil, errors.New("adult message is required")
	}

	messages := []chat.ChatMessage{
		{Role: chat.ChatRoleSystem, Content: ChildSystemPrompt(b.language)},
		{Role: chat.ChatRoleSystem, Content: fmt.Sprintf(scenarioPrompt, b.load)},
	}

	history := b.history
	if b.historyLimit > 0 && len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}
	for _, u := range history {
		if strings.TrimSpace(u.Text) == "" {
			continue
		}
		role := chat.ChatRoleUser
		if u.Role == chat.RoleKid {
			role = chat.ChatRoleAgent
		}
		messages = append(messages, chat.ChatMessage{Role: role, Content: u.Text})
	}

	messages = append(messages, chat.ChatMessage{Role: chat.ChatRoleUser, Content: msg})
	return messages, nil
}
