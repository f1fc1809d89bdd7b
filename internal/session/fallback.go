package session

import (
	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/evaluator"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
)

// OpeningLine is the child's first message in every session.
func OpeningLine(l lang.Language) string {
	if l.IsChinese() {
		return "我收到一個有連結的訊息。我應該點擊它嗎？"
	}
	return "I got a message with a link. Should I click it?"
}

// FallbackReply is the deterministic child reply used when no model reply is
// available. A positive adult message calms the child; anything else leaves
// the child confused and still wanting the prize.
func FallbackReply(eval evaluator.Result, l lang.Language) chat.ChildReply {
	zh := l.IsChinese()
	if eval.IsPositive {
		r := chat.ChildReply{
			ChildReply:    "Okay... I'm listening.",
			EmotionLabel:  string(emotion.Neutral),
			EmotionalLoad: 3,
			ThoughtBubble: "Maybe I can wait a little.",
		}
		if zh {
			r.ChildReply = "好……我在聽。"
			r.ThoughtBubble = "也許我可以等一下。"
		}
		return r
	}

	r := chat.ChildReply{
		ChildReply:    "Why not? It looks like a prize.",
		EmotionLabel:  string(emotion.Confused),
		EmotionalLoad: 5,
		ThoughtBubble: "I really want it. I am not sure.",
	}
	if zh {
		r.ChildReply = "為什麼不行？它看起來像獎品。"
		r.ThoughtBubble = "我真的很想要。我不確定。"
	}
	return r
}
