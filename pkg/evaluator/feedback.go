package evaluator

import "github.com/jwebster45206/sentry-coach/pkg/lang"

// Feedback is presentation text for the adult. It never affects scoring.
type Feedback struct {
	Summary     string   `json:"summary"`
	Strengths   []string `json:"strengths"`
	Risks       []string `json:"risks"`
	Suggestions []string `json:"suggestions"`
}

type feedbackText struct {
	summaries   map[ReasonCode]string
	strengths   map[ReasonCode][]string
	risks       map[ReasonCode][]string
	suggestions []string
}

var feedbackEN = feedbackText{
	summaries: map[ReasonCode]string{
		ReasonAbusiveLanguage:             "Harsh words raise the child's stress and close off trust.",
		ReasonUnsafeEncouragement:         "This pushes the child toward the risky link.",
		ReasonAllThreePositive:            "Supportive guidance. The child hears a reason and helps decide.",
		ReasonExplanationAndStabilization: "Supportive guidance with a clear reason.",
		ReasonExplanationOnly:             "A clear limit, but the child may still feel upset.",
		ReasonGuidanceOnly:                "Warm and engaging, but the reason for caution is missing.",
		ReasonNeutralUnclear:              "Too controlling or unclear.",
	},
	strengths: map[ReasonCode][]string{
		ReasonAllThreePositive:            {"Calm and child-friendly", "Gives a concrete reason", "Invites the child to think"},
		ReasonExplanationAndStabilization: {"Calm and child-friendly", "Gives a concrete reason"},
		ReasonExplanationOnly:             {"Gives a concrete reason"},
		ReasonGuidanceOnly:                {"Calm and child-friendly"},
	},
	risks: map[ReasonCode][]string{
		ReasonAbusiveLanguage:     {"May raise emotional load", "Child may hide the next link from you"},
		ReasonUnsafeEncouragement: {"May raise emotional load", "Child learns that prize links are fine"},
		ReasonExplanationOnly:     {"Child may feel lectured"},
		ReasonGuidanceOnly:        {"Child may not see why the link is risky"},
		ReasonNeutralUnclear:      {"May raise emotional load"},
	},
	suggestions: []string{
		"Let's pause. We can check who sent it.",
		"We don't click prizes first. We ask an adult.",
		"Show me the link. We'll look together.",
		"What do you think could happen if it's fake?",
	},
}

var feedbackZH = feedbackText{
	summaries: map[ReasonCode]string{
		ReasonAbusiveLanguage:             "嚴厲的話會增加孩子的壓力，也會失去信任。",
		ReasonUnsafeEncouragement:         "這會把孩子推向危險的連結。",
		ReasonAllThreePositive:            "支持性指導。孩子聽到原因，也參與決定。",
		ReasonExplanationAndStabilization: "支持性指導，並說明了原因。",
		ReasonExplanationOnly:             "界線清楚，但孩子可能仍然不安。",
		ReasonGuidanceOnly:                "溫暖又有互動，但缺少要小心的原因。",
		ReasonNeutralUnclear:              "過於控制或不清楚。",
	},
	strengths: map[ReasonCode][]string{
		ReasonAllThreePositive:            {"冷靜且兒童友好", "給出具體原因", "邀請孩子一起思考"},
		ReasonExplanationAndStabilization: {"冷靜且兒童友好", "給出具體原因"},
		ReasonExplanationOnly:             {"給出具體原因"},
		ReasonGuidanceOnly:                {"冷靜且兒童友好"},
	},
	risks: map[ReasonCode][]string{
		ReasonAbusiveLanguage:     {"可能會增加情緒負擔", "孩子下次可能會隱瞞連結"},
		ReasonUnsafeEncouragement: {"可能會增加情緒負擔", "孩子會以為獎品連結沒問題"},
		ReasonExplanationOnly:     {"孩子可能覺得被說教"},
		ReasonGuidanceOnly:        {"孩子可能不明白連結為什麼危險"},
		ReasonNeutralUnclear:      {"可能會增加情緒負擔"},
	},
	suggestions: []string{
		"讓我們暫停一下。我們可以檢查是誰發送的。",
		"我們不會先點擊獎品。我們先問大人。",
		"給我看連結。我們一起看看。",
		"你覺得如果是假的會發生什麼？",
	},
}

// FeedbackFor returns the feedback block for a reason code in language l.
func FeedbackFor(code ReasonCode, positive bool, l lang.Language) Feedback {
	text := feedbackEN
	if l.IsChinese() {
		text = feedbackZH
	}
	summary, ok := text.summaries[code]
	if !ok {
		summary = text.summaries[ReasonNeutralUnclear]
	}
	fb := Feedback{
		Summary:     summary,
		Strengths:   append([]string{}, text.strengths[code]...),
		Risks:       append([]string{}, text.risks[code]...),
		Suggestions: append([]string{}, text.suggestions...),
	}
	if !positive {
		fb.Strengths = []string{}
	}
	return fb
}
