package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/sentry-coach/pkg/analysis"
	"github.com/jwebster45206/sentry-coach/pkg/chat"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
	"github.com/jwebster45206/sentry-coach/pkg/state"
)

type uiText struct {
	childName   string
	adultName   string
	round       string
	stars       string
	strikes     string
	emotion     string
	thought     string
	suggestions string
	pickHint    string
	won         string
	lost        string
}

var uiTexts = map[lang.Language]uiText{
	lang.English: {
		childName:   "Child",
		adultName:   "You",
		round:       "Round",
		stars:       "Stars",
		strikes:     "Strikes",
		emotion:     "Emotion",
		thought:     "Thinking",
		suggestions: "Suggestions",
		pickHint:    "Type 1-3 to send a suggestion",
		won:         "The child closed the pop-up. Well done! Type /report for the analysis or /new to practice again.",
		lost:        "The child clicked the link. Type /report for the analysis or /new to try again.",
	},
	lang.TraditionalChinese: {
		childName:   "孩子",
		adultName:   "你",
		round:       "回合",
		stars:       "星星",
		strikes:     "叉叉",
		emotion:     "情緒",
		thought:     "想法",
		suggestions: "建議回應",
		pickHint:    "輸入 1-3 送出建議",
		won:         "孩子關掉了彈出視窗，做得好！輸入 /report 查看分析，或 /new 再練習一次。",
		lost:        "孩子點擊了連結。輸入 /report 查看分析，或 /new 再試一次。",
	},
}

func textFor(l lang.Language) uiText {
	if l.IsChinese() {
		return uiTexts[lang.TraditionalChinese]
	}
	return uiTexts[lang.English]
}

// formatTranscript renders the conversation as plain text for the clipboard.
func formatTranscript(history []chat.Utterance, l lang.Language) string {
	t := textFor(l)
	sep := ": "
	if l.IsChinese() {
		sep = "："
	}
	var b strings.Builder
	for _, u := range history {
		name := t.childName
		if u.Role == chat.RoleAdult {
			name = t.adultName
		}
		b.WriteString(name + sep + u.Text + "\n")
	}
	return b.String()
}

// formatReport renders an analysis report as plain text.
func formatReport(r *analysis.Report) string {
	labels := analysis.LabelsFor(r.Language)

	outcome := labels.InProgress
	if r.Ended {
		outcome = labels.Failure
		if r.Outcome == state.OutcomeSuccess {
			outcome = labels.Success
		}
	}

	var b strings.Builder
	b.WriteString(labels.Title + "\n\n")
	b.WriteString(labels.OverallOutcome + ": " + outcome + "\n")
	b.WriteString(r.Summary + "\n\n")
	if len(r.Interventions) == 0 {
		return b.String()
	}

	b.WriteString(labels.InterventionTitle + "\n")
	for _, iv := range r.Interventions {
		b.WriteString("\n" + fmt.Sprintf(labels.RoundFormat, iv.Round) + " [" + labels.Evaluations[iv.Evaluation] + "]\n")
		b.WriteString(labels.AdultMessage + ": " + iv.AdultMessage + "\n")
		b.WriteString(labels.ChildReply + ": " + iv.ChildReply + "\n")
		if iv.Thought != "" {
			b.WriteString(labels.Thought + ": " + iv.Thought + "\n")
		}
		b.WriteString(labels.Reason + ": " + iv.Reason + "\n")
	}
	return b.String()
}

// suggestionPick maps "1".."n" to a zero-based index.
func suggestionPick(input string, n int) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}
