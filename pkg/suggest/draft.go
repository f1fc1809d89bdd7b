package suggest

import (
	"strings"

	"github.com/jwebster45206/sentry-coach/pkg/lang"
)

// Action is a building block the adult can pick to compose a draft reply.
type Action string

const (
	ActionDontClick  Action = "dont_click"
	ActionScreenshot Action = "screenshot"
	ActionShowLink   Action = "show_link"
	ActionAskAdult   Action = "ask_adult"
)

var actionText = map[lang.Language]map[Action]string{
	lang.English: {
		ActionDontClick:  "don't click the link",
		ActionScreenshot: "take a screenshot",
		ActionShowLink:   "show me the link first",
		ActionAskAdult:   "ask an adult before clicking",
	},
	lang.TraditionalChinese: {
		ActionDontClick:  "不要點擊連結",
		ActionScreenshot: "先截圖",
		ActionShowLink:   "先給我看連結",
		ActionAskAdult:   "先詢問大人",
	},
}

var draftJoiner = map[lang.Language]string{
	lang.English:            " and ",
	lang.TraditionalChinese: "、",
}

// Draft joins the selected actions into one clause. Unknown actions are
// ignored; an empty result means nothing usable was picked.
func Draft(l lang.Language, actions []Action) string {
	l = lang.Normalize(string(l))
	var parts []string
	seen := make(map[Action]bool)
	for _, a := range actions {
		text, ok := actionText[l][a]
		if !ok || seen[a] {
			continue
		}
		seen[a] = true
		parts = append(parts, text)
	}
	return strings.Join(parts, draftJoiner[l])
}

// ExpandDraft wraps a draft clause in the fixed draft templates. The click
// rewrite and length clamp apply as for pool suggestions.
func ExpandDraft(l lang.Language, draft string) []string {
	draft = strings.TrimRight(strings.TrimSpace(draft), ".。")
	if draft == "" {
		return nil
	}
	templates := catalogFor(l).drafts
	out := make([]string, 0, len(templates))
	for _, tpl := range templates {
		d := draft
		if strings.HasPrefix(tpl, "{draft}") || strings.Contains(tpl, ". {draft}") {
			d = capitalize(d)
		}
		out = append(out, finish(strings.ReplaceAll(tpl, "{draft}", d)))
	}
	return out
}
