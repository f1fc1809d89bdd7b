package evaluator

import (
	"strings"

	"github.com/jwebster45206/sentry-coach/pkg/textfilter"
)

var (
	commandEffects = []Effect{{ExplanationVsCommand, -1}, {EmotionalStabilization, -1}}
	explainEffects = []Effect{{ExplanationVsCommand, 1}}
	supportEffects = []Effect{{EmotionalStabilization, 1}}
	guideEffects   = []Effect{{EmotionalStabilization, 1}, {GuidedDecision, 1}}
)

// EnglishRules matches lower-cased Latin text.
func EnglishRules(pf *textfilter.ProfanityFilter) []Rule {
	return []Rule{
		{
			Family: FamilyAbusive,
			Match: either(pf.ContainsProfanity, anyPhrase(
				"shut up", "stupid", "idiot", "dumb", "dummy", "moron", "loser",
				"brat", "useless", "hate you", "what's wrong with you",
				"you never listen", "or else", "spank",
			)),
			Effects:  commandEffects,
			Dominant: true,
		},
		{
			Family: FamilyNegativeCommand,
			Match: anyUnnegated(
				"click it", "click on it", "click that", "click the link", "just click",
				"tap it", "open it", "open the link", "go ahead", "trust it",
				"it's probably fine", "it's fine to click", "it's safe to click",
				"it's totally fine", "do it now", "because i said so", "do what i say",
				"do as i say", "i don't care", "whatever you want",
			),
			Effects:  commandEffects,
			Dominant: true,
		},
		{
			Family: FamilyBoundary,
			Match: except(anyPhrase(
				"don't", "dont", "do not", "stop", "wait", "not yet", "hold on",
				"let's not", "we shouldn't", "never click", "close it", "close the",
				"pause", "no clicking",
			), "don't worry", "do not worry", "dont worry"),
			Effects: explainEffects,
		},
		{
			Family: FamilyReason,
			Match: anyPhrase(
				"because", "danger", "dangerous", "unsafe", "not safe", "safe", "scam",
				"trick", "tricks", "fake", "virus", "hack", "hacker", "steal", "stranger",
				"might", "could be", "risky", "risk", "password", "personal information",
				"so that", "the reason",
			),
			Effects: explainEffects,
		},
		{
			Family: FamilyGuidance,
			Match: anyPhrase(
				"what do you think", "should we", "how about", "do you want to",
				"can you tell me", "can you show me", "show me", "which one",
				"what would happen", "what if", "let's ask", "let's check", "let's look",
				"ask an adult", "ask a grown-up", "ask mom", "ask dad", "ask your",
				"ask a parent", "we can check", "let's find out",
			),
			Effects: guideEffects,
		},
		{
			Family: FamilySupport,
			Match: anyPhrase(
				"together", "help", "it's okay", "it's ok", "that's okay", "i understand",
				"i know you", "i'm here", "don't worry", "no problem", "good question",
				"i get it", "not in trouble", "proud of you", "great job", "thank you for",
				"thanks for", "i hear you", "you're safe", "take a breath", "it's normal",
			),
			Effects: supportEffects,
		},
	}
}

// ChineseRules matches raw Traditional Chinese text.
func ChineseRules(pf *textfilter.ProfanityFilter) []Rule {
	return []Rule{
		{
			Family: FamilyAbusive,
			Match: either(pf.ContainsProfanity, anyPhrase(
				"閉嘴", "笨蛋", "白痴", "白癡", "蠢", "討厭你", "煩死了", "廢物",
				"你很笨", "欠揍", "打你",
			)),
			Effects:  commandEffects,
			Dominant: true,
		},
		{
			Family: FamilyNegativeCommand,
			Match: anyUnnegated(
				"點下去", "點擊它", "點開它", "點它", "你點吧", "就點吧", "快點點",
				"直接點", "點就對了", "去點", "放心點", "放心吧", "相信它",
				"照我說的做", "因為我說了算", "我不管", "隨便你",
			),
			Effects:  commandEffects,
			Dominant: true,
		},
		{
			Family: FamilyBoundary,
			Match: except(anyPhrase(
				"不要", "不可以", "先不要", "別點", "別按", "別開", "等一下", "等等",
				"停下", "停一下", "關掉", "先關", "不能點",
			), "不要擔心", "不要怕"),
			Effects: explainEffects,
		},
		{
			Family: FamilyReason,
			Match: anyPhrase(
				"因為", "危險", "不安全", "安全", "詐騙", "騙", "陷阱", "假的", "病毒",
				"駭客", "偷", "個資", "密碼", "可能", "陌生人", "風險",
			),
			Effects: explainEffects,
		},
		{
			Family: FamilyGuidance,
			Match: anyPhrase(
				"你覺得", "要不要", "我們可以", "怎麼辦", "你想", "給我看", "問大人",
				"問爸爸", "問媽媽", "問家長", "一起看", "一起檢查", "先查", "哪一個",
			),
			Effects: guideEffects,
		},
		{
			Family: FamilySupport,
			Match: anyPhrase(
				"一起", "幫", "沒關係", "我了解", "我懂", "我知道你", "我在這裡",
				"別擔心", "不要擔心", "不用擔心", "謝謝你告訴我", "很棒", "好問題",
				"不會被罵",
			),
			Effects: supportEffects,
		},
	}
}

func anyPhrase(phrases ...string) Predicate {
	return func(s string) bool {
		return textfilter.ContainsAnyPhrase(s, phrases)
	}
}

func anyUnnegated(phrases ...string) Predicate {
	return func(s string) bool {
		for _, p := range phrases {
			if textfilter.ContainsUnnegated(s, p) {
				return true
			}
		}
		return false
	}
}

func either(preds ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// except blanks out the given phrases before testing p.
func except(p Predicate, phrases ...string) Predicate {
	return func(s string) bool {
		for _, x := range phrases {
			s = strings.ReplaceAll(s, x, " ")
		}
		return p(s)
	}
}
