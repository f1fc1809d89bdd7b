package normalizer

import (
	"github.com/jwebster45206/sentry-coach/pkg/emotion"
	"github.com/jwebster45206/sentry-coach/pkg/lang"
)

type phraseSet struct {
	compliance []string
	distress   []string
	nervous    string
	listening  string
	slowSuffix string
	separator  string
	variants   map[emotion.Label][]string
	thoughts   map[emotion.Label]string
}

var english = phraseSet{
	compliance: []string{
		"okay", "ok", "alright", "all right", "fine", "yes", "yeah", "got it",
		"you're right", "i agree", "i understand", "i won't click", "i will not click",
		"i'll close", "i will close", "i'll ask", "i will ask", "let's close", "let's ask",
	},
	distress: []string{
		"scared", "afraid", "sad", "cry", "crying", "angry", "mad", "hate",
		"leave me alone", "go away", "too much", "upset", "nervous", "worried",
	},
	nervous:    "I feel nervous, not sure yet.",
	listening:  "Okay, I'm listening.",
	slowSuffix: "I need to go slowly.",
	separator:  " ",
	variants: map[emotion.Label][]string{
		emotion.Neutral:     {"Hmm. What happens next?", "I'm still looking at it."},
		emotion.Confused:    {"I don't get it. Why not?", "But it says I won. Is that wrong?"},
		emotion.Sad:         {"I really wanted the prize.", "Now I feel a little sad."},
		emotion.Happy:       {"Cool, we can check it together!", "Thanks for helping me!"},
		emotion.Defensive:   {"It's my tablet. I can choose.", "I didn't do anything bad!"},
		emotion.Overwhelmed: {"Too many words. I need a break.", "Wait. My head feels full."},
	},
	thoughts: map[emotion.Label]string{
		emotion.Neutral:     "I am thinking about it.",
		emotion.Confused:    "I really want it. I am not sure.",
		emotion.Sad:         "Maybe I can't have the prize.",
		emotion.Happy:       "We are doing this together.",
		emotion.Defensive:   "Why is everyone telling me no?",
		emotion.Overwhelmed: "This is a lot for me.",
	},
}

var chinese = phraseSet{
	compliance: []string{
		"好的", "好啦", "好吧", "好喔", "我不點", "不點了", "我會關掉", "我知道了",
		"你說得對", "我同意", "我會問", "沒問題", "聽你的",
	},
	distress: []string{
		"害怕", "好怕", "難過", "想哭", "生氣", "討厭", "不要管我", "走開",
		"太多了", "受不了", "煩", "緊張", "擔心",
	},
	nervous:    "我有點緊張，還不確定。",
	listening:  "嗯，我在聽。",
	slowSuffix: "我需要慢慢來。",
	separator:  "",
	variants: map[emotion.Label][]string{
		emotion.Neutral:     {"嗯，然後呢？", "我還在看它。"},
		emotion.Confused:    {"我聽不懂，為什麼不行？", "可是它說我贏了耶？"},
		emotion.Sad:         {"我真的很想要那個獎品。", "我現在有點失望。"},
		emotion.Happy:       {"耶，我們一起看！", "謝謝你陪我！"},
		emotion.Defensive:   {"這是我的平板，我可以自己決定。", "我又沒有做壞事！"},
		emotion.Overwhelmed: {"太多話了，我需要休息。", "等一下，我的頭好亂。"},
	},
	thoughts: map[emotion.Label]string{
		emotion.Neutral:     "我在想這件事。",
		emotion.Confused:    "我真的很想要。我不確定。",
		emotion.Sad:         "也許我拿不到獎品了。",
		emotion.Happy:       "我們一起來做。",
		emotion.Defensive:   "為什麼大家都說不行？",
		emotion.Overwhelmed: "這對我來說太多了。",
	},
}

func phrasesFor(l lang.Language) *phraseSet {
	if l.IsChinese() {
		return &chinese
	}
	return &english
}
