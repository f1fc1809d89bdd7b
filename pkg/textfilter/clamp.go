package textfilter

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const sentenceEnders = ".!?。！？"

// Clamp bounds text to maxWords whitespace-separated words. When words are cut,
// the result ends at the last sentence boundary if that boundary lies past the
// midpoint of the kept span; otherwise a period is appended. A single unspaced
// token longer than maxTokenChars runes is hard-truncated.
func Clamp(text string, maxWords, maxTokenChars int) string {
	text = strings.TrimSpace(text)
	words := strings.Fields(text)

	if len(words) == 1 {
		if maxTokenChars > 0 && utf8.RuneCountInString(text) > maxTokenChars {
			return string([]rune(text)[:maxTokenChars])
		}
		return text
	}
	if maxWords <= 0 || len(words) <= maxWords {
		return text
	}

	truncated := []rune(strings.Join(words[:maxWords], " "))
	last := -1
	for i, r := range truncated {
		if strings.ContainsRune(sentenceEnders, r) {
			last = i
		}
	}
	if float64(last) > float64(len(truncated))*0.5 {
		return string(truncated[:last+1])
	}

	kept := strings.TrimRight(string(truncated), ",;:、，")
	return kept + terminator(kept)
}

// Fits reports whether text already satisfies the Clamp limits.
func Fits(text string, maxWords, maxTokenChars int) bool {
	words := strings.Fields(text)
	if maxWords > 0 && len(words) > maxWords {
		return false
	}
	if len(words) == 1 && maxTokenChars > 0 && utf8.RuneCountInString(words[0]) > maxTokenChars {
		return false
	}
	return true
}

// ClampChars cuts text to at most maxChars runes, backing up to a space when one
// falls in the second half of the kept span.
func ClampChars(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if maxChars <= 0 || len(runes) <= maxChars {
		return text
	}
	cut := runes[:maxChars]
	for i := len(cut) - 1; i > maxChars/2; i-- {
		if unicode.IsSpace(cut[i]) {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimRight(string(cut), " ,;:、，")
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func terminator(s string) string {
	r, _ := utf8.DecodeLastRuneInString(s)
	if unicode.Is(unicode.Han, r) {
		return "。"
	}
	return "."
}
