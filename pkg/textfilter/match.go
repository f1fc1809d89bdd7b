package textfilter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	lowerCaser = cases.Lower(language.Und)
	quotes     = strings.NewReplacer("’", "'", "‘", "'", "“", `"`, "”", `"`)
)

// Fold prepares text for phrase matching: NFKC, straight quotes, lower case.
// CJK runes pass through unchanged.
func Fold(text string) string {
	return lowerCaser.String(quotes.Replace(norm.NFKC.String(text)))
}

// Key is the comparison form of a phrase: folded, trimmed, whitespace collapsed.
func Key(text string) string {
	return strings.Join(strings.Fields(Fold(text)), " ")
}

// ContainsPhrase reports whether text contains phrase on word boundaries.
// Both arguments are expected in Fold form.
// Boundaries are only enforced at ends of the phrase that are letters or digits
// outside the Han script.
func ContainsPhrase(text, phrase string) bool {
	return len(phraseIndexes(text, phrase)) > 0
}

// ContainsAnyPhrase reports whether any phrase matches.
func ContainsAnyPhrase(text string, phrases []string) bool {
	for _, p := range phrases {
		if ContainsPhrase(text, p) {
			return true
		}
	}
	return false
}

// ContainsUnnegated reports whether phrase occurs at least once without a
// negation ("don't", "never", 不, 別) earlier in the same clause.
func ContainsUnnegated(text, phrase string) bool {
	for _, i := range phraseIndexes(text, phrase) {
		if !Negated(text[:i]) {
			return true
		}
	}
	return false
}

var englishNegators = map[string]bool{
	"don't": true, "dont": true, "not": true, "never": true,
	"won't": true, "can't": true, "cannot": true, "shouldn't": true,
	"mustn't": true, "before": true, "without": true,
}

const clauseBreaks = ",.!?;:，。！？；："

// Negated reports whether the end of prefix (in Fold form) negates whatever
// follows it: a negator within the last three words or runes of the clause.
func Negated(prefix string) bool {
	if i := strings.LastIndexAny(prefix, clauseBreaks); i >= 0 {
		_, size := utf8.DecodeRuneInString(prefix[i:])
		prefix = prefix[i+size:]
	}

	words := strings.Fields(prefix)
	if len(words) > 3 {
		words = words[len(words)-3:]
	}
	for _, w := range words {
		if englishNegators[strings.Trim(w, `"'()`)] {
			return true
		}
	}

	runes := []rune(strings.TrimSpace(prefix))
	if len(runes) > 3 {
		runes = runes[len(runes)-3:]
	}
	for _, r := range runes {
		switch r {
		case '不', '別', '勿', '莫':
			return true
		}
	}
	return false
}

func phraseIndexes(text, phrase string) []int {
	if phrase == "" {
		return nil
	}
	var out []int
	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], phrase)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(phrase)
		if boundaryOK(text, phrase, start, end) {
			out = append(out, start)
		}
		offset = start + 1
		for offset < len(text) && !isRuneStart(text[offset]) {
			offset++
		}
	}
	return out
}

func boundaryOK(text, phrase string, start, end int) bool {
	first := []rune(phrase)[0]
	if isWordRune(first) && start > 0 {
		prev := []rune(text[:start])
		if isWordRune(prev[len(prev)-1]) {
			return false
		}
	}
	pr := []rune(phrase)
	if isWordRune(pr[len(pr)-1]) && end < len(text) {
		next := []rune(text[end:])[0]
		if isWordRune(next) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	if unicode.Is(unicode.Han, r) {
		return false
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
