package textfilter

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// English swear words scrubbed from child replies and counted as abusive in adult messages.
var swearWords = []string{
	"fuck", "shit", "damn", "hell", "ass", "bitch", "bastard", "crap",
	"piss", "dick", "motherfucker", "goddamn", "asshole", "dumbass",
	"jackass", "bullshit", "dipshit", "shithead", "dickhead", "prick",
	"douche", "douchebag", "retard",
}

// swearWordReplacements maps swear words to child-safe alternatives
var swearWordReplacements = map[string]string{
	"fuck":         "fudge",
	"shit":         "shoot",
	"damn":         "dang",
	"hell":         "heck",
	"ass":          "butt",
	"bitch":        "jerk",
	"bastard":      "jerk",
	"crap":         "crud",
	"piss":         "ticked",
	"dick":         "jerk",
	"motherfucker": "mother-trucker",
	"goddamn":      "gosh-dang",
	"asshole":      "jerk",
	"dumbass":      "dummy",
	"jackass":      "jerk",
	"bullshit":     "baloney",
	"dipshit":      "dummy",
	"shithead":     "jerk",
	"dickhead":     "jerk",
	"prick":        "jerk",
	"douche":       "jerk",
	"douchebag":    "jerk",
	"retard":       "[censored]",
}

// Chinese swear phrases are matched as raw substrings and masked.
var chineseSwearWords = []string{
	"他媽的", "媽的", "幹你", "靠北", "靠腰", "去死", "王八蛋", "混蛋", "賤",
}

// ProfanityFilter handles filtering and replacement of profanity
type ProfanityFilter struct {
	regexes map[string]*regexp.Regexp
}

// NewProfanityFilter creates a new profanity filter
func NewProfanityFilter() *ProfanityFilter {
	pf := &ProfanityFilter{
		regexes: make(map[string]*regexp.Regexp),
	}

	// Word boundaries with an optional plural suffix
	for _, word := range swearWords {
		pattern := `\b` + regexp.QuoteMeta(word) + `(?:s|es)?\b`
		pf.regexes[word] = regexp.MustCompile(`(?i)` + pattern)
	}

	return pf
}

// FilterText replaces profanity in the input text with child-safe alternatives
func (pf *ProfanityFilter) FilterText(text string) string {
	result := text

	for _, word := range swearWords {
		regex, exists := pf.regexes[word]
		if !exists {
			continue
		}
		replacement, ok := swearWordReplacements[word]
		if !ok {
			continue
		}
		result = regex.ReplaceAllStringFunc(result, func(match string) string {
			base, suffix := match[:len(word)], match[len(word):]
			return preserveCase(base, replacement) + suffix
		})
	}

	for _, word := range chineseSwearWords {
		if strings.Contains(result, word) {
			result = strings.ReplaceAll(result, word, strings.Repeat("＊", len([]rune(word))))
		}
	}

	return result
}

// preserveCase applies the case pattern of the original word to the replacement
func preserveCase(original, replacement string) string {
	if len(original) == 0 {
		return replacement
	}

	if strings.ToUpper(original) == original {
		return strings.ToUpper(replacement)
	}

	if strings.ToLower(original) == original {
		return strings.ToLower(replacement)
	}

	titleCaser := cases.Title(language.English)
	if titleCaser.String(strings.ToLower(original)) == original {
		return titleCaser.String(replacement)
	}

	// Mixed case: copy the original's case rune by rune
	result := make([]rune, 0, len(replacement))
	originalRunes := []rune(original)
	for i, r := range []rune(replacement) {
		if i < len(originalRunes) && unicode.IsUpper(originalRunes[i]) {
			result = append(result, unicode.ToUpper(r))
		} else {
			result = append(result, unicode.ToLower(r))
		}
	}

	return string(result)
}

// ContainsProfanity checks if the text contains any profanity in either language
func (pf *ProfanityFilter) ContainsProfanity(text string) bool {
	for _, word := range swearWords {
		if regex, exists := pf.regexes[word]; exists && regex.MatchString(text) {
			return true
		}
	}
	for _, word := range chineseSwearWords {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
