// Package lang identifies the two interface languages a session can run in.
package lang

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Language is the active session language.
type Language string

const (
	English            Language = "en"
	TraditionalChinese Language = "zh_TW"
)

var chineseBase, _ = language.Chinese.Base()

// Normalize maps a loose language tag to a supported Language.
// Any Chinese tag (zh, zh-TW, zh_TW, zh-Hant) selects TraditionalChinese; everything else is English.
func Normalize(s string) Language {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return English
	}
	if base, _ := tag.Base(); base == chineseBase {
		return TraditionalChinese
	}
	return English
}

// IsChinese reports whether l is the Chinese interface language.
func (l Language) IsChinese() bool {
	return l == TraditionalChinese
}

// Tag returns the BCP 47 tag for l.
func (l Language) Tag() language.Tag {
	if l.IsChinese() {
		return language.TraditionalChinese
	}
	return language.English
}

func (l Language) String() string {
	if l.IsChinese() {
		return string(TraditionalChinese)
	}
	return string(English)
}

// HasHan reports whether text contains any Han character.
func HasHan(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}
