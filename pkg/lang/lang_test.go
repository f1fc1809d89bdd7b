package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"en", English},
		{"EN", English},
		{"en-US", English},
		{"zh_TW", TraditionalChinese},
		{"zh-TW", TraditionalChinese},
		{"zh-Hant", TraditionalChinese},
		{"zh", TraditionalChinese},
		{"", English},
		{"fr", English},
		{"not a tag!!", English},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestLanguage_String(t *testing.T) {
	assert.Equal(t, "en", English.String())
	assert.Equal(t, "zh_TW", TraditionalChinese.String())
	assert.Equal(t, "en", Language("").String())
	assert.True(t, TraditionalChinese.IsChinese())
	assert.False(t, English.IsChinese())
}

func TestHasHan(t *testing.T) {
	assert.True(t, HasHan("不要點擊"))
	assert.True(t, HasHan("ok 好"))
	assert.False(t, HasHan("don't click"))
	assert.False(t, HasHan(""))
}
