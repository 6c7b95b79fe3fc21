package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "collapse spaces", input: "  hello   world  ", want: "hello world"},
		{name: "tabs", input: "a\t\t b", want: "a b"},
		{name: "nbsp and ideographic space", input: "a\u00a0\u3000b", want: "a b"},
		{name: "zero width space", input: "a\u200bb", want: "ab"},
		{name: "trim lines", input: "line1  \n   line2", want: "line1\nline2"},
		{name: "crlf", input: "a\r\nb", want: "a\nb"},
		{name: "blank lines collapse", input: "p1\n\n\n\n\np2", want: "p1\n\np2"},
		{name: "blank lines with spaces", input: "p1\n  \n \n\np2", want: "p1\n\np2"},
		{name: "single blank line kept", input: "p1\n\np2", want: "p1\n\np2"},
		{name: "truncate runes", input: "你好世界", maxLen: 2, want: "你好"},
		{name: "truncate trims trailing space", input: "abc def", maxLen: 4, want: "abc"},
		{name: "no truncation when short", input: "abc", maxLen: 10, want: "abc"},
		{name: "empty", input: "", want: ""},
		{name: "only whitespace", input: " \n\t\n ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input, tt.maxLen))
		})
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{
		"  hello   world  ",
		"第一段  内容\u3000\u3000。\n\n\n\n  第二段\u00a0内容 \n \n",
		"a \n \n b \n\n\n c",
		"\r\n\r\nline\r\n\r\n\r\nline2\t",
		strings.Repeat("长文本 ", 50),
		"x\u200b \u200b y",
	}
	for _, in := range inputs {
		for _, maxLen := range []int{0, 7, 20, 15000} {
			once := Clean(in, maxLen)
			assert.Equal(t, once, Clean(once, maxLen), "input %q, max %d", in, maxLen)
			if maxLen > 0 {
				assert.LessOrEqual(t, utf8.RuneCountInString(once), maxLen)
			}
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("abc", 0))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "abc", truncateRunes("abc", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "文章", truncateRunes("文章标题", 2))
}
