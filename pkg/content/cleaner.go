package content

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	reHorizontalSpace = regexp.MustCompile(`[ \t\f\r\v\x{00a0}\x{3000}]+`)
	reSpaceAroundNL   = regexp.MustCompile(` ?\n ?`)
	reBlankLines      = regexp.MustCompile(`\n{3,}`)
)

// Clean normalizes extracted text: runs of horizontal whitespace become a single space,
// lines are trimmed, runs of blank lines collapse to one blank line, and the result is
// trimmed and truncated to maxLen runes. Clean(Clean(s)) == Clean(s).
func Clean(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\u200b", "")
	s = reHorizontalSpace.ReplaceAllString(s, " ")
	s = reSpaceAroundNL.ReplaceAllString(s, "\n")
	s = reBlankLines.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)
	if maxLen > 0 {
		s = truncateRunes(s, maxLen)
		s = strings.TrimRightFunc(s, unicode.IsSpace)
	}
	return s
}

// truncateRunes cuts s to at most n runes
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
