package content

import (
	"regexp"
	"strconv"
	"time"
)

// datePatterns are tried in order, first match wins.
// groups are year, month, day; year is empty for the month-day pattern.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})\s*年\s*(\d{1,2})\s*月\s*(\d{1,2})\s*日`),
	regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`),
	regexp.MustCompile(`()(\d{1,2})\s*月\s*(\d{1,2})\s*日`),
}

// ParseDate parses localized publish dates like "2024年3月5日", "2024-03-05" or "3月5日".
// The month-day form takes its year from now. Result is midnight UTC of the parsed day.
func ParseDate(s string, now time.Time) (time.Time, bool) {
	for _, re := range datePatterns {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		year := now.Year()
		if m[1] != "" {
			year, _ = strconv.Atoi(m[1])
		}
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if t, ok := makeDate(year, month, day); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// makeDate rejects out of range values instead of letting time.Date normalize them
func makeDate(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
