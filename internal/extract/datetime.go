package extract

import (
	"regexp"
	"strconv"
	"time"
)

// datePatterns is the ordered list of date shapes tried against the text. The
// first pattern with a match anywhere wins; later patterns are not consulted.
// Two-digit years are read as 2000+YY.
var datePatterns = []struct {
	re        *regexp.Regexp
	shortYear bool
}{
	{re: regexp.MustCompile(`(\d{4})[.\-/](\d{1,2})[.\-/](\d{1,2})`)},
	{re: regexp.MustCompile(`(\d{2})[.\-/](\d{1,2})[.\-/](\d{1,2})`), shortYear: true},
}

// timePattern is searched once, independently of the date, so a time printed
// before the date on the receipt still pairs up with it.
var timePattern = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)

// DateTime scans text for the first date match and the first time match and
// combines them into a timestamp. Missing time components default to zero. It
// returns nil when no date was found or when the matched components do not
// form a valid calendar date; a time alone is never enough.
func DateTime(text string) *time.Time {
	var year, month, day int
	found := false

	for _, dp := range datePatterns {
		m := dp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		year = mustAtoi(m[1])
		month = mustAtoi(m[2])
		day = mustAtoi(m[3])
		if dp.shortYear {
			year += 2000
		}
		found = true
		break
	}
	if !found {
		return nil
	}

	var hour, minute, second int
	if m := timePattern.FindStringSubmatch(text); m != nil {
		hour = mustAtoi(m[1])
		minute = mustAtoi(m[2])
		if m[3] != "" {
			second = mustAtoi(m[3])
		}
	}

	ts := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.Local)
	// time.Date normalizes out-of-range components (month 13 rolls into the
	// next year), so an exact round-trip check is the validity test.
	if ts.Year() != year || ts.Month() != time.Month(month) || ts.Day() != day ||
		ts.Hour() != hour || ts.Minute() != minute || ts.Second() != second {
		return nil
	}
	return &ts
}

func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
