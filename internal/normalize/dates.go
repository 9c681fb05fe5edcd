package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// datePattern pairs a lenient scan regexp with a resolver that turns the
// submatches into a calendar date. Patterns are evaluated in order, most
// specific first, so a 4-digit-year token is never consumed by the
// 2-digit-year pattern (or vice versa). A resolver returning false lets
// the scan fall through to the next pattern.
type datePattern struct {
	re      *regexp.Regexp
	resolve func(m []string) (civil.Date, bool)
}

var datePatterns = []datePattern{
	// ISO: 2024-01-31
	{
		re: regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`),
		resolve: func(m []string) (civil.Date, bool) {
			return makeDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]))
		},
	},
	// DD/MM/YYYY or DD-MM-YYYY. Separators must match on both sides;
	// a mixed token like 01/02-2024 is rejected here and by ParseDate.
	{
		re: regexp.MustCompile(`\b(\d{2})([/\-])(\d{2})([/\-])(\d{4})\b`),
		resolve: func(m []string) (civil.Date, bool) {
			if m[2] != m[4] {
				return civil.Date{}, false
			}
			return makeDate(atoi(m[5]), time.Month(atoi(m[3])), atoi(m[1]))
		},
	},
	// DD MMM YYYY, e.g. "31 Jan 2024" or "31 January 2024"
	{
		re: regexp.MustCompile(`(?i)\b(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})\b`),
		resolve: func(m []string) (civil.Date, bool) {
			return makeDate(atoi(m[3]), monthByName(m[2]), atoi(m[1]))
		},
	},
	// MMM DD, YYYY (comma optional), e.g. "Jan 31, 2024"
	{
		re: regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{1,2}),?\s+(\d{4})\b`),
		resolve: func(m []string) (civil.Date, bool) {
			return makeDate(atoi(m[3]), monthByName(m[1]), atoi(m[2]))
		},
	},
	// DD/MM/YY or DD-MM-YY, as seen on HDFC/SBI exports. Century follows
	// time.Parse's two-digit-year window: 00-68 -> 2000s, 69-99 -> 1900s.
	{
		re: regexp.MustCompile(`\b(\d{2})([/\-])(\d{2})([/\-])(\d{2})\b`),
		resolve: func(m []string) (civil.Date, bool) {
			if m[2] != m[4] {
				return civil.Date{}, false
			}
			t, err := time.Parse("02-01-06", m[1]+"-"+m[3]+"-"+m[5])
			if err != nil {
				return civil.Date{}, false
			}
			return civil.DateOf(t), true
		},
	},
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func monthByName(name string) time.Month {
	return months[strings.ToLower(name)[:3]]
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// makeDate builds a civil date, rejecting impossible calendar dates such
// as February 31st.
func makeDate(year int, month time.Month, day int) (civil.Date, bool) {
	if month < time.January || month > time.December || day < 1 {
		return civil.Date{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return civil.Date{}, false
	}
	return civil.Date{Year: year, Month: month, Day: day}, true
}

// ExtractDate scans a line for the first date-like substring that resolves
// to a real calendar date, in pattern priority order.
func ExtractDate(line string) (civil.Date, bool) {
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if d, ok := p.resolve(m); ok {
			return d, true
		}
	}
	return civil.Date{}, false
}

// containsDate reports whether any date pattern resolves somewhere in s.
func containsDate(s string) bool {
	_, ok := ExtractDate(s)
	return ok
}

var strictParseLayouts = []string{"2006-01-02", "02/01/06", "01/02/2006", "20060102"}

// ParseDate interprets a whole token as a date and canonicalizes it.
// It anchors the scan patterns to the full string, then falls back to a
// short list of fixed layouts. Returns false when nothing matches.
func ParseDate(raw string) (civil.Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return civil.Date{}, false
	}
	for _, p := range datePatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil || m[0] != raw {
			continue
		}
		if d, ok := p.resolve(m); ok {
			return d, true
		}
	}
	for _, layout := range strictParseLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return civil.DateOf(t), true
		}
	}
	return civil.Date{}, false
}

// stripDates removes every date-pattern match from a line. Used when
// deriving descriptions, so even unparseable date-shaped tokens go.
func stripDates(line string) string {
	for _, p := range datePatterns {
		line = p.re.ReplaceAllString(line, "")
	}
	return line
}
