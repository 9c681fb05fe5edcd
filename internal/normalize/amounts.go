package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// amountRe matches a grouped decimal number with an optional currency
// marker in front. Commas are thousands separators, the dot a decimal
// separator with 1-2 fractional digits. The number itself is group 1.
var amountRe = regexp.MustCompile(`(?:₹|INR|Rs\.?|USD|\$|£|€|EUR)?\s*([\d,]+(?:\.\d{1,2})?)`)

// ParseAmount extracts the first numeric amount from a string, stripping
// currency symbols and thousands separators. Returns false when the string
// holds no parseable amount.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	m := amountRe.FindStringSubmatch(raw)
	if m == nil {
		return decimal.Decimal{}, false
	}
	return parseAmountToken(m[1])
}

// FindAmounts collects every amount-like token on a line, left to right.
// Layout disambiguation downstream needs the full ordered set, not just
// the first hit. Tokens that match but fail to parse are dropped.
func FindAmounts(line string) []decimal.Decimal {
	matches := amountRe.FindAllStringSubmatch(line, -1)
	if matches == nil {
		return nil
	}
	amounts := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		if v, ok := parseAmountToken(m[1]); ok {
			amounts = append(amounts, v)
		}
	}
	return amounts
}

// containsAmount reports whether a cell holds anything amount-like.
// Used for header detection, so it deliberately checks the raw match,
// not parseability.
func containsAmount(s string) bool {
	return amountRe.MatchString(s)
}

func parseAmountToken(token string) (decimal.Decimal, bool) {
	v, err := decimal.NewFromString(strings.ReplaceAll(token, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}

// stripAmounts removes every amount token (with its currency marker)
// from a line.
func stripAmounts(line string) string {
	return amountRe.ReplaceAllString(line, "")
}
