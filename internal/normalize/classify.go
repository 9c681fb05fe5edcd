package normalize

import "regexp"

// Transfer-reference markers embed an explicit debit/credit tag, e.g.
// "UPI/DR/978584154770/John". When present they beat every other signal.
var (
	refDebitRe  = regexp.MustCompile(`(?i)UPI/DR/`)
	refCreditRe = regexp.MustCompile(`(?i)UPI/CR/`)
)

// Keyword markers, matched as whole words, case-insensitive.
var (
	creditMarkersRe = regexp.MustCompile(`(?i)\b(cr|credit|received|deposit|refund|reversal)\b`)
	debitMarkersRe  = regexp.MustCompile(`(?i)\b(dr|debit|paid|payment|purchase|withdraw|fee|charge)\b`)
)

// transferMarker returns the type encoded in a transfer-reference marker,
// if the text carries one.
func transferMarker(text string) (Type, bool) {
	if refDebitRe.MatchString(text) {
		return Debit, true
	}
	if refCreditRe.MatchString(text) {
		return Credit, true
	}
	return "", false
}

// DetectType classifies a row as debit or credit from its surrounding
// text. amountField is an optional raw amount cell considered alongside
// the row text. Signals in priority order: transfer-reference marker,
// then keyword markers, then the debit default. The default matters:
// callers downstream rely on ambiguous rows landing on debit.
func DetectType(rowText, amountField string) Type {
	combined := rowText + " " + amountField
	if typ, ok := transferMarker(combined); ok {
		return typ
	}
	cr := creditMarkersRe.MatchString(combined)
	dr := debitMarkersRe.MatchString(combined)
	if cr && !dr {
		return Credit
	}
	return Debit
}
