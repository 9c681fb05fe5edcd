package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizeText parses raw free text (PDF extraction or OCR output) into
// transactions, one candidate record per line. It is total: any input
// yields a Result, and lines that cannot be read are skipped silently.
func NormalizeText(text string) Result {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	txs := parseLines(lines)
	return Result{
		Transactions: txs,
		Confidence:   scoreConfidence(txs, len(lines)),
	}
}

// parseLines handles two line layouts:
//
//	A) single amount column:   date  desc  amount  balance
//	B) split credit/debit:     date  desc  ref  credit  debit  balance
//	   (one of credit/debit is zero, common on HDFC/SBI UPI exports)
func parseLines(lines []string) []Transaction {
	var txs []Transaction
	for _, line := range lines {
		date, ok := ExtractDate(line)
		if !ok {
			continue // no date: header or noise
		}
		// Dates come off the line before amount collection, otherwise the
		// digits of "31/01/2024" would masquerade as amount tokens and
		// shift the layout heuristics.
		amounts := FindAmounts(stripDates(line))
		if len(amounts) == 0 {
			continue
		}

		// Layout B: three or more amounts, last one is the balance and
		// exactly one of the middle values is non-zero.
		if len(amounts) >= 3 {
			mid := amounts[:len(amounts)-1]
			balance := amounts[len(amounts)-1]

			nonZero := -1
			for i, v := range mid {
				if v.Sign() > 0 {
					if nonZero >= 0 {
						nonZero = -1
						break // more than one: not a split row
					}
					nonZero = i
				}
			}
			if nonZero >= 0 {
				typ := DetectType(line, "")
				if _, marked := transferMarker(line); !marked && len(mid) >= 2 {
					// No reference marker: fall back to the column
					// convention [..., credit, debit, balance].
					switch nonZero {
					case 0:
						typ = Credit
					case len(mid) - 1:
						typ = Debit
					}
				}
				tx, err := NewTransaction(date, stripDateAmounts(line), mid[nonZero], typ, &balance)
				if err == nil {
					txs = append(txs, tx)
				}
				continue
			}
		}

		// Layout A: second-to-last amount is the transaction, last is the
		// balance; a single amount means no balance.
		amount := amounts[0]
		var balance *decimal.Decimal
		if len(amounts) >= 2 {
			amount = amounts[len(amounts)-2]
			b := amounts[len(amounts)-1]
			balance = &b
		}
		if amount.Sign() <= 0 {
			continue
		}
		tx, err := NewTransaction(date, stripDateAmounts(line), amount, DetectType(line, ""), balance)
		if err == nil {
			txs = append(txs, tx)
		}
	}
	return txs
}

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// stripDateAmounts removes dates and amounts from a line, leaving the
// description. Residual separators and repeated whitespace are trimmed.
func stripDateAmounts(line string) string {
	cleaned := stripAmounts(stripDates(line))
	cleaned = multiSpaceRe.ReplaceAllString(cleaned, " ")
	return strings.Trim(cleaned, " ,-|/")
}
