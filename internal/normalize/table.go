package normalize

import (
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Column-role hints matched as substrings against lower-cased header cells.
var columnHints = map[string][]string{
	"date":    {"date", "txn date", "value date", "transaction date"},
	"desc":    {"description", "particulars", "narration", "details", "remarks"},
	"debit":   {"debit", "dr", "withdrawal", "payment"},
	"credit":  {"credit", "cr", "deposit", "received"},
	"balance": {"balance", "closing balance", "bal"},
	"amount":  {"amount", "txn amount"},
}

// NormalizeRows parses table rows (from table-geometry extraction) into
// transactions. A first row without any amount-like cell is taken as the
// header and used to infer column roles; otherwise every row is data.
func NormalizeRows(rows [][]string) Result {
	if len(rows) == 0 {
		return Result{}
	}
	header, data := detectHeader(rows)
	txs := parseTableRows(data, header)
	return Result{
		Transactions: txs,
		Confidence:   scoreConfidence(txs, len(data)),
	}
}

// detectHeader treats the first row as a header when none of its cells
// look like an amount. Header cells are lower-cased for hint matching.
func detectHeader(rows [][]string) ([]string, [][]string) {
	first := rows[0]
	for _, cell := range first {
		if containsAmount(cell) {
			return nil, rows
		}
	}
	header := make([]string, len(first))
	for i, cell := range first {
		header[i] = strings.ToLower(cell)
	}
	return header, rows[1:]
}

// columnIndex returns the index of the first header cell containing one of
// the hints, or -1.
func columnIndex(header []string, hints []string) int {
	for i, h := range header {
		for _, hint := range hints {
			if strings.Contains(h, hint) {
				return i
			}
		}
	}
	return -1
}

func parseTableRows(rows [][]string, header []string) []Transaction {
	dateCol := columnIndex(header, columnHints["date"])
	descCol := columnIndex(header, columnHints["desc"])
	debitCol := columnIndex(header, columnHints["debit"])
	creditCol := columnIndex(header, columnHints["credit"])
	amountCol := columnIndex(header, columnHints["amount"])
	balCol := columnIndex(header, columnHints["balance"])

	var txs []Transaction
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}

		date, ok := rowDate(row, dateCol)
		if !ok {
			continue
		}

		desc := ""
		if descCol >= 0 && descCol < len(row) {
			desc = strings.TrimSpace(row[descCol])
		}
		if desc == "" {
			desc = joinPlainCells(row)
		}

		debitAmt, hasDebit := cellAmount(row, debitCol)
		creditAmt, hasCredit := cellAmount(row, creditCol)
		amtCell, hasAmt := cellAmount(row, amountCol)

		var amount decimal.Decimal
		var typ Type
		switch {
		case hasDebit && debitAmt.Sign() > 0:
			amount, typ = debitAmt, Debit
		case hasCredit && creditAmt.Sign() > 0:
			amount, typ = creditAmt, Credit
		case hasAmt && amtCell.Sign() > 0:
			amount, typ = amtCell, DetectType(strings.Join(row, " "), "")
		default:
			continue // no usable amount
		}

		var balance *decimal.Decimal
		if b, ok := cellAmount(row, balCol); ok {
			balance = &b
		}

		tx, err := NewTransaction(date, desc, amount, typ, balance)
		if err == nil {
			txs = append(txs, tx)
		}
	}
	return txs
}

// rowDate takes the date from the resolved date column when present,
// otherwise scans every cell for the first date-pattern match.
func rowDate(row []string, dateCol int) (civil.Date, bool) {
	if dateCol >= 0 && dateCol < len(row) && strings.TrimSpace(row[dateCol]) != "" {
		return ParseDate(row[dateCol])
	}
	for _, cell := range row {
		if d, ok := ExtractDate(cell); ok {
			return d, true
		}
	}
	return civil.Date{}, false
}

// joinPlainCells concatenates every cell that is neither amount-like nor
// date-like, as a description fallback.
func joinPlainCells(row []string) string {
	var parts []string
	for _, cell := range row {
		if containsAmount(cell) || containsDate(cell) {
			continue
		}
		if cell = strings.TrimSpace(cell); cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " ")
}

func cellAmount(row []string, col int) (decimal.Decimal, bool) {
	if col < 0 || col >= len(row) {
		return decimal.Decimal{}, false
	}
	return ParseAmount(row[col])
}
