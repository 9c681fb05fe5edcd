package corrective

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SaiyamJain468/Paylockr/internal/normalize"
)

// wireTransaction is the loose shape the model returns. Fields stay
// untyped strings/numbers until the validated construction step.
type wireTransaction struct {
	Date        string       `json:"date"`
	Description string       `json:"description"`
	Amount      json.Number  `json:"amount"`
	Type        string       `json:"type"`
	Balance     *json.Number `json:"balance"`
}

// DecodeTransactions parses a JSON array of transaction objects into
// typed, validated transactions. A record violating the schema or the
// transaction invariants is dropped individually; only a malformed array
// fails the whole decode.
func DecodeTransactions(rawJSON string) ([]normalize.Transaction, error) {
	var wire []wireTransaction
	if err := json.Unmarshal([]byte(rawJSON), &wire); err != nil {
		return nil, fmt.Errorf("unmarshal transaction array: %w", err)
	}

	txs := make([]normalize.Transaction, 0, len(wire))
	for _, w := range wire {
		// The prompt demands YYYY-MM-DD, but models drift into locale
		// formats anyway. ParseDate canonicalizes those instead of
		// dropping otherwise-sound records over the date spelling.
		date, ok := normalize.ParseDate(w.Date)
		if !ok {
			continue
		}
		amount, err := decimal.NewFromString(w.Amount.String())
		if err != nil {
			continue
		}
		var balance *decimal.Decimal
		if w.Balance != nil {
			if b, err := decimal.NewFromString(w.Balance.String()); err == nil {
				balance = &b
			}
		}
		tx, err := normalize.NewTransaction(date, w.Description, amount, normalize.Type(w.Type), balance)
		if err != nil {
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
