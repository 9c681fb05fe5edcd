package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Type tells whether money left the account or arrived in it.
type Type string

const (
	Debit  Type = "debit"
	Credit Type = "credit"
)

// MaxDescriptionLen caps transaction descriptions; longer text is truncated.
const MaxDescriptionLen = 120

// DefaultDescription is used when stripping dates and amounts leaves nothing.
const DefaultDescription = "Transaction"

// Transaction is one normalized statement entry. Instances are only built
// through NewTransaction, so a Transaction in hand always has a valid
// calendar date, a strictly positive amount and a non-empty description.
type Transaction struct {
	Date        civil.Date
	Description string
	Amount      decimal.Decimal
	Type        Type
	Balance     *decimal.Decimal // nil when the source row carried no balance
}

// Result is an ordered batch of transactions plus a heuristic quality score.
// Order matches the source lines/rows that produced the transactions.
type Result struct {
	Transactions []Transaction `json:"transactions"`
	Confidence   float64       `json:"confidence"`
}

// NewTransaction validates and builds a Transaction. Candidates with an
// invalid date, a non-positive amount or an unknown type are rejected;
// callers treat the error as "skip this row".
func NewTransaction(date civil.Date, description string, amount decimal.Decimal, typ Type, balance *decimal.Decimal) (Transaction, error) {
	if !date.IsValid() {
		return Transaction{}, fmt.Errorf("invalid date %v", date)
	}
	if amount.Sign() <= 0 {
		return Transaction{}, fmt.Errorf("non-positive amount %s", amount)
	}
	if typ != Debit && typ != Credit {
		return Transaction{}, fmt.Errorf("unknown transaction type %q", typ)
	}

	description = strings.TrimSpace(description)
	// The limit counts characters, not bytes; slicing bytes would cut a
	// multi-byte rune in half and leave invalid UTF-8 on the wire.
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		runes := []rune(description)
		description = string(runes[:MaxDescriptionLen])
	}
	if description == "" {
		description = DefaultDescription
	}

	return Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        typ,
		Balance:     balance,
	}, nil
}

// MarshalJSON emits the wire schema consumed by the calling service:
// date as "YYYY-MM-DD", amount and balance as JSON numbers, balance null
// when absent.
func (t Transaction) MarshalJSON() ([]byte, error) {
	balance := json.RawMessage("null")
	if t.Balance != nil {
		balance = json.RawMessage(t.Balance.String())
	}
	return json.Marshal(struct {
		Date        string          `json:"date"`
		Description string          `json:"description"`
		Amount      json.RawMessage `json:"amount"`
		Type        Type            `json:"type"`
		Balance     json.RawMessage `json:"balance"`
	}{
		Date:        t.Date.String(),
		Description: t.Description,
		Amount:      json.RawMessage(t.Amount.String()),
		Type:        t.Type,
		Balance:     balance,
	})
}
