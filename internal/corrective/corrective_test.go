package corrective

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/SaiyamJain468/Paylockr/internal/normalize"
)

func TestGeminiRefiner_DisabledIsNoOp(t *testing.T) {
	date := civil.Date{Year: 2024, Month: time.January, Day: 31}
	tx, err := normalize.NewTransaction(date, "coffee", decimal.NewFromInt(120), normalize.Debit, nil)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	input := []normalize.Transaction{tx}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"disabled", Config{Enabled: false, APIKey: "key"}},
		{"no credential", Config{Enabled: true, APIKey: ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewGeminiRefiner(tt.cfg)
			got, err := r.Refine(context.Background(), "raw", input)
			if err != nil {
				t.Fatalf("Refine: %v", err)
			}
			if len(got) != 1 || got[0].Description != "coffee" {
				t.Errorf("expected input passed through unchanged, got %v", got)
			}
		})
	}
}

func TestDecodeTransactions(t *testing.T) {
	raw := `[
		{"date":"2024-01-31","description":"coffee","amount":120.00,"type":"debit","balance":4880.00},
		{"date":"2024-02-01","description":"salary","amount":2200,"type":"credit","balance":null}
	]`
	txs, err := DecodeTransactions(raw)
	if err != nil {
		t.Fatalf("DecodeTransactions: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}
	if txs[0].Date.String() != "2024-01-31" || txs[0].Type != normalize.Debit {
		t.Errorf("first transaction mismatch: %+v", txs[0])
	}
	if txs[0].Balance == nil || !txs[0].Balance.Equal(decimal.NewFromInt(4880)) {
		t.Errorf("first balance = %v, want 4880", txs[0].Balance)
	}
	if txs[1].Balance != nil {
		t.Errorf("second balance = %v, want nil", txs[1].Balance)
	}
}

func TestDecodeTransactions_CanonicalizesNonISODates(t *testing.T) {
	raw := `[{"date":"31/01/24","description":"coffee","amount":120.00,"type":"debit","balance":null}]`
	txs, err := DecodeTransactions(raw)
	if err != nil {
		t.Fatalf("DecodeTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if got := txs[0].Date.String(); got != "2024-01-31" {
		t.Errorf("date = %s, want 2024-01-31", got)
	}
}

func TestDecodeTransactions_RejectsBadRecordsIndividually(t *testing.T) {
	raw := `[
		{"date":"not-a-date","description":"x","amount":10,"type":"debit","balance":null},
		{"date":"2024-01-31","description":"x","amount":-5,"type":"debit","balance":null},
		{"date":"2024-01-31","description":"x","amount":10,"type":"transfer","balance":null},
		{"date":"2024-01-31","description":"keep me","amount":10,"type":"credit","balance":null}
	]`
	txs, err := DecodeTransactions(raw)
	if err != nil {
		t.Fatalf("DecodeTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if txs[0].Description != "keep me" {
		t.Errorf("kept %q, want %q", txs[0].Description, "keep me")
	}
}

func TestDecodeTransactions_MalformedArray(t *testing.T) {
	for _, raw := range []string{"", "not json", `{"transactions":[]}`} {
		if _, err := DecodeTransactions(raw); err == nil {
			t.Errorf("DecodeTransactions(%q): expected error", raw)
		}
	}
}

func TestCleanModelJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `[{"a":1}]`, `[{"a":1}]`},
		{"json fence", "```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"bare fence", "```\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"leading prose", "Here is the result:\n[{\"a\":1}]", `[{"a":1}]`},
		{"trailing prose", "[{\"a\":1}]\nHope that helps!", `[{"a":1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanModelJSON(tt.raw); got != tt.want {
				t.Errorf("cleanModelJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
