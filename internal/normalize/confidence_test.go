package normalize

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

func mustTx(t *testing.T, amount string) Transaction {
	t.Helper()
	a, _ := decimal.NewFromString(amount)
	tx, err := NewTransaction(civil.Date{Year: 2024, Month: time.January, Day: 31}, "test", a, Debit, nil)
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	return tx
}

func TestScoreConfidence(t *testing.T) {
	tests := []struct {
		name        string
		txs         int
		sourceCount int
		want        float64
	}{
		{"no transactions", 0, 10, 0.0},
		// one record from five lines: base 1.0, coverage 1*5/5 = 1.0
		{"full coverage", 1, 5, 1.0},
		// one record from fifty lines: coverage 1/50*5 = 0.1
		{"under-extraction", 1, 50, 0.82},
		// over-extraction is capped, not penalized
		{"over-extraction capped", 10, 5, 1.0},
		{"zero source lines", 2, 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var txs []Transaction
			for i := 0; i < tt.txs; i++ {
				txs = append(txs, mustTx(t, "100.00"))
			}
			got := scoreConfidence(txs, tt.sourceCount)
			if got != tt.want {
				t.Errorf("scoreConfidence(%d txs, %d lines) = %v, want %v", tt.txs, tt.sourceCount, got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("confidence %v outside [0,1]", got)
			}
		})
	}
}
