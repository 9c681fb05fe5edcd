package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/SaiyamJain468/Paylockr/internal/normalize"
	"github.com/SaiyamJain468/Paylockr/internal/pipeline"
)

type fakeStore struct {
	data map[string][]byte
}

func (s *fakeStore) Fetch(ctx context.Context, uri string) ([]byte, error) {
	data, ok := s.data[uri]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", uri)
	}
	return data, nil
}

// passthroughRefiner mimics a disabled corrective pass.
type passthroughRefiner struct{}

func (passthroughRefiner) Refine(ctx context.Context, rawText string, txs []normalize.Transaction) ([]normalize.Transaction, error) {
	return txs, nil
}

// failingRefiner simulates a model call that errors out, e.g. on
// malformed JSON or a timeout.
type failingRefiner struct{}

func (failingRefiner) Refine(ctx context.Context, rawText string, txs []normalize.Transaction) ([]normalize.Transaction, error) {
	return nil, errors.New("model returned malformed JSON")
}

const statementText = "01/02/2024 UPI/DR/428515/GROCERY MART 450.00 12500.50\n" +
	"02/02/2024 SALARY CREDIT NEFT 55000.00 67500.50\n"

func TestPipeline_Execute(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{
		"gs://statements/jan.txt": []byte(statementText),
	}}

	p := pipeline.NewDocumentPipeline(store, passthroughRefiner{}, zerolog.Nop())
	state := &pipeline.State{SourceURI: "gs://statements/jan.txt"}
	if err := p.Execute(context.Background(), state); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := len(state.Result.Transactions); got != 2 {
		t.Fatalf("got %d transactions, want 2", got)
	}
	if state.Result.Transactions[0].Type != normalize.Debit {
		t.Errorf("first transaction type = %q, want debit", state.Result.Transactions[0].Type)
	}
	if state.Result.Transactions[1].Type != normalize.Credit {
		t.Errorf("second transaction type = %q, want credit", state.Result.Transactions[1].Type)
	}
	if state.Result.Confidence <= 0 {
		t.Errorf("confidence = %v, want > 0", state.Result.Confidence)
	}
}

func TestPipeline_FetchFailure(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{}}
	p := pipeline.NewDocumentPipeline(store, passthroughRefiner{}, zerolog.Nop())

	state := &pipeline.State{SourceURI: "gs://statements/missing.txt"}
	if err := p.Execute(context.Background(), state); err == nil {
		t.Fatal("Execute() error = nil, want fetch error")
	}
}

func TestPipeline_RefinerFailureKeepsHeuristicResult(t *testing.T) {
	store := &fakeStore{data: map[string][]byte{
		"gs://statements/jan.txt": []byte(statementText),
	}}

	baseline := normalize.NormalizeText(statementText)

	p := pipeline.NewDocumentPipeline(store, failingRefiner{}, zerolog.Nop())
	state := &pipeline.State{SourceURI: "gs://statements/jan.txt"}
	if err := p.Execute(context.Background(), state); err != nil {
		t.Fatalf("Execute() error = %v, want refiner failure swallowed", err)
	}

	if len(state.Result.Transactions) != len(baseline.Transactions) {
		t.Fatalf("got %d transactions, want %d", len(state.Result.Transactions), len(baseline.Transactions))
	}
	for i, tx := range state.Result.Transactions {
		want := baseline.Transactions[i]
		if tx.Date != want.Date || tx.Description != want.Description ||
			!tx.Amount.Equal(want.Amount) || tx.Type != want.Type {
			t.Errorf("transaction %d = %+v, want %+v", i, tx, want)
		}
	}
	if state.Result.Confidence != baseline.Confidence {
		t.Errorf("confidence = %v, want %v", state.Result.Confidence, baseline.Confidence)
	}
}

func TestService_NormalizeText(t *testing.T) {
	svc := pipeline.NewService(passthroughRefiner{}, zerolog.Nop())

	result := svc.NormalizeText(context.Background(), statementText)
	if got := len(result.Transactions); got != 2 {
		t.Fatalf("got %d transactions, want 2", got)
	}
	want := decimal.RequireFromString("450.00")
	if !result.Transactions[0].Amount.Equal(want) {
		t.Errorf("amount = %s, want %s", result.Transactions[0].Amount, want)
	}
}

func TestService_NormalizeRows(t *testing.T) {
	svc := pipeline.NewService(failingRefiner{}, zerolog.Nop())

	rows := [][]string{
		{"Date", "Description", "Debit", "Credit", "Balance"},
		{"01/02/2024", "ATM WITHDRAWAL", "2000.00", "", "10500.50"},
	}
	result := svc.NormalizeRows(context.Background(), rows)
	if got := len(result.Transactions); got != 1 {
		t.Fatalf("got %d transactions, want 1", got)
	}
	if result.Transactions[0].Type != normalize.Debit {
		t.Errorf("type = %q, want debit", result.Transactions[0].Type)
	}
}
