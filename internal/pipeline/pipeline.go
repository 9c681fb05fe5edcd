package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/SaiyamJain468/Paylockr/internal/corrective"
	"github.com/SaiyamJain468/Paylockr/internal/extract"
	"github.com/SaiyamJain468/Paylockr/internal/normalize"
)

// State holds the shared state across all pipeline steps.
type State struct {
	SourceURI  string
	DocumentID string
	RawBytes   []byte
	Kind       extract.Kind
	RawText    string
	Result     normalize.Result
}

// Step is a single stage of the document normalization pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// New creates a pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d: %w", i+1, err)
		}
	}
	return nil
}

// FetchStep downloads the document bytes from storage.
type FetchStep struct {
	Store DocumentStore
}

func (s *FetchStep) Execute(ctx context.Context, state *State) error {
	data, err := s.Store.Fetch(ctx, state.SourceURI)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", state.SourceURI, err)
	}
	state.RawBytes = data
	return nil
}

// ExtractTextStep sniffs the payload kind and pulls out plain text.
type ExtractTextStep struct {
	Extractor TextExtractor
}

func (s *ExtractTextStep) Execute(ctx context.Context, state *State) error {
	state.Kind = s.Extractor.DetectKind(state.RawBytes)
	text, err := s.Extractor.Text(state.RawBytes)
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}
	state.RawText = text
	return nil
}

// NormalizeStep runs the heuristic line parser over the extracted text.
type NormalizeStep struct{}

func (s *NormalizeStep) Execute(ctx context.Context, state *State) error {
	state.Result = normalize.NormalizeText(state.RawText)
	return nil
}

// RefineStep optionally passes the parse through the corrective model.
// Any refiner failure degrades to keeping the heuristic result; the
// confidence score always stays the heuristic one.
type RefineStep struct {
	Refiner corrective.Refiner
	Log     zerolog.Logger
}

func (s *RefineStep) Execute(ctx context.Context, state *State) error {
	refined, err := s.Refiner.Refine(ctx, state.RawText, state.Result.Transactions)
	if err != nil {
		s.Log.Warn().
			Err(err).
			Str("source_uri", state.SourceURI).
			Msg("Corrective pass failed, keeping heuristic parse")
		return nil
	}
	state.Result.Transactions = refined
	return nil
}

// NewDocumentPipeline wires the standard fetch -> extract -> normalize ->
// refine sequence.
func NewDocumentPipeline(store DocumentStore, refiner corrective.Refiner, log zerolog.Logger) *Pipeline {
	return New(
		&FetchStep{Store: store},
		&ExtractTextStep{Extractor: NewExtractor()},
		&NormalizeStep{},
		&RefineStep{Refiner: refiner, Log: log},
	)
}

// NormalizeDocument runs the standard pipeline against one stored
// document and returns its normalization result.
func NormalizeDocument(ctx context.Context, store DocumentStore, refiner corrective.Refiner, log zerolog.Logger, sourceURI string) (normalize.Result, error) {
	state := &State{SourceURI: sourceURI}
	if err := NewDocumentPipeline(store, refiner, log).Execute(ctx, state); err != nil {
		return normalize.Result{}, err
	}
	return state.Result, nil
}
