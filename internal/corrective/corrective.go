package corrective

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/SaiyamJain468/Paylockr/internal/normalize"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// DefaultTimeout bounds the model call; the corrective pass is the only
// blocking point in the normalization flow and must not stall a document.
const DefaultTimeout = 30 * time.Second

// Config gates the corrective pass. It is passed in explicitly so tests
// can exercise both the enabled and disabled branches; nothing here is
// read from the process environment.
type Config struct {
	Enabled bool
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Refiner asks a model to correct or complete a heuristic parse.
// Implementations return an error on any failure; the caller decides the
// fallback (normally: keep the heuristic transactions).
type Refiner interface {
	Refine(ctx context.Context, rawText string, txs []normalize.Transaction) ([]normalize.Transaction, error)
}

// GeminiRefiner is the Gemini-backed Refiner.
type GeminiRefiner struct {
	cfg Config
}

// NewGeminiRefiner creates a refiner with the given configuration.
func NewGeminiRefiner(cfg Config) *GeminiRefiner {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &GeminiRefiner{cfg: cfg}
}

// Refine sends the raw text and a preview of the current parse to Gemini
// and decodes the returned JSON array into validated transactions.
// When the pass is disabled or no credential is configured it is a no-op
// returning the input unchanged.
func (r *GeminiRefiner) Refine(ctx context.Context, rawText string, txs []normalize.Transaction) ([]normalize.Transaction, error) {
	if !r.cfg.Enabled || r.cfg.APIKey == "" {
		return txs, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	prompt, err := buildPrompt(rawText, txs)
	if err != nil {
		return nil, fmt.Errorf("corrective: building prompt: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      r.cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("corrective: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, r.cfg.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("corrective: generate content: %w", err)
	}

	rawJSON := resp.Text()
	if rawJSON == "" {
		return nil, fmt.Errorf("corrective: empty response from model")
	}

	corrected, err := DecodeTransactions(cleanModelJSON(rawJSON))
	if err != nil {
		return nil, fmt.Errorf("corrective: decode model output: %w", err)
	}
	return corrected, nil
}

var _ Refiner = (*GeminiRefiner)(nil)
