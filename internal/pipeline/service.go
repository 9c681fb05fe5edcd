package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/SaiyamJain468/Paylockr/internal/corrective"
	"github.com/SaiyamJain468/Paylockr/internal/normalize"
)

// Service exposes synchronous normalization for callers that already
// hold the raw text or rows, such as the HTTP handlers.
type Service struct {
	refiner corrective.Refiner
	log     zerolog.Logger
}

// NewService builds a Service around the given refiner.
func NewService(refiner corrective.Refiner, log zerolog.Logger) *Service {
	return &Service{refiner: refiner, log: log}
}

// NormalizeText parses free-form statement text and applies the
// corrective pass when one is configured.
func (s *Service) NormalizeText(ctx context.Context, text string) normalize.Result {
	result := normalize.NormalizeText(text)
	return s.refine(ctx, text, result)
}

// NormalizeRows parses tabular statement rows. The corrective pass sees
// the rows re-joined into lines.
func (s *Service) NormalizeRows(ctx context.Context, rows [][]string) normalize.Result {
	result := normalize.NormalizeRows(rows)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, " "))
	}
	return s.refine(ctx, strings.Join(lines, "\n"), result)
}

func (s *Service) refine(ctx context.Context, rawText string, result normalize.Result) normalize.Result {
	refined, err := s.refiner.Refine(ctx, rawText, result.Transactions)
	if err != nil {
		s.log.Warn().Err(err).Msg("Corrective pass failed, keeping heuristic parse")
		return result
	}
	result.Transactions = refined
	return result
}
