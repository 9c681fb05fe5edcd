package pipeline

import (
	"context"

	"github.com/SaiyamJain468/Paylockr/internal/extract"
)

// DocumentStore fetches the raw bytes of a source document. Satisfied by
// gcs.Client; tests plug in fakes.
type DocumentStore interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// TextExtractor turns a raw payload into plain text. Satisfied by the
// extract package; an OCR-backed implementation could be swapped in for
// image payloads.
type TextExtractor interface {
	Text(data []byte) (string, error)
	DetectKind(data []byte) extract.Kind
}

// defaultExtractor delegates to the extract package functions.
type defaultExtractor struct{}

func (defaultExtractor) Text(data []byte) (string, error) { return extract.Text(data) }

func (defaultExtractor) DetectKind(data []byte) extract.Kind { return extract.DetectKind(data) }

// NewExtractor returns the standard text extractor.
func NewExtractor() TextExtractor {
	return defaultExtractor{}
}
