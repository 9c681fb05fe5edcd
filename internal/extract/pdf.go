package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFText extracts plain text from an in-memory PDF, page by page,
// joined with newlines. Scanned (image-only) PDFs yield little or no
// text; that is the caller's problem to detect, not an error here.
func PDFText(data []byte) (string, error) {
	if len(data) > MaxFileSizeBytes {
		return "", fmt.Errorf("pdf exceeds %d byte limit", MaxFileSizeBytes)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}

// Text dispatches on the sniffed kind: PDFs go through text extraction,
// anything else is treated as already-plain UTF-8 text. Image kinds need
// OCR, which lives outside this service.
func Text(data []byte) (string, error) {
	switch kind := DetectKind(data); {
	case kind == KindPDF:
		return PDFText(data)
	case kind.IsImage():
		return "", fmt.Errorf("%s payload needs OCR, no text layer available", kind)
	default:
		if len(data) > MaxFileSizeBytes {
			return "", fmt.Errorf("payload exceeds %d byte limit", MaxFileSizeBytes)
		}
		return string(data), nil
	}
}
