package corrective

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SaiyamJain468/Paylockr/internal/normalize"
)

const (
	// maxRawTextChars limits how much raw statement text goes to the model.
	maxRawTextChars = 2000
	// maxPreviewTransactions limits the sample of the heuristic parse.
	maxPreviewTransactions = 5
)

// buildPrompt assembles the correction request: truncated raw text, a
// preview of the heuristic parse, and a strict JSON-array output contract.
func buildPrompt(rawText string, txs []normalize.Transaction) (string, error) {
	if utf8.RuneCountInString(rawText) > maxRawTextChars {
		rawText = string([]rune(rawText)[:maxRawTextChars])
	}

	preview := txs
	if len(preview) > maxPreviewTransactions {
		preview = preview[:maxPreviewTransactions]
	}
	previewJSON, err := json.MarshalIndent(preview, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal parse preview: %w", err)
	}

	var b strings.Builder
	b.WriteString("You are a financial data extraction assistant.\n\n")
	b.WriteString("Given the raw text from a bank statement and an initial parse, correct or complete the transaction list.\n\n")
	b.WriteString("Raw text (first 2000 chars):\n")
	b.WriteString(rawText)
	b.WriteString("\n\nInitial parse (first 5):\n")
	b.Write(previewJSON)
	b.WriteString("\n\nReturn ONLY a valid JSON array of transactions matching this schema exactly:\n")
	b.WriteString(`[{"date":"YYYY-MM-DD","description":"string","amount":number,"type":"debit|credit","balance":number|null}]`)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- date must be YYYY-MM-DD\n")
	b.WriteString("- amount must be a positive number\n")
	b.WriteString("- type must be exactly \"debit\" or \"credit\"\n")
	b.WriteString("- balance can be null if unknown\n")
	b.WriteString("- Return all transactions you can find, not just the sample\n")
	b.WriteString("- Do not include any explanation or markdown, only the JSON array\n")

	return b.String(), nil
}

// cleanModelJSON strips Markdown fences and surrounding junk when the
// model ignores the no-markdown instruction.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	s = strings.TrimSpace(s)

	// Keep only from the first '[' to the last ']' if junk remains.
	if start := strings.Index(s, "["); start != -1 {
		if end := strings.LastIndex(s, "]"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}
	return s
}
