package normalize

import "math"

// scoreConfidence estimates batch quality in [0,1]. well-formedness is a
// defensive re-validation (construction already guarantees it) weighted
// 0.8; coverage treats roughly one record per five source lines as full,
// capped at 1.0, weighted 0.2. No transactions means 0.
func scoreConfidence(txs []Transaction, sourceCount int) float64 {
	if len(txs) == 0 {
		return 0.0
	}
	wellFormed := 0
	for _, t := range txs {
		if t.Date.IsValid() && t.Amount.Sign() > 0 && t.Description != "" {
			wellFormed++
		}
	}
	base := float64(wellFormed) / float64(len(txs))
	coverage := float64(len(txs)) / float64(max(sourceCount, 1)) * 5
	if coverage > 1.0 {
		coverage = 1.0
	}
	return math.Round((base*0.8+coverage*0.2)*1000) / 1000
}
