// Package analysis reduces per-card labels into deck-level statistics: label
// counts and percentages, an archetype profile, and a matchup assessment.
package analysis

import (
	"math"

	"github.com/ramonehamilton/deck-labeler/internal/labels"
)

// Aggregate holds quantity-weighted label totals for a deck.
type Aggregate struct {
	Counts      map[string]int     `json:"counts"`
	Percentages map[string]float64 `json:"percentages"`
	Total       int                `json:"total"`
}

// AggregateLabels folds every card's labels into deck-wide counts. Each
// label on a card contributes that card's quantity (default 1 when absent).
// Total is the sum of all quantities, floored at 1 so percentages never
// divide by zero. The fold is commutative over card iteration order.
func AggregateLabels(labelsByCard map[string][]labels.Label, quantities map[string]int) *Aggregate {
	counts := make(map[string]int)
	for name, cardLabels := range labelsByCard {
		qty, ok := quantities[name]
		if !ok {
			qty = 1
		}
		for _, l := range cardLabels {
			counts[l.Name] += qty
		}
	}

	total := 0
	for _, qty := range quantities {
		total += qty
	}
	if total < 1 {
		total = 1
	}

	percentages := make(map[string]float64, len(counts))
	for label, count := range counts {
		percentages[label] = percent(count, total)
	}

	return &Aggregate{Counts: counts, Percentages: percentages, Total: total}
}

// percent returns count/total as a percentage rounded to one decimal place.
func percent(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*1000) / 10
}
