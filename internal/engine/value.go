package engine

import (
	"math"
	"sort"

	"prediction-engine/internal/models"
)

// DefaultValueThreshold is the margin, in percentage points, by which model
// confidence must exceed the bookmaker-implied probability for a selection
// to count as a value bet.
const DefaultValueThreshold = 5.0

// ScoredSelection decorates a selection with its value-bet assessment.
type ScoredSelection struct {
	models.Selection
	ImpliedProbability float64 `json:"implied_probability"`
	ValueMargin        float64 `json:"value_margin"`
	ValueRating        float64 `json:"value_rating"`
	IsValueBet         bool    `json:"is_value_bet"`
}

// ImpliedProbability converts a decimal price into the bookmaker-implied
// probability, as a percentage.
func ImpliedProbability(odds float64) float64 {
	return 100 / odds
}

// ValueMargin is the number of percentage points by which the model
// confidence exceeds the implied probability.
func ValueMargin(confidence, odds float64) float64 {
	return confidence - ImpliedProbability(odds)
}

// round1 rounds to one decimal place, for the user-facing value rating only;
// ranking uses the unrounded margin.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ScoreSelection assesses a single selection against the threshold.
func ScoreSelection(s models.Selection, threshold float64) ScoredSelection {
	margin := ValueMargin(s.Confidence, s.Odds)
	return ScoredSelection{
		Selection:          s,
		ImpliedProbability: round1(ImpliedProbability(s.Odds)),
		ValueMargin:        margin,
		ValueRating:        round1(margin),
		IsValueBet:         margin >= threshold,
	}
}

// ScorePool assesses every selection in the pool. Order is preserved.
func ScorePool(pool []models.Selection, threshold float64) []ScoredSelection {
	scored := make([]ScoredSelection, 0, len(pool))
	for _, s := range pool {
		scored = append(scored, ScoreSelection(s, threshold))
	}
	return scored
}

// RankValueBets returns the value bets in display order: margin descending,
// ties broken by confidence descending, then by start time ascending. The
// sort is stable so identical inputs always rank identically.
func RankValueBets(scored []ScoredSelection) []ScoredSelection {
	ranked := make([]ScoredSelection, 0, len(scored))
	for _, s := range scored {
		if s.IsValueBet {
			ranked = append(ranked, s)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ValueMargin != ranked[j].ValueMargin {
			return ranked[i].ValueMargin > ranked[j].ValueMargin
		}
		if ranked[i].Confidence != ranked[j].Confidence {
			return ranked[i].Confidence > ranked[j].Confidence
		}
		return ranked[i].StartTime.Before(ranked[j].StartTime)
	})

	return ranked
}
