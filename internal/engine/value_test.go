package engine

import (
	"math"
	"testing"
	"time"

	"prediction-engine/internal/models"
)

func TestScoreSelectionFlagsValueBet(t *testing.T) {
	// 2.10 implies 47.6%; model says 55%, a 7.4 point edge.
	s := makeSelection("a", func(s *models.Selection) {
		s.Odds = 2.10
		s.Confidence = 55
	})

	scored := ScoreSelection(s, DefaultValueThreshold)
	if !scored.IsValueBet {
		t.Errorf("expected value bet, margin %.2f", scored.ValueMargin)
	}
	if scored.ValueRating != 7.4 {
		t.Errorf("expected rating 7.4, got %.2f", scored.ValueRating)
	}
	if scored.ImpliedProbability != 47.6 {
		t.Errorf("expected implied 47.6, got %.2f", scored.ImpliedProbability)
	}
}

func TestScoreSelectionBelowThreshold(t *testing.T) {
	// 1.50 implies 66.7%; 70% confidence is only a 3.3 point edge.
	s := makeSelection("a", func(s *models.Selection) {
		s.Odds = 1.50
		s.Confidence = 70
	})

	scored := ScoreSelection(s, DefaultValueThreshold)
	if scored.IsValueBet {
		t.Errorf("expected no value bet, margin %.2f", scored.ValueMargin)
	}
}

func TestScoreSelectionCustomThreshold(t *testing.T) {
	s := makeSelection("a", func(s *models.Selection) {
		s.Odds = 1.50
		s.Confidence = 70
	})

	if !ScoreSelection(s, 3.0).IsValueBet {
		t.Error("expected value bet under a 3 point threshold")
	}
}

func TestRankValueBetsOrdering(t *testing.T) {
	early := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	pool := []models.Selection{
		// margin 55 - 47.62 = 7.38
		makeSelection("small-edge", func(s *models.Selection) { s.Odds = 2.10; s.Confidence = 55 }),
		// margin 60 - 40 = 20
		makeSelection("big-edge", func(s *models.Selection) { s.Odds = 2.50; s.Confidence = 60 }),
		// same margin as twin-b, higher confidence wins
		makeSelection("twin-a", func(s *models.Selection) { s.Odds = 2.00; s.Confidence = 60 }),
		makeSelection("twin-b", func(s *models.Selection) { s.Odds = 2.50; s.Confidence = 50 }),
		// equal margin and confidence: soonest kick-off first
		makeSelection("late", func(s *models.Selection) { s.Odds = 2.00; s.Confidence = 60; s.StartTime = late }),
		makeSelection("early", func(s *models.Selection) { s.Odds = 2.00; s.Confidence = 60; s.StartTime = early }),
	}

	ranked := RankValueBets(ScorePool(pool, DefaultValueThreshold))

	want := []string{"big-edge", "early", "twin-a", "late", "twin-b", "small-edge"}
	if len(ranked) != len(want) {
		t.Fatalf("expected %d value bets, got %d", len(want), len(ranked))
	}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, ranked[i].ID)
		}
	}
}

func TestRankValueBetsDeterministic(t *testing.T) {
	pool := []models.Selection{
		makeSelection("a", func(s *models.Selection) { s.Odds = 2.00; s.Confidence = 60 }),
		makeSelection("b", func(s *models.Selection) { s.Odds = 2.00; s.Confidence = 60 }),
	}

	first := RankValueBets(ScorePool(pool, DefaultValueThreshold))
	second := RankValueBets(ScorePool(pool, DefaultValueThreshold))
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("ranking is not deterministic at position %d", i)
		}
	}
	// Stable sort keeps input order for fully equal keys.
	if first[0].ID != "a" || first[1].ID != "b" {
		t.Errorf("expected input order preserved for ties, got %s, %s", first[0].ID, first[1].ID)
	}
}

func TestValueMarginPrecision(t *testing.T) {
	margin := ValueMargin(55, 2.10)
	if math.Abs(margin-7.38) > 0.01 {
		t.Errorf("expected margin ~7.38, got %.4f", margin)
	}
}
