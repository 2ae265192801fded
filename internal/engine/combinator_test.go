package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"prediction-engine/internal/models"
)

func twoLegPool() []models.Selection {
	return []models.Selection{
		makeSelection("a", func(s *models.Selection) { s.Odds = 1.50; s.Confidence = 70 }),
		makeSelection("b", func(s *models.Selection) { s.Odds = 1.80; s.Confidence = 65 }),
	}
}

func TestCombineBalanced(t *testing.T) {
	// total 2.70, base clamp(95-13.5)=81.5, +5 capped at 82.
	combo, err := Combine(twoLegPool(), models.RiskBalanced, CombineOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(combo.TotalOdds-2.70) > 1e-9 {
		t.Errorf("expected total odds 2.70, got %v", combo.TotalOdds)
	}
	if combo.Confidence != 82 {
		t.Errorf("expected confidence 82, got %d", combo.Confidence)
	}
}

func TestCombineUltra(t *testing.T) {
	// base 81.5, -30 = 51.5, rounds to 52.
	combo, err := Combine(twoLegPool(), models.RiskUltra, CombineOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if combo.Confidence != 52 {
		t.Errorf("expected confidence 52, got %d", combo.Confidence)
	}
}

func TestCombineClampsPerTier(t *testing.T) {
	bounds := map[models.RiskTier][2]int{
		models.RiskSafe:     {10, 92},
		models.RiskBalanced: {10, 82},
		models.RiskRisky:    {35, 95},
		models.RiskHighRisk: {30, 95},
		models.RiskUltra:    {25, 95},
	}

	pools := [][]models.Selection{
		twoLegPool(),
		{
			// huge total odds pushes base to the floor
			makeSelection("x", func(s *models.Selection) { s.Odds = 10.0; s.Confidence = 20 }),
			makeSelection("y", func(s *models.Selection) { s.Odds = 8.0; s.Confidence = 25 }),
		},
		{
			// tiny total odds pushes base to the ceiling
			makeSelection("p", func(s *models.Selection) { s.Odds = 1.01; s.Confidence = 95 }),
			makeSelection("q", func(s *models.Selection) { s.MatchID = "other"; s.Odds = 1.01; s.Confidence = 95 }),
		},
	}

	for tier, bound := range bounds {
		for _, pool := range pools {
			combo, err := Combine(pool, tier, CombineOptions{})
			if err != nil {
				t.Fatalf("tier %s: unexpected error: %v", tier, err)
			}
			if combo.Confidence < bound[0] || combo.Confidence > bound[1] {
				t.Errorf("tier %s: confidence %d out of [%d,%d]", tier, combo.Confidence, bound[0], bound[1])
			}
		}
	}
}

func TestCombineDeterministic(t *testing.T) {
	first, err := Combine(twoLegPool(), models.RiskBalanced, CombineOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Combine(twoLegPool(), models.RiskBalanced, CombineOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestCombineTotalOddsMonotonic(t *testing.T) {
	legs := twoLegPool()
	prev, err := Combine(legs, models.RiskBalanced, CombineOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		legs = append(legs, makeSelection(string(rune('c'+i)), func(s *models.Selection) {
			s.MatchID = "extra-" + string(rune('c'+i))
			s.Odds = 1.20
		}))
		combo, err := Combine(legs, models.RiskBalanced, CombineOptions{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if combo.TotalOdds < prev.TotalOdds {
			t.Errorf("total odds decreased from %v to %v after adding a leg", prev.TotalOdds, combo.TotalOdds)
		}
		prev = combo
	}
}

func TestCombineProbabilityMode(t *testing.T) {
	// 0.75 * 0.50 = 37.5% joint, +5 balanced = 42.5, rounds to 43.
	legs := []models.Selection{
		makeSelection("a", func(s *models.Selection) { s.Odds = 1.50; s.Confidence = 75 }),
		makeSelection("b", func(s *models.Selection) { s.Odds = 1.80; s.Confidence = 50 }),
	}
	combo, err := Combine(legs, models.RiskBalanced, CombineOptions{Mode: ModeProbability})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if combo.Confidence != 43 {
		t.Errorf("expected confidence 43, got %d", combo.Confidence)
	}
	if math.Abs(combo.TotalOdds-2.70) > 1e-9 {
		t.Errorf("total odds must not depend on mode, got %v", combo.TotalOdds)
	}
}

func TestCombineRejectsDegenerate(t *testing.T) {
	_, err := Combine(nil, models.RiskBalanced, CombineOptions{})
	if !errors.Is(err, ErrEmptyAccumulator) {
		t.Errorf("expected ErrEmptyAccumulator for no legs, got %v", err)
	}

	single := []models.Selection{makeSelection("a", nil)}
	_, err = Combine(single, models.RiskBalanced, CombineOptions{})
	if !errors.Is(err, ErrEmptyAccumulator) {
		t.Errorf("expected ErrEmptyAccumulator for one leg, got %v", err)
	}
}

func TestCombineRejectsInvalidOdds(t *testing.T) {
	legs := twoLegPool()
	legs[1].Odds = 1.0
	_, err := Combine(legs, models.RiskBalanced, CombineOptions{})
	if !errors.Is(err, ErrInvalidOdds) {
		t.Errorf("expected ErrInvalidOdds, got %v", err)
	}
}

func TestCombineRejectsSettledLeg(t *testing.T) {
	legs := twoLegPool()
	legs[0].Status = models.StatusWon
	_, err := Combine(legs, models.RiskBalanced, CombineOptions{})
	if !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected ErrInvariantViolation, got %v", err)
	}
}

func TestCombineRejectsDuplicateMatchMarket(t *testing.T) {
	legs := twoLegPool()
	legs[1].MatchID = legs[0].MatchID
	_, err := Combine(legs, models.RiskBalanced, CombineOptions{})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Errorf("expected rejection of duplicate match+market, got %v", err)
	}
}

func TestCombineRejectsUnknownTier(t *testing.T) {
	_, err := Combine(twoLegPool(), models.RiskTier("reckless"), CombineOptions{})
	if !errors.Is(err, ErrInvalidCriteria) {
		t.Errorf("expected ErrInvalidCriteria for unknown tier, got %v", err)
	}
}

func TestLegConfidenceFromOdds(t *testing.T) {
	cases := []struct {
		odds float64
		want int
	}{
		{2.0, 50},
		{1.01, 95}, // 99 capped at the display ceiling
		{4.0, 25},
		{3.0, 33},
	}
	for _, c := range cases {
		if got := LegConfidenceFromOdds(c.odds); got != c.want {
			t.Errorf("odds %.2f: expected %d, got %d", c.odds, c.want, got)
		}
	}
}

func TestPotentialReturn(t *testing.T) {
	stake := decimal.NewFromInt(10)
	got := PotentialReturn(2.70, stake)
	if !got.Equal(decimal.NewFromFloat(27.00)) {
		t.Errorf("expected 27.00, got %s", got)
	}
}
