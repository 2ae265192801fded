package engine

import (
	"testing"

	"prediction-engine/internal/models"
)

func TestGate(t *testing.T) {
	cases := []struct {
		tier      models.SubscriptionTier
		isPremium bool
		want      Visibility
	}{
		{models.TierFree, false, VisibilityVisible},
		{models.TierFree, true, VisibilityLocked},
		{models.TierBasic, true, VisibilityVisible},
		{models.TierPro, true, VisibilityVisible},
		{models.TierElite, true, VisibilityVisible},
		{models.TierPro, false, VisibilityVisible},
	}

	for _, c := range cases {
		if got := Gate(c.tier, c.isPremium); got != c.want {
			t.Errorf("Gate(%s, premium=%v): expected %s, got %s", c.tier, c.isPremium, c.want, got)
		}
	}
}

func TestGateIsPure(t *testing.T) {
	for i := 0; i < 3; i++ {
		if Gate(models.TierFree, true) != VisibilityLocked {
			t.Fatal("gate decision changed between identical calls")
		}
	}
}

func TestGateSelectionRedaction(t *testing.T) {
	scored := ScoreSelection(makeSelection("a", func(s *models.Selection) {
		s.IsPremium = true
		s.Odds = 2.10
		s.Confidence = 55
	}), DefaultValueThreshold)

	locked := GateSelection(scored, models.TierFree)
	if !locked.Locked {
		t.Fatal("expected locked view for free viewer")
	}
	if locked.Outcome != nil || locked.Odds != nil || locked.Confidence != nil || locked.ValueRating != nil {
		t.Error("locked view must omit outcome, odds and scoring fields")
	}
	if locked.HomeTeam == "" || locked.AwayTeam == "" || locked.StartTime.IsZero() {
		t.Error("locked view must keep the match metadata")
	}

	visible := GateSelection(scored, models.TierPro)
	if visible.Locked {
		t.Fatal("expected visible view for pro viewer")
	}
	if visible.Outcome == nil || visible.Odds == nil || visible.Confidence == nil {
		t.Error("visible view must carry the full payload")
	}
	if visible.OutcomeLabel != "Home Win" {
		t.Errorf("expected outcome label Home Win, got %q", visible.OutcomeLabel)
	}
}

func TestGateAccumulatorRedaction(t *testing.T) {
	pool := scoredPool(
		makeSelection("a", func(s *models.Selection) { s.MatchID = "m1"; s.Confidence = 90; s.IsPremium = true }),
		makeSelection("b", func(s *models.Selection) { s.MatchID = "m2"; s.Confidence = 80 }),
	)
	accs := BuildAccumulators(pool, BuilderConfig{Archetypes: []Archetype{homeWinArchetype()}})
	if len(accs) != 1 {
		t.Fatalf("expected 1 accumulator, got %d", len(accs))
	}

	locked := GateAccumulator(accs[0], models.TierFree)
	if !locked.Locked {
		t.Fatal("expected locked accumulator for free viewer")
	}
	if locked.TotalOdds != nil || locked.Confidence != nil || locked.MarketType != "" {
		t.Error("locked accumulator must omit odds, confidence and market type")
	}
	for _, leg := range locked.Legs {
		if leg.Outcome != nil || leg.Odds != nil {
			t.Error("locked accumulator legs must omit outcome and odds")
		}
		if leg.HomeTeam == "" {
			t.Error("locked accumulator legs must keep team names")
		}
	}

	visible := GateAccumulator(accs[0], models.TierElite)
	if visible.Locked || visible.TotalOdds == nil || visible.Confidence == nil {
		t.Error("expected full payload for elite viewer")
	}
}
