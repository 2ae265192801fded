package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"prediction-engine/internal/engine"
	"prediction-engine/internal/models"
	"prediction-engine/internal/repository"
)

func seedSelections(t *testing.T, db *gorm.DB, selections ...models.Selection) {
	for i := range selections {
		if err := db.Create(&selections[i]).Error; err != nil {
			t.Fatalf("failed to seed selection %s: %v", selections[i].ID, err)
		}
	}
}

func testSelection(id string, confidence, odds float64) models.Selection {
	return models.Selection{
		ID:        id,
		MatchID:   "match-" + id,
		Sport:     "football",
		League:    "Premier League",
		HomeTeam:  "Team A " + id,
		AwayTeam:  "Team B " + id,
		StartTime: time.Date(2026, 4, 1, 15, 0, 0, 0, time.UTC),
		Outcome: models.Outcome{
			Market: models.MarketMatchWinner,
			Pick:   "home",
		},
		Confidence: confidence,
		Odds:       odds,
		Status:     models.StatusPending,
	}
}

func newTestPredictionService(t *testing.T, db *gorm.DB) *PredictionService {
	return NewPredictionService(
		repository.NewSelectionRepository(db),
		repository.NewAccumulatorRepository(db),
		engine.DefaultArchetypes(),
		engine.DefaultValueThreshold,
		zap.NewNop(),
	)
}

func TestScorePoolReadsSnapshot(t *testing.T) {
	db := setupTestDB(t)
	seedSelections(t, db,
		testSelection("a", 55, 2.10),
		testSelection("b", 70, 1.50),
	)
	settled := testSelection("c", 90, 1.20)
	settled.Status = models.StatusWon
	seedSelections(t, db, settled)

	svc := newTestPredictionService(t, db)

	scored, err := svc.ScorePool(context.Background(), engine.PoolCriteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scored) != 2 {
		t.Fatalf("expected 2 pending selections, got %d", len(scored))
	}
	for _, s := range scored {
		if s.ID == "a" && !s.IsValueBet {
			t.Error("selection a (7.4 point edge) should be a value bet")
		}
		if s.ID == "b" && s.IsValueBet {
			t.Error("selection b (3.3 point edge) should not be a value bet")
		}
	}
}

func TestTopValueBetsLimit(t *testing.T) {
	db := setupTestDB(t)
	for i := 0; i < 5; i++ {
		seedSelections(t, db, testSelection(fmt.Sprintf("v%d", i), 60, 2.5))
	}

	svc := newTestPredictionService(t, db)

	ranked, err := svc.TopValueBets(context.Background(), engine.PoolCriteria{}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ranked) != 3 {
		t.Errorf("expected limit of 3, got %d", len(ranked))
	}
}

func TestBuildAccumulatorsFromStore(t *testing.T) {
	db := setupTestDB(t)
	for i := 0; i < 6; i++ {
		seedSelections(t, db, testSelection(fmt.Sprintf("s%d", i), 75+float64(i*2), 1.5))
	}

	svc := newTestPredictionService(t, db)

	first, err := svc.BuildAccumulators(context.Background(), engine.PoolCriteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("expected accumulators from a rich pool")
	}

	second, err := svc.BuildAccumulators(context.Background(), engine.PoolCriteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("expected deterministic output, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("accumulator %d: id changed between runs (%s vs %s)", i, first[i].ID, second[i].ID)
		}
	}
}

func TestCombineCustomFromSelectionIDs(t *testing.T) {
	db := setupTestDB(t)
	seedSelections(t, db,
		testSelection("a", 70, 1.50),
		testSelection("b", 65, 1.80),
	)

	svc := newTestPredictionService(t, db)
	stake := decimal.NewFromInt(10)

	acc, err := svc.CombineCustom(context.Background(), 1, &models.CombineRequest{
		SelectionIDs: []string{"a", "b"},
		RiskTier:     models.RiskBalanced,
		Stake:        &stake,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if acc.Confidence != 82 {
		t.Errorf("expected confidence 82, got %d", acc.Confidence)
	}
	if acc.PotentialReturn == nil || !acc.PotentialReturn.Equal(decimal.NewFromFloat(27.00)) {
		t.Errorf("expected potential return 27.00, got %v", acc.PotentialReturn)
	}
}

func TestCombineCustomRawLegs(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPredictionService(t, db)

	acc, err := svc.CombineCustom(context.Background(), 0, &models.CombineRequest{
		Legs: []models.CustomLeg{
			{HomeTeam: "A", AwayTeam: "B", Odds: 2.0, Outcome: models.Outcome{Market: models.MarketMatchWinner, Pick: "home"}},
			{HomeTeam: "C", AwayTeam: "D", Odds: 3.0, Outcome: models.Outcome{Market: models.MarketMatchWinner, Pick: "away"}},
		},
		RiskTier: models.RiskRisky,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Raw legs get the implied-probability display confidence.
	if acc.Legs[0].Confidence != 50 || acc.Legs[1].Confidence != 33 {
		t.Errorf("expected leg confidences 50 and 33, got %d and %d", acc.Legs[0].Confidence, acc.Legs[1].Confidence)
	}
}

func TestCombineCustomRejectsUnknownOutcome(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPredictionService(t, db)

	cases := []models.Outcome{
		{Market: "first_scorer", Pick: "home"},
		{Market: models.MarketMatchWinner, Pick: "banker"},
		{Market: models.MarketOverUnder, Pick: "over"}, // missing line
	}
	for _, outcome := range cases {
		_, err := svc.CombineCustom(context.Background(), 0, &models.CombineRequest{
			Legs: []models.CustomLeg{
				{HomeTeam: "A", AwayTeam: "B", Odds: 2.0, Outcome: outcome},
				{HomeTeam: "C", AwayTeam: "D", Odds: 3.0, Outcome: models.Outcome{Market: models.MarketMatchWinner, Pick: "away"}},
			},
			RiskTier: models.RiskRisky,
		})
		if !errors.Is(err, engine.ErrInvalidCriteria) {
			t.Errorf("outcome %s/%s: expected ErrInvalidCriteria, got %v", outcome.Market, outcome.Pick, err)
		}
	}
}

func TestCombineCustomUnknownSelection(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestPredictionService(t, db)

	_, err := svc.CombineCustom(context.Background(), 1, &models.CombineRequest{
		SelectionIDs: []string{"missing-1", "missing-2"},
		RiskTier:     models.RiskBalanced,
	})
	if !errors.Is(err, engine.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCombineCustomSaveRequiresUser(t *testing.T) {
	db := setupTestDB(t)
	seedSelections(t, db,
		testSelection("a", 70, 1.50),
		testSelection("b", 65, 1.80),
	)
	svc := newTestPredictionService(t, db)

	_, err := svc.CombineCustom(context.Background(), 0, &models.CombineRequest{
		SelectionIDs: []string{"a", "b"},
		RiskTier:     models.RiskBalanced,
		Save:         true,
	})
	if !errors.Is(err, engine.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestCombineCustomSavePersists(t *testing.T) {
	db := setupTestDB(t)
	seedSelections(t, db,
		testSelection("a", 70, 1.50),
		testSelection("b", 65, 1.80),
	)
	svc := newTestPredictionService(t, db)
	stake := decimal.NewFromInt(5)

	acc, err := svc.CombineCustom(context.Background(), 42, &models.CombineRequest{
		SelectionIDs: []string{"a", "b"},
		RiskTier:     models.RiskSafe,
		Stake:        &stake,
		Name:         "My Weekend Double",
		Save:         true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listed, err := svc.ListUserAccumulators(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != acc.ID {
		t.Fatalf("expected the saved accumulator to be listed, got %v", listed)
	}
	if len(listed[0].Legs) != 2 {
		t.Errorf("expected 2 persisted legs, got %d", len(listed[0].Legs))
	}
	if listed[0].Name != "My Weekend Double" {
		t.Errorf("unexpected name %q", listed[0].Name)
	}
}
