package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prediction-engine/internal/engine"
	"prediction-engine/internal/metrics"
	"prediction-engine/internal/models"
	"prediction-engine/internal/repository"
)

// PredictionService is the read path: it pulls the pending-selection
// snapshot, runs the scoring engine over it and assembles accumulators. All
// engine work is pure and per-request; only user-placed custom accumulators
// are ever written back.
type PredictionService struct {
	selections     *repository.SelectionRepository
	accumulators   *repository.AccumulatorRepository
	archetypes     []engine.Archetype
	valueThreshold float64
	logger         *zap.Logger
}

// NewPredictionService creates a new PredictionService
func NewPredictionService(
	selections *repository.SelectionRepository,
	accumulators *repository.AccumulatorRepository,
	archetypes []engine.Archetype,
	valueThreshold float64,
	logger *zap.Logger,
) *PredictionService {
	return &PredictionService{
		selections:     selections,
		accumulators:   accumulators,
		archetypes:     archetypes,
		valueThreshold: valueThreshold,
		logger:         logger,
	}
}

// ScorePool filters the pending snapshot and assesses every survivor
// against the value threshold.
func (s *PredictionService) ScorePool(ctx context.Context, criteria engine.PoolCriteria) ([]engine.ScoredSelection, error) {
	snapshot, err := s.selections.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	pool, err := engine.FilterPool(snapshot, criteria)
	if err != nil {
		return nil, err
	}

	scored := engine.ScorePool(pool, s.valueThreshold)

	metrics.PoolsScored.Inc()
	for _, sel := range scored {
		if sel.IsValueBet {
			metrics.ValueBetsFlagged.Inc()
		}
	}

	return scored, nil
}

// TopValueBets returns the ranked value bets for the criteria, capped at
// limit when limit is positive.
func (s *PredictionService) TopValueBets(ctx context.Context, criteria engine.PoolCriteria, limit int) ([]engine.ScoredSelection, error) {
	scored, err := s.ScorePool(ctx, criteria)
	if err != nil {
		return nil, err
	}

	ranked := engine.RankValueBets(scored)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// BuildAccumulators assembles the configured archetypes over the scored
// pool. Output is deterministic for an identical snapshot and configuration.
func (s *PredictionService) BuildAccumulators(ctx context.Context, criteria engine.PoolCriteria) ([]models.Accumulator, error) {
	scored, err := s.ScorePool(ctx, criteria)
	if err != nil {
		return nil, err
	}

	accs := engine.BuildAccumulators(scored, engine.BuilderConfig{Archetypes: s.archetypes})
	for _, acc := range accs {
		metrics.AccumulatorsBuilt.WithLabelValues(acc.Name).Inc()
	}

	s.logger.Debug("accumulators built",
		zap.Int("pool_size", len(scored)),
		zap.Int("accumulators", len(accs)),
	)

	return accs, nil
}

// CombineCustom prices a user-built accumulator. Legs referenced by
// selection id must exist in the pool and still be pending; raw-odds legs
// get the implied-probability display confidence. With Save set and a
// stake supplied the accumulator is persisted for the user.
func (s *PredictionService) CombineCustom(ctx context.Context, userID uint, req *models.CombineRequest) (*models.Accumulator, error) {
	legs, err := s.resolveLegs(ctx, req)
	if err != nil {
		return nil, err
	}

	mode := engine.ConfidenceMode(req.Mode)
	if req.Mode != "" && mode != engine.ModeHeuristic && mode != engine.ModeProbability {
		return nil, fmt.Errorf("%w: unknown confidence mode %q", engine.ErrInvalidCriteria, req.Mode)
	}

	combo, err := engine.Combine(legs, req.RiskTier, engine.CombineOptions{Mode: mode})
	if err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = fmt.Sprintf("%d-Fold Accumulator", len(legs))
	}

	acc := &models.Accumulator{
		ID:         uuid.NewString(),
		Name:       name,
		TotalOdds:  combo.TotalOdds,
		Confidence: combo.Confidence,
		RiskTier:   req.RiskTier,
		SizeBucket: models.BucketForLegCount(len(legs)),
		MarketType: customMarketType(legs),
		IsPremium:  customIsPremium(legs),
	}
	for i, leg := range legs {
		acc.Legs = append(acc.Legs, models.AccumulatorLeg{
			AccumulatorID: acc.ID,
			SelectionID:   leg.ID,
			Position:      i + 1,
			HomeTeam:      leg.HomeTeam,
			AwayTeam:      leg.AwayTeam,
			Outcome:       leg.Outcome,
			Odds:          leg.Odds,
			Confidence:    int(leg.Confidence),
		})
	}

	if req.Stake != nil {
		if req.Stake.IsNegative() || req.Stake.IsZero() {
			return nil, fmt.Errorf("%w: stake must be positive", engine.ErrInvalidCriteria)
		}
		potential := engine.PotentialReturn(combo.TotalOdds, *req.Stake)
		acc.Stake = req.Stake
		acc.PotentialReturn = &potential
	}

	if req.Save {
		if userID == 0 {
			return nil, engine.ErrPermissionDenied
		}
		acc.UserID = &userID
		if err := s.accumulators.Create(ctx, acc); err != nil {
			return nil, err
		}
		s.logger.Info("custom accumulator saved",
			zap.Uint("user_id", userID),
			zap.String("accumulator_id", acc.ID),
			zap.Int("legs", len(legs)),
		)
	}

	return acc, nil
}

// ListUserAccumulators returns the user's saved custom accumulators.
func (s *PredictionService) ListUserAccumulators(ctx context.Context, userID uint) ([]models.Accumulator, error) {
	if userID == 0 {
		return nil, engine.ErrPermissionDenied
	}
	return s.accumulators.ListByUser(ctx, userID)
}

// resolveLegs turns a combine request into concrete selections, looking up
// referenced ids and synthesizing pending selections for raw-odds legs.
func (s *PredictionService) resolveLegs(ctx context.Context, req *models.CombineRequest) ([]models.Selection, error) {
	legs := make([]models.Selection, 0, len(req.SelectionIDs)+len(req.Legs))

	if len(req.SelectionIDs) > 0 {
		resolved, err := s.selections.GetByIDs(ctx, req.SelectionIDs)
		if err != nil {
			return nil, err
		}
		legs = append(legs, resolved...)
	}

	for i, raw := range req.Legs {
		if raw.Odds < engine.MinOdds {
			return nil, fmt.Errorf("%w: %.2f for leg %d", engine.ErrInvalidOdds, raw.Odds, i+1)
		}
		if !raw.Outcome.Valid() {
			return nil, fmt.Errorf("%w: unknown outcome %s/%s for leg %d",
				engine.ErrInvalidCriteria, raw.Outcome.Market, raw.Outcome.Pick, i+1)
		}
		legs = append(legs, models.Selection{
			MatchID:    fmt.Sprintf("custom-%d", i+1),
			HomeTeam:   raw.HomeTeam,
			AwayTeam:   raw.AwayTeam,
			Outcome:    raw.Outcome,
			Odds:       raw.Odds,
			Confidence: float64(engine.LegConfidenceFromOdds(raw.Odds)),
			Status:     models.StatusPending,
		})
	}

	return legs, nil
}

func customMarketType(legs []models.Selection) string {
	family := legs[0].Outcome.Market
	for _, leg := range legs[1:] {
		if leg.Outcome.Market != family {
			return "mixed"
		}
	}
	switch family {
	case models.MarketMatchWinner:
		return "Match Winner"
	case models.MarketBTTS:
		return "Both Teams To Score"
	case models.MarketOverUnder:
		return "Over/Under"
	}
	return "mixed"
}

func customIsPremium(legs []models.Selection) bool {
	for _, leg := range legs {
		if leg.IsPremium {
			return true
		}
	}
	return false
}
