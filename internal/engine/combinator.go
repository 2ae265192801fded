package engine

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"prediction-engine/internal/models"
)

// MinOdds is the lowest admissible decimal price for a leg.
const MinOdds = 1.01

// ConfidenceMode selects how the base combined confidence is derived.
type ConfidenceMode string

const (
	// ModeHeuristic is the product behavior: a linear decay on total odds,
	// deliberately conservative and legible to end users.
	ModeHeuristic ConfidenceMode = "heuristic"

	// ModeProbability computes the true product of independent per-leg
	// probabilities instead. Offered as an explicitly named alternative; the
	// heuristic stays the default.
	ModeProbability ConfidenceMode = "probability"
)

// CombineOptions tunes a combination. The zero value gives the default
// heuristic behavior.
type CombineOptions struct {
	Mode ConfidenceMode `json:"mode,omitempty"`
}

// Combination is the combined price and tier-adjusted confidence for an
// ordered set of legs.
type Combination struct {
	TotalOdds  float64         `json:"total_odds"`
	Confidence int             `json:"confidence"`
	RiskTier   models.RiskTier `json:"risk_tier"`
}

// tierPolicy is the additive adjustment and clamp range for one risk tier.
type tierPolicy struct {
	adjust float64
	min    float64
	max    float64
}

var tierPolicies = map[models.RiskTier]tierPolicy{
	models.RiskSafe:     {adjust: 15, min: 10, max: 92},
	models.RiskBalanced: {adjust: 5, min: 10, max: 82},
	models.RiskRisky:    {adjust: -10, min: 35, max: 95},
	models.RiskHighRisk: {adjust: -20, min: 30, max: 95},
	models.RiskUltra:    {adjust: -30, min: 25, max: 95},
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Combine computes total odds and the combined confidence for the given legs
// under a risk tier. Legs must be pending, distinct per match+market, and
// priced at or above MinOdds; fewer than two legs is a degenerate
// accumulator and is rejected before any score is computed.
func Combine(legs []models.Selection, tier models.RiskTier, opts CombineOptions) (Combination, error) {
	if len(legs) < 2 {
		return Combination{}, fmt.Errorf("%w: got %d legs, need at least 2", ErrEmptyAccumulator, len(legs))
	}
	if !tier.Valid() {
		return Combination{}, fmt.Errorf("%w: unknown risk tier %q", ErrInvalidCriteria, tier)
	}

	seen := make(map[string]struct{}, len(legs))
	totalOdds := 1.0
	jointProb := 1.0
	for _, leg := range legs {
		if leg.Odds < MinOdds {
			return Combination{}, fmt.Errorf("%w: %.2f for selection %s", ErrInvalidOdds, leg.Odds, leg.ID)
		}
		if leg.Status != models.StatusPending {
			return Combination{}, fmt.Errorf("%w: selection %s has status %s", ErrInvariantViolation, leg.ID, leg.Status)
		}
		key := leg.DedupeKey()
		if _, dup := seen[key]; dup {
			return Combination{}, fmt.Errorf("%w: duplicate match+market %s", ErrInvalidCriteria, key)
		}
		seen[key] = struct{}{}

		totalOdds *= leg.Odds
		jointProb *= leg.Confidence / 100
	}

	policy := tierPolicies[tier]

	base := clamp(95-totalOdds*5, 10, 95)
	if opts.Mode == ModeProbability {
		base = clamp(jointProb*100, 10, 95)
	}

	confidence := math.Round(clamp(base+policy.adjust, policy.min, policy.max))

	return Combination{
		TotalOdds:  totalOdds,
		Confidence: int(confidence),
		RiskTier:   tier,
	}, nil
}

// LegConfidenceFromOdds is the implied-probability display heuristic for
// legs that arrive without a model confidence (user-built accumulators from
// raw prices).
func LegConfidenceFromOdds(odds float64) int {
	c := math.Round(ImpliedProbability(odds))
	if c > 95 {
		c = 95
	}
	return int(c)
}

// PotentialReturn is the payout figure for a staked accumulator, rounded to
// two decimal places.
func PotentialReturn(totalOdds float64, stake decimal.Decimal) decimal.Decimal {
	return stake.Mul(decimal.NewFromFloat(totalOdds)).Round(2)
}
