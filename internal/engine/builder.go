package engine

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"

	"prediction-engine/internal/models"
)

// Archetype describes one named accumulator template: which legs qualify,
// how many to take, and how the result is scored and labeled.
type Archetype struct {
	Key           string              `json:"key"`
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	MarketLabel   string              `json:"market_label"`
	Markets       []models.MarketKind `json:"markets,omitempty"` // empty = any market
	Picks         []string            `json:"picks,omitempty"`   // empty = any pick
	MaxLegs       int                 `json:"max_legs"`
	MinConfidence float64             `json:"min_confidence"`
	MinOdds       float64             `json:"min_odds,omitempty"`
	RequireValue  bool                `json:"require_value,omitempty"`
	RiskTier      models.RiskTier     `json:"risk_tier"`
	Recommended   bool                `json:"recommended"`
}

// matches reports whether a scored selection qualifies as a leg.
func (a Archetype) matches(s ScoredSelection) bool {
	if s.Confidence < a.MinConfidence {
		return false
	}
	if a.MinOdds > 0 && s.Odds < a.MinOdds {
		return false
	}
	if a.RequireValue && !s.IsValueBet {
		return false
	}
	if len(a.Markets) > 0 {
		found := false
		for _, m := range a.Markets {
			if s.Outcome.Market == m {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(a.Picks) > 0 {
		found := false
		for _, p := range a.Picks {
			if s.Outcome.Pick == p {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// BuilderConfig is the per-request builder configuration. Archetypes are
// passed in explicitly so hosts and tests can substitute their own lineups.
type BuilderConfig struct {
	Archetypes []Archetype `json:"archetypes"`
}

// DefaultArchetypes is the curated production lineup. The recommended flag
// is a static allowlist, not a computed signal.
func DefaultArchetypes() []Archetype {
	return []Archetype{
		{
			Key:           "home-win-special",
			Name:          "Home-Win Special",
			Description:   "Strong favourites winning on home turf.",
			MarketLabel:   "Match Winner",
			Markets:       []models.MarketKind{models.MarketMatchWinner},
			Picks:         []string{"home"},
			MaxLegs:       4,
			MinConfidence: 70,
			RiskTier:      models.RiskSafe,
			Recommended:   true,
		},
		{
			Key:           "value-finder",
			Name:          "Value Finder",
			Description:   "Picks where the model price beats the bookmaker.",
			MarketLabel:   "Value Picks",
			MaxLegs:       3,
			MinConfidence: 55,
			RequireValue:  true,
			RiskTier:      models.RiskBalanced,
			Recommended:   true,
		},
		{
			Key:           "upset-special",
			Name:          "Upset Special",
			Description:   "Longer-priced outcomes the model still backs.",
			MarketLabel:   "Match Winner",
			Markets:       []models.MarketKind{models.MarketMatchWinner},
			MaxLegs:       3,
			MinConfidence: 40,
			MinOdds:       2.5,
			RiskTier:      models.RiskRisky,
		},
		{
			Key:           "goals-galore",
			Name:          "Goals Galore",
			Description:   "Overs across high-scoring fixtures.",
			MarketLabel:   "Over/Under",
			Markets:       []models.MarketKind{models.MarketOverUnder},
			Picks:         []string{"over"},
			MaxLegs:       4,
			MinConfidence: 65,
			RiskTier:      models.RiskBalanced,
			Recommended:   true,
		},
		{
			Key:           "goals-fiesta",
			Name:          "Goals Fiesta",
			Description:   "A bigger, bolder goals card.",
			MarketLabel:   "Over/Under",
			Markets:       []models.MarketKind{models.MarketOverUnder},
			Picks:         []string{"over"},
			MaxLegs:       6,
			MinConfidence: 55,
			RiskTier:      models.RiskHighRisk,
		},
		{
			Key:           "daily-double",
			Name:          "Daily Double",
			Description:   "The two most confident picks of the day.",
			MarketLabel:   "Best Picks",
			MaxLegs:       2,
			MinConfidence: 75,
			RiskTier:      models.RiskSafe,
			Recommended:   true,
		},
		{
			Key:           "premium-picks",
			Name:          "Premium Picks",
			Description:   "The highest-conviction picks on the card.",
			MarketLabel:   "Best Picks",
			MaxLegs:       3,
			MinConfidence: 85,
			RiskTier:      models.RiskSafe,
			Recommended:   true,
		},
		{
			Key:           "treble",
			Name:          "Treble",
			Description:   "Three high-confidence picks combined.",
			MarketLabel:   "Best Picks",
			MaxLegs:       3,
			MinConfidence: 75,
			RiskTier:      models.RiskBalanced,
		},
		{
			Key:           "four-fold",
			Name:          "Four-Fold Accumulator",
			Description:   "Four picks for a bigger combined price.",
			MarketLabel:   "Best Picks",
			MaxLegs:       4,
			MinConfidence: 70,
			RiskTier:      models.RiskRisky,
		},
		{
			Key:           "five-fold",
			Name:          "Five-Fold Accumulator",
			Description:   "Five picks, high risk, high reward.",
			MarketLabel:   "Best Picks",
			MaxLegs:       5,
			MinConfidence: 70,
			RiskTier:      models.RiskHighRisk,
		},
		{
			Key:           "high-odds-hunter",
			Name:          "High Odds Hunter",
			Description:   "Lower confidence, far bigger potential returns.",
			MarketLabel:   "Long Shots",
			MaxLegs:       4,
			MinConfidence: 65,
			MinOdds:       1.8,
			RiskTier:      models.RiskUltra,
		},
	}
}

// BuildAccumulators assembles one accumulator per archetype that can field
// at least two qualifying legs. Legs are taken in descending confidence
// order; identifiers derive from the member ids so a re-run over the same
// pool emits byte-identical output.
func BuildAccumulators(pool []ScoredSelection, cfg BuilderConfig) []models.Accumulator {
	// Deterministic candidate order regardless of input order.
	candidates := make([]ScoredSelection, len(pool))
	copy(candidates, pool)
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Confidence != candidates[j].Confidence {
			return candidates[i].Confidence > candidates[j].Confidence
		}
		if !candidates[i].StartTime.Equal(candidates[j].StartTime) {
			return candidates[i].StartTime.Before(candidates[j].StartTime)
		}
		return candidates[i].ID < candidates[j].ID
	})

	accumulators := make([]models.Accumulator, 0, len(cfg.Archetypes))
	for _, arch := range cfg.Archetypes {
		legs := pickLegs(candidates, arch)
		if len(legs) < 2 {
			continue
		}

		selections := make([]models.Selection, len(legs))
		for i, leg := range legs {
			selections[i] = leg.Selection
		}

		combo, err := Combine(selections, arch.RiskTier, CombineOptions{})
		if err != nil {
			// Legs already passed admission checks; nothing sane to emit.
			continue
		}

		accumulators = append(accumulators, models.Accumulator{
			ID:            accumulatorID(arch.Key, legs),
			Name:          arch.Name,
			Description:   arch.Description,
			Legs:          toLegs(legs),
			TotalOdds:     combo.TotalOdds,
			Confidence:    combo.Confidence,
			RiskTier:      arch.RiskTier,
			SizeBucket:    models.BucketForLegCount(len(legs)),
			MarketType:    marketTypeLabel(arch, legs),
			IsPremium:     anyPremium(legs),
			IsRecommended: arch.Recommended,
		})
	}

	return accumulators
}

// pickLegs takes qualifying legs in confidence order, at most one per
// match+market combination.
func pickLegs(candidates []ScoredSelection, arch Archetype) []ScoredSelection {
	legs := make([]ScoredSelection, 0, arch.MaxLegs)
	seen := make(map[string]struct{}, arch.MaxLegs)
	for _, c := range candidates {
		if len(legs) == arch.MaxLegs {
			break
		}
		if !arch.matches(c) {
			continue
		}
		key := c.DedupeKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		legs = append(legs, c)
	}
	return legs
}

func toLegs(legs []ScoredSelection) []models.AccumulatorLeg {
	out := make([]models.AccumulatorLeg, len(legs))
	for i, leg := range legs {
		out[i] = models.AccumulatorLeg{
			SelectionID: leg.ID,
			Position:    i + 1,
			HomeTeam:    leg.HomeTeam,
			AwayTeam:    leg.AwayTeam,
			Outcome:     leg.Outcome,
			Odds:        leg.Odds,
			Confidence:  int(leg.Confidence),
		}
	}
	return out
}

// marketTypeLabel is the archetype's canonical label when all legs share a
// market family, "mixed" otherwise.
func marketTypeLabel(arch Archetype, legs []ScoredSelection) string {
	family := legs[0].Outcome.Market
	for _, leg := range legs[1:] {
		if leg.Outcome.Market != family {
			return "mixed"
		}
	}
	return arch.MarketLabel
}

func anyPremium(legs []ScoredSelection) bool {
	for _, leg := range legs {
		if leg.IsPremium {
			return true
		}
	}
	return false
}

// accumulatorID derives a short stable identifier from the archetype and the
// ordered member ids.
func accumulatorID(archetypeKey string, legs []ScoredSelection) string {
	ids := make([]string, len(legs))
	for i, leg := range legs {
		ids[i] = leg.ID
	}
	sum := md5.Sum([]byte(archetypeKey + ":" + strings.Join(ids, ",")))
	return hex.EncodeToString(sum[:])[:8]
}
