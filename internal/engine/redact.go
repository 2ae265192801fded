package engine

import "prediction-engine/internal/models"

// GateSelection applies the viewer's tier and returns the API view,
// redacting outcome and scoring fields when the content is locked.
func GateSelection(s ScoredSelection, tier models.SubscriptionTier) models.SelectionView {
	view := models.SelectionView{
		ID:        s.ID,
		Sport:     s.Sport,
		League:    s.League,
		HomeTeam:  s.HomeTeam,
		AwayTeam:  s.AwayTeam,
		StartTime: s.StartTime,
		IsPremium: s.IsPremium,
	}

	if Gate(tier, s.IsPremium) == VisibilityLocked {
		view.Locked = true
		return view
	}

	outcome := s.Outcome
	confidence := s.Confidence
	odds := s.Odds
	implied := s.ImpliedProbability
	rating := s.ValueRating
	isValue := s.IsValueBet

	view.Outcome = &outcome
	view.OutcomeLabel = outcome.Label()
	view.Confidence = &confidence
	view.Odds = &odds
	view.ImpliedProbability = &implied
	view.ValueRating = &rating
	view.IsValueBet = &isValue
	return view
}

// GateAccumulator applies the viewer's tier to a built accumulator. A locked
// accumulator keeps its name, bucket and fixture list but loses markets,
// prices and scores.
func GateAccumulator(a models.Accumulator, tier models.SubscriptionTier) models.AccumulatorView {
	view := models.AccumulatorView{
		ID:            a.ID,
		Name:          a.Name,
		Description:   a.Description,
		SizeBucket:    a.SizeBucket,
		RiskTier:      a.RiskTier,
		IsPremium:     a.IsPremium,
		IsRecommended: a.IsRecommended,
	}

	locked := Gate(tier, a.IsPremium) == VisibilityLocked
	view.Locked = locked

	view.Legs = make([]models.AccumulatorLegView, len(a.Legs))
	for i, leg := range a.Legs {
		legView := models.AccumulatorLegView{
			SelectionID: leg.SelectionID,
			HomeTeam:    leg.HomeTeam,
			AwayTeam:    leg.AwayTeam,
		}
		if !locked {
			outcome := leg.Outcome
			odds := leg.Odds
			confidence := leg.Confidence
			legView.Outcome = &outcome
			legView.OutcomeLabel = outcome.Label()
			legView.Odds = &odds
			legView.Confidence = &confidence
		}
		view.Legs[i] = legView
	}

	if locked {
		return view
	}

	totalOdds := a.TotalOdds
	confidence := a.Confidence
	view.MarketType = a.MarketType
	view.TotalOdds = &totalOdds
	view.Confidence = &confidence
	view.Stake = a.Stake
	view.PotentialReturn = a.PotentialReturn
	return view
}
