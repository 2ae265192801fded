package engine

import "prediction-engine/internal/models"

// Visibility is the gate's decision for one piece of content.
type Visibility string

const (
	// VisibilityVisible means the full payload may be shown.
	VisibilityVisible Visibility = "visible"

	// VisibilityLocked means only neutral metadata (teams, league, kick-off)
	// may be shown; outcome, odds and confidence are withheld.
	VisibilityLocked Visibility = "locked"
)

// Gate decides visibility from the viewer's tier and the content's premium
// flag alone. It holds no state; identical inputs always yield the same
// decision.
func Gate(tier models.SubscriptionTier, isPremium bool) Visibility {
	if isPremium && !tier.IsPaid() {
		return VisibilityLocked
	}
	return VisibilityVisible
}
