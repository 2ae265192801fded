package engine

import (
	"fmt"
	"strings"
	"time"

	"prediction-engine/internal/models"
)

// PoolCriteria narrows the candidate pool for accumulator construction.
// Zero and nil values mean "no constraint"; pending status is always enforced
// and is not configurable.
type PoolCriteria struct {
	Sport         string     `form:"sport" json:"sport,omitempty"`
	League        string     `form:"league" json:"league,omitempty"`
	MinConfidence float64    `form:"min_confidence" json:"min_confidence,omitempty"`
	MaxConfidence *float64   `form:"max_confidence" json:"max_confidence,omitempty"`
	From          *time.Time `form:"from" json:"from,omitempty"`
	To            *time.Time `form:"to" json:"to,omitempty"`
	Search        string     `form:"search" json:"search,omitempty"`
}

// Validate rejects impossible bounds before any filtering runs.
func (c PoolCriteria) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 100 {
		return fmt.Errorf("%w: min_confidence %.1f out of [0,100]", ErrInvalidCriteria, c.MinConfidence)
	}
	if c.MaxConfidence != nil {
		if *c.MaxConfidence < 0 || *c.MaxConfidence > 100 {
			return fmt.Errorf("%w: max_confidence %.1f out of [0,100]", ErrInvalidCriteria, *c.MaxConfidence)
		}
		if c.MinConfidence > *c.MaxConfidence {
			return fmt.Errorf("%w: min_confidence %.1f > max_confidence %.1f", ErrInvalidCriteria, c.MinConfidence, *c.MaxConfidence)
		}
	}
	if c.From != nil && c.To != nil && c.From.After(*c.To) {
		return fmt.Errorf("%w: from is after to", ErrInvalidCriteria)
	}
	return nil
}

// FilterPool returns the candidates eligible under the criteria. Settled and
// void selections never pass. The result preserves input order; an empty
// result is not an error.
func FilterPool(candidates []models.Selection, criteria PoolCriteria) ([]models.Selection, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(criteria.Search))

	eligible := make([]models.Selection, 0, len(candidates))
	for _, s := range candidates {
		if s.Status != models.StatusPending {
			continue
		}
		if criteria.Sport != "" && s.Sport != criteria.Sport {
			continue
		}
		if criteria.League != "" && s.League != criteria.League {
			continue
		}
		if s.Confidence < criteria.MinConfidence {
			continue
		}
		if criteria.MaxConfidence != nil && s.Confidence > *criteria.MaxConfidence {
			continue
		}
		if criteria.From != nil && s.StartTime.Before(*criteria.From) {
			continue
		}
		if criteria.To != nil && s.StartTime.After(*criteria.To) {
			continue
		}
		if search != "" {
			haystack := s.SearchText
			if haystack == "" {
				haystack = s.BuildSearchText()
			}
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		eligible = append(eligible, s)
	}

	return eligible, nil
}
