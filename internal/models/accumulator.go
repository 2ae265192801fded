package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskTier is a named confidence-adjustment policy applied when combining
// legs into an accumulator.
type RiskTier string

const (
	RiskSafe     RiskTier = "safe"
	RiskBalanced RiskTier = "balanced"
	RiskRisky    RiskTier = "risky"
	RiskHighRisk RiskTier = "high-risk"
	RiskUltra    RiskTier = "ultra"
)

// Valid reports whether the tier is one of the named policies.
func (t RiskTier) Valid() bool {
	switch t {
	case RiskSafe, RiskBalanced, RiskRisky, RiskHighRisk, RiskUltra:
		return true
	}
	return false
}

// SizeBucket groups accumulators by leg count for display.
type SizeBucket string

const (
	SizeSmall  SizeBucket = "small"  // 2-3 legs
	SizeMedium SizeBucket = "medium" // 4-6 legs
	SizeLarge  SizeBucket = "large"  // 7-10 legs
	SizeMega   SizeBucket = "mega"   // 11+ legs
)

// BucketForLegCount maps a leg count onto its size bucket.
func BucketForLegCount(n int) SizeBucket {
	switch {
	case n <= 3:
		return SizeSmall
	case n <= 6:
		return SizeMedium
	case n <= 10:
		return SizeLarge
	default:
		return SizeMega
	}
}

// Accumulator is a multi-leg combination whose payout multiplies all member
// odds. System-built accumulators are derived per request and never stored;
// rows only exist for user-placed custom accumulators carrying a stake.
type Accumulator struct {
	ID              string           `gorm:"primaryKey;size:64" json:"id"`
	UserID          *uint            `gorm:"index" json:"user_id,omitempty"`
	Name            string           `gorm:"size:200" json:"name"`
	Description     string           `gorm:"type:text" json:"description,omitempty"`
	Legs            []AccumulatorLeg `gorm:"foreignKey:AccumulatorID" json:"legs,omitempty"`
	TotalOdds       float64          `json:"total_odds"`
	Confidence      int              `json:"confidence"`
	RiskTier        RiskTier         `gorm:"size:20" json:"risk_tier"`
	SizeBucket      SizeBucket       `gorm:"size:20" json:"size_bucket"`
	MarketType      string           `gorm:"size:50" json:"market_type"`
	IsPremium       bool             `json:"is_premium"`
	IsRecommended   bool             `json:"is_recommended"`
	Stake           *decimal.Decimal `gorm:"type:decimal(12,2)" json:"stake,omitempty"`
	PotentialReturn *decimal.Decimal `gorm:"type:decimal(14,2)" json:"potential_return,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// TableName specifies the table name for Accumulator model
func (Accumulator) TableName() string {
	return "accumulators"
}

// AccumulatorLeg is one selection within a stored accumulator. Odds and
// confidence are denormalized at placement time so the legs stay stable when
// the underlying selection settles.
type AccumulatorLeg struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AccumulatorID string    `gorm:"size:64;index;not null" json:"accumulator_id"`
	SelectionID   string    `gorm:"size:64;index" json:"selection_id"`
	Position      int       `json:"position"`
	HomeTeam      string    `gorm:"size:100" json:"home_team"`
	AwayTeam      string    `gorm:"size:100" json:"away_team"`
	Outcome       Outcome   `gorm:"embedded;embeddedPrefix:outcome_" json:"outcome"`
	Odds          float64   `json:"odds"`
	Confidence    int       `json:"confidence"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name for AccumulatorLeg model
func (AccumulatorLeg) TableName() string {
	return "accumulator_legs"
}
