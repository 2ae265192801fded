package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SelectionView is the gated API shape of a scored selection. For locked
// premium content only the neutral match metadata is populated; outcome,
// prices and scores are omitted from the payload entirely.
type SelectionView struct {
	ID        string    `json:"id"`
	Sport     string    `json:"sport"`
	League    string    `json:"league"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	StartTime time.Time `json:"start_time"`
	IsPremium bool      `json:"is_premium"`
	Locked    bool      `json:"locked"`

	Outcome            *Outcome `json:"outcome,omitempty"`
	OutcomeLabel       string   `json:"outcome_label,omitempty"`
	Confidence         *float64 `json:"confidence,omitempty"`
	Odds               *float64 `json:"odds,omitempty"`
	ImpliedProbability *float64 `json:"implied_probability,omitempty"`
	ValueRating        *float64 `json:"value_rating,omitempty"`
	IsValueBet         *bool    `json:"is_value_bet,omitempty"`
}

// AccumulatorLegView is the gated shape of one leg.
type AccumulatorLegView struct {
	SelectionID string `json:"selection_id"`
	HomeTeam    string `json:"home_team"`
	AwayTeam    string `json:"away_team"`

	Outcome      *Outcome `json:"outcome,omitempty"`
	OutcomeLabel string   `json:"outcome_label,omitempty"`
	Odds         *float64 `json:"odds,omitempty"`
	Confidence   *int     `json:"confidence,omitempty"`
}

// AccumulatorView is the gated API shape of an accumulator.
type AccumulatorView struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description,omitempty"`
	SizeBucket    SizeBucket           `json:"size_bucket"`
	RiskTier      RiskTier             `json:"risk_tier"`
	IsPremium     bool                 `json:"is_premium"`
	IsRecommended bool                 `json:"is_recommended"`
	Locked        bool                 `json:"locked"`
	Legs          []AccumulatorLegView `json:"legs"`

	MarketType      string           `json:"market_type,omitempty"`
	TotalOdds       *float64         `json:"total_odds,omitempty"`
	Confidence      *int             `json:"confidence,omitempty"`
	Stake           *decimal.Decimal `json:"stake,omitempty"`
	PotentialReturn *decimal.Decimal `json:"potential_return,omitempty"`
}
