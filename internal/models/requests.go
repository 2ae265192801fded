package models

import "github.com/shopspring/decimal"

// LoginRequest identifies a user by email. Account provisioning and billing
// live elsewhere; unknown emails get a free-tier account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname,omitempty"`
}

// CustomLeg is one leg of a user-built accumulator supplied from raw odds
// rather than from a model selection.
type CustomLeg struct {
	HomeTeam string  `json:"home_team" binding:"required"`
	AwayTeam string  `json:"away_team" binding:"required"`
	Outcome  Outcome `json:"outcome"`
	Odds     float64 `json:"odds" binding:"required"`
}

// CombineRequest asks the combinator to price a custom accumulator. Legs may
// reference model selections by id, be supplied raw, or both.
type CombineRequest struct {
	SelectionIDs []string         `json:"selection_ids,omitempty"`
	Legs         []CustomLeg      `json:"legs,omitempty"`
	RiskTier     RiskTier         `json:"risk_tier" binding:"required"`
	Mode         string           `json:"mode,omitempty"`
	Stake        *decimal.Decimal `json:"stake,omitempty"`
	Name         string           `json:"name,omitempty"`
	Save         bool             `json:"save,omitempty"`
}
