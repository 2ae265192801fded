package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// SelectionStatus is the lifecycle state of a single-match prediction.
// A selection is created pending and settles to won/lost/void exactly once
// when the match result is known.
type SelectionStatus string

const (
	StatusPending SelectionStatus = "pending"
	StatusWon     SelectionStatus = "won"
	StatusLost    SelectionStatus = "lost"
	StatusVoid    SelectionStatus = "void"
)

// Selection is a single-match, single-market prediction with a model
// confidence (0-100) and the bookmaker price for the predicted outcome.
// Selections are written by the prediction back-office; this service only
// reads them.
type Selection struct {
	ID         string          `gorm:"primaryKey;size:64" json:"id"`
	MatchID    string          `gorm:"size:64;index" json:"match_id"`
	Sport      string          `gorm:"size:50;index" json:"sport"`
	League     string          `gorm:"size:100;index" json:"league"`
	HomeTeam   string          `gorm:"size:100" json:"home_team"`
	AwayTeam   string          `gorm:"size:100" json:"away_team"`
	StartTime  time.Time       `gorm:"index" json:"start_time"`
	Outcome    Outcome         `gorm:"embedded;embeddedPrefix:outcome_" json:"outcome"`
	Confidence float64         `json:"confidence"`
	Odds       float64         `json:"odds"`
	IsPremium  bool            `gorm:"index" json:"is_premium"`
	Status     SelectionStatus `gorm:"size:20;default:pending;index" json:"status"`
	SearchText string          `gorm:"size:350;index" json:"-"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName specifies the table name for Selection model
func (Selection) TableName() string {
	return "selections"
}

// BeforeSave keeps the lowercase search index in sync with the team and
// league names.
func (s *Selection) BeforeSave(tx *gorm.DB) error {
	s.SearchText = s.BuildSearchText()
	return nil
}

// BuildSearchText returns the lowercase haystack used for free-text search.
func (s *Selection) BuildSearchText() string {
	return strings.ToLower(s.HomeTeam + " " + s.AwayTeam + " " + s.League)
}

// DedupeKey identifies the match+market combination. Two selections with the
// same key never coexist within one accumulator.
func (s *Selection) DedupeKey() string {
	return s.MatchID + "|" + string(s.Outcome.Market)
}
