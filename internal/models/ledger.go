package models

import "time"

// LedgerEntry is one user's bookkeeping for one prediction: whether it is
// bookmarked ("saved") and whether it is staged into their personal
// accumulator. Both flags toggle; an entry with both flags off is pruned.
type LedgerEntry struct {
	UserID        uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PredictionID  string    `gorm:"primaryKey;size:64" json:"prediction_id"`
	Saved         bool      `json:"saved"`
	InAccumulator bool      `json:"in_accumulator"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}
