package models

import "fmt"

// MarketKind identifies the betting market a prediction belongs to.
type MarketKind string

const (
	MarketMatchWinner MarketKind = "match_winner"
	MarketBTTS        MarketKind = "both_teams_to_score"
	MarketOverUnder   MarketKind = "over_under"
)

// Outcome is the predicted result for one market on one match.
// Pick is market-dependent: home/draw/away for match_winner, yes/no for
// both_teams_to_score, over/under for over_under. Line is only meaningful
// for over_under markets (e.g. 2.5 goals).
type Outcome struct {
	Market MarketKind `gorm:"size:50;index" json:"market"`
	Pick   string     `gorm:"size:20" json:"pick"`
	Line   float64    `json:"line,omitempty"`
}

// Label returns the display label for the outcome.
func (o Outcome) Label() string {
	switch o.Market {
	case MarketMatchWinner:
		switch o.Pick {
		case "home":
			return "Home Win"
		case "draw":
			return "Draw"
		case "away":
			return "Away Win"
		}
	case MarketBTTS:
		if o.Pick == "yes" {
			return "Both Teams To Score"
		}
		return "Both Teams Not To Score"
	case MarketOverUnder:
		if o.Pick == "over" {
			return fmt.Sprintf("Over %.1f Goals", o.Line)
		}
		return fmt.Sprintf("Under %.1f Goals", o.Line)
	}
	return string(o.Market) + "/" + o.Pick
}

// Valid reports whether the market/pick combination is one the engine knows.
func (o Outcome) Valid() bool {
	switch o.Market {
	case MarketMatchWinner:
		return o.Pick == "home" || o.Pick == "draw" || o.Pick == "away"
	case MarketBTTS:
		return o.Pick == "yes" || o.Pick == "no"
	case MarketOverUnder:
		return (o.Pick == "over" || o.Pick == "under") && o.Line > 0
	}
	return false
}
