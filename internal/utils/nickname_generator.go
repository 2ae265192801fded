package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var adjectives = []string{
	"Lucky", "Sharp", "Fearless", "Clinical", "Composed",
	"Streaky", "Patient", "Daring", "Golden", "Steady",
	"Savvy", "Bold", "Quiet", "Ruthless", "Cool",
}

var nouns = []string{
	"Punter", "Striker", "Keeper", "Tipster", "Winger",
	"Gaffer", "Maestro", "Poacher", "Sweeper", "Anchor",
	"Playmaker", "Finisher", "Scout", "Captain", "Baller",
}

// GenerateNickname produces a display handle like "Sharp_Tipster_0427" for
// users who sign in without choosing one.
func GenerateNickname() (string, error) {
	adjIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(adjectives))))
	if err != nil {
		return "", fmt.Errorf("failed to pick adjective: %w", err)
	}

	nounIdx, err := rand.Int(rand.Reader, big.NewInt(int64(len(nouns))))
	if err != nil {
		return "", fmt.Errorf("failed to pick noun: %w", err)
	}

	suffix, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("failed to pick suffix: %w", err)
	}

	return fmt.Sprintf("%s_%s_%04d",
		adjectives[adjIdx.Int64()],
		nouns[nounIdx.Int64()],
		suffix.Int64(),
	), nil
}
