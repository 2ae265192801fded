package engine

import "errors"

// Engine errors are deterministic and input-driven; none are retryable.
var (
	// ErrInvalidCriteria flags malformed pool filter bounds.
	ErrInvalidCriteria = errors.New("invalid criteria")

	// ErrInvalidOdds flags a leg priced below the 1.01 floor.
	ErrInvalidOdds = errors.New("invalid odds")

	// ErrEmptyAccumulator flags a combination with fewer than two legs.
	ErrEmptyAccumulator = errors.New("empty accumulator")

	// ErrNotFound flags a referenced prediction or accumulator that does not
	// exist in the supplied pool.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied flags a ledger operation without an authenticated
	// user context.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvariantViolation flags a programming defect (e.g. a settled
	// selection reaching the combinator), kept distinct from input
	// validation errors.
	ErrInvariantViolation = errors.New("invariant violation")
)
