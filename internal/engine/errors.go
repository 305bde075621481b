package engine

import "errors"

var (
	// ErrInsufficientData means the candle series is too short for the
	// indicator windows; the symbol is skipped for this cycle.
	ErrInsufficientData = errors.New("insufficient candle data")

	// ErrNoOpenPosition means a close was requested for a flat symbol.
	ErrNoOpenPosition = errors.New("no open position")
)
