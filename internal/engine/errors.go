package engine

import "errors"

// Error kinds surfaced by the ranking engine. Callers match with errors.Is.
var (
	// ErrInvalidArgument reports a caller error: bad user id, boost
	// factor, or K. Surfaced before any model call; retry with corrected
	// input.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrModelUnavailable reports that an external model (rating
	// predictor or similarity scorer) failed to load or respond. Fatal at
	// startup, recoverable at query time once the model call is bounded
	// by a timeout.
	ErrModelUnavailable = errors.New("model unavailable")
)
