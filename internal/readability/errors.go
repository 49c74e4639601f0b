package readability

import "errors"

var (
	// ErrInput reports text that could not be read or decoded.
	ErrInput = errors.New("unreadable input")
	// ErrDegenerateInput reports text with no words or no sentences.
	ErrDegenerateInput = errors.New("text has no words or sentences")
	// ErrResourceUnavailable reports missing linguistic reference data.
	ErrResourceUnavailable = errors.New("linguistic resource unavailable")
)
