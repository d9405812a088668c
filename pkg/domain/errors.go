package domain

import "errors"

// Rejection errors. The interpreter signals these instead of mutating the
// session; the host may surface or ignore them. None are fatal.
var (
	// ErrKindMismatch is returned when an event does not match the current
	// step kind (e.g. free text submitted while options are expected).
	ErrKindMismatch = errors.New("event does not match current step kind")

	// ErrUnknownOption is returned when a submitted value is not present
	// among the current step's options or dropdown choices.
	ErrUnknownOption = errors.New("value not present on current step")

	// ErrEmptyInput is returned for empty or whitespace-only free text.
	ErrEmptyInput = errors.New("empty input")

	// ErrSessionDone is returned when an event arrives after the session
	// completed. The session is unchanged; the event is a no-op.
	ErrSessionDone = errors.New("session already completed")
)

// ErrCycleDetected is reported when an auto-advance pass revisits a step,
// which means the definition contains a bot message loop. The session is
// forced into StatusCompletedWithError rather than hanging.
var ErrCycleDetected = errors.New("cycle detected in bot message chain")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
