package model

import "errors"

// Common errors used across the application
var (
	// Session lookup errors
	ErrSessionNotFound = errors.New("session not found")

	// Configuration validation errors
	ErrPlayerCountOutOfRange = errors.New("player count must be between 2 and 8")
	ErrEmptyPlayerName       = errors.New("player name must not be empty")
	ErrDuplicatePlayerName   = errors.New("player names must be unique")
	ErrInvalidRoundCount     = errors.New("round count must be at least 1")

	// Round submission validation errors
	ErrSessionNotConfigured = errors.New("session has not been configured")
	ErrSessionCompleted     = errors.New("all rounds have already been recorded")
	ErrMissingPlayerScore   = errors.New("a score is required for every player")
	ErrUnknownPlayerScore   = errors.New("score submitted for a player not in the session")

	// Share snapshot errors
	ErrInvalidSnapshot = errors.New("invalid session snapshot")
)

// validationErrors is the set of errors raised when an operation's
// preconditions are violated. The operation leaves the session unchanged.
var validationErrors = []error{
	ErrPlayerCountOutOfRange,
	ErrEmptyPlayerName,
	ErrDuplicatePlayerName,
	ErrInvalidRoundCount,
	ErrSessionNotConfigured,
	ErrSessionCompleted,
	ErrMissingPlayerScore,
	ErrUnknownPlayerScore,
}

// IsValidation returns true if err is one of the recoverable validation
// errors, as opposed to a storage failure or missing session
func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
