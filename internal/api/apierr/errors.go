package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/skyjoscore/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodePlayerCountRange    = "PLAYER_COUNT_OUT_OF_RANGE"
	CodeEmptyPlayerName     = "EMPTY_PLAYER_NAME"
	CodeDuplicatePlayerName = "DUPLICATE_PLAYER_NAME"
	CodeInvalidRoundCount   = "INVALID_ROUND_COUNT"
	CodeNotConfigured       = "SESSION_NOT_CONFIGURED"
	CodeSessionCompleted    = "SESSION_COMPLETED"
	CodeMissingPlayerScore  = "MISSING_PLAYER_SCORE"
	CodeUnknownPlayerScore  = "UNKNOWN_PLAYER_SCORE"
	CodeInvalidSnapshot     = "INVALID_SNAPSHOT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrPlayerCountOutOfRange):
		return &httpError{http.StatusBadRequest, APIError{CodePlayerCountRange, "A game needs between 2 and 8 players"}}
	case errors.Is(err, model.ErrEmptyPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeEmptyPlayerName, "Player names must not be empty"}}
	case errors.Is(err, model.ErrDuplicatePlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeDuplicatePlayerName, "Player names must be unique"}}
	case errors.Is(err, model.ErrInvalidRoundCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoundCount, "Round count must be at least 1"}}
	case errors.Is(err, model.ErrSessionNotConfigured):
		return &httpError{http.StatusConflict, APIError{CodeNotConfigured, "Configure the game before submitting scores"}}
	case errors.Is(err, model.ErrSessionCompleted):
		return &httpError{http.StatusConflict, APIError{CodeSessionCompleted, "All rounds have already been recorded"}}
	case errors.Is(err, model.ErrMissingPlayerScore):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingPlayerScore, "Every player needs a score for the round"}}
	case errors.Is(err, model.ErrUnknownPlayerScore):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownPlayerScore, "Score submitted for a player not in the game"}}
	case errors.Is(err, model.ErrInvalidSnapshot):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSnapshot, "Snapshot could not be decoded"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
