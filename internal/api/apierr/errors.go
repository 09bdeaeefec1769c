package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/battleship/internal/model"
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

// Error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidIndex         = "INVALID_INDEX"
	CodeUnknownStrategy      = "UNKNOWN_STRATEGY"
	CodeGameNotFound         = "GAME_NOT_FOUND"
	CodeInvalidPlacement     = "INVALID_PLACEMENT"
	CodeNotPlacementPhase    = "NOT_PLACEMENT_PHASE"
	CodePlacementInProgress  = "PLACEMENT_IN_PROGRESS"
	CodeNotYourTurn          = "NOT_YOUR_TURN"
	CodeNotOpponentTurn      = "NOT_OPPONENT_TURN"
	CodeAlreadyTargeted      = "ALREADY_TARGETED"
	CodeNoTargetsLeft        = "NO_TARGETS_LEFT"
	CodeGameOver             = "GAME_OVER"
	CodeFleetPlacementFailed = "FLEET_PLACEMENT_FAILED"
	CodeInternalError        = "INTERNAL_ERROR"
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

// Status returns the HTTP status an error maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}

	// Bad input
	case errors.Is(err, model.ErrInvalidIndex):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidIndex, "Cell must be an index 0-99 or x,y in 0-9"}}
	case errors.Is(err, model.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownStrategy, "Unknown opponent strategy"}}

	// Rejected moves
	case errors.Is(err, model.ErrInvalidPlacement):
		return &httpError{http.StatusConflict, APIError{CodeInvalidPlacement, "Ship would leave the board or overlap another ship"}}
	case errors.Is(err, model.ErrNotPlacementPhase):
		return &httpError{http.StatusConflict, APIError{CodeNotPlacementPhase, "All ships have already been placed"}}
	case errors.Is(err, model.ErrPlacementInProgress):
		return &httpError{http.StatusConflict, APIError{CodePlacementInProgress, "Place all ships before firing"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusConflict, APIError{CodeNotYourTurn, "Waiting for the computer to reply"}}
	case errors.Is(err, model.ErrNotOpponentTurn):
		return &httpError{http.StatusConflict, APIError{CodeNotOpponentTurn, "No computer reply is pending"}}
	case errors.Is(err, model.ErrAlreadyTargeted):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyTargeted, "Cell has already been fired at"}}
	case errors.Is(err, model.ErrNoTargetsLeft):
		return &httpError{http.StatusConflict, APIError{CodeNoTargetsLeft, "No cells left to fire at"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is over"}}

	case errors.Is(err, model.ErrFleetPlacementFailed):
		return &httpError{http.StatusInternalServerError, APIError{CodeFleetPlacementFailed, "Could not place the computer's fleet"}}

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
