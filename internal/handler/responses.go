package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/stackgarden/stackgarden/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Log the error - we can't write to response at this point since headers are sent
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	// Write the buffer to the response
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	// Timer messages
	ErrMsgSessionActiveError   = "A focus session is already running"
	ErrMsgNoActiveSessionError = "No focus session is running"
	ErrMsgInvalidDurationError = "Session duration must be positive"

	// Shop messages
	ErrMsgItemNotFoundError     = "Item not found"
	ErrMsgAlreadyOwnedError     = "You already own that item"
	ErrMsgNotEnoughCreditsError = "Not enough credits"
	ErrMsgPrerequisitesError    = "Unlock the prerequisite items first"

	// Canvas messages
	ErrMsgNotOwnedError          = "You don't own that item"
	ErrMsgComponentNotFoundError = "Component not found"
	ErrMsgInvalidPlacementError  = "That spot is not available"
	ErrMsgCanvasFullError        = "No free space on the canvas"
	ErrMsgDuplicateEdgeError     = "Those components are already connected"
	ErrMsgConnectionRejectedErr  = "That connection is not permitted"
	ErrMsgMaxTierReachedError    = "Component is already at max tier"

	// Snapshot messages
	ErrMsgInvalidSnapshotError = "Snapshot file is invalid"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrTimerAlreadyActive):
		return http.StatusConflict, ErrMsgSessionActiveError
	case errors.Is(err, domain.ErrNoActiveTimer):
		return http.StatusConflict, ErrMsgNoActiveSessionError
	case errors.Is(err, domain.ErrInvalidDuration):
		return http.StatusBadRequest, ErrMsgInvalidDurationError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrAlreadyOwned):
		return http.StatusBadRequest, ErrMsgAlreadyOwnedError
	case errors.Is(err, domain.ErrInsufficientCredits):
		return http.StatusBadRequest, ErrMsgNotEnoughCreditsError
	case errors.Is(err, domain.ErrPrerequisitesNotMet):
		return http.StatusBadRequest, ErrMsgPrerequisitesError
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusBadRequest, ErrMsgNotOwnedError
	case errors.Is(err, domain.ErrComponentNotFound):
		return http.StatusNotFound, ErrMsgComponentNotFoundError
	case errors.Is(err, domain.ErrInvalidPlacement):
		return http.StatusBadRequest, ErrMsgInvalidPlacementError
	case errors.Is(err, domain.ErrCanvasFull):
		return http.StatusBadRequest, ErrMsgCanvasFullError
	case errors.Is(err, domain.ErrDuplicateEdge):
		return http.StatusBadRequest, ErrMsgDuplicateEdgeError
	case errors.Is(err, domain.ErrConnectionRejected):
		return http.StatusBadRequest, ErrMsgConnectionRejectedErr
	case errors.Is(err, domain.ErrMaxTierReached):
		return http.StatusBadRequest, ErrMsgMaxTierReachedError
	case errors.Is(err, domain.ErrInvalidSnapshot):
		return http.StatusBadRequest, ErrMsgInvalidSnapshotError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	}

	// Short unmapped errors pass through; anything long stays generic so
	// internals never leak into responses.
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
