package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/logger"
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

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first; headers are already sent when this fails
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// user-facing error
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	log.Error(opName+" failed", "error", err)

	status, userMsg := mapServiceErrorToUserMessage(err)
	respondError(w, status, userMsg)
}

// User-facing messages for domain errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgUserNotFoundError        = "User not found"
	ErrMsgNoRunningActivityError   = "No running activity of that kind"
	ErrMsgConflictingActivityError = "Another activity is already running"
	ErrMsgToolRequiredError        = "The required tool is not equipped"
	ErrMsgDestinationNotFoundError = "Unknown destination"
	ErrMsgVocationNotFoundError    = "Unknown vocation"
	ErrMsgItemNotFoundError        = "Item not found"
	ErrMsgTrackNotFoundError       = "Unknown experience track"
	ErrMsgInvalidCapacityError     = "Capacity must be positive"
	ErrMsgInvalidInputError        = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes and
// messages a caller can act on.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrActivityNotFound):
		return http.StatusNotFound, ErrMsgNoRunningActivityError
	case errors.Is(err, domain.ErrConflictingActivity):
		return http.StatusConflict, ErrMsgConflictingActivityError
	case errors.Is(err, domain.ErrToolRequired):
		return http.StatusBadRequest, ErrMsgToolRequiredError
	case errors.Is(err, domain.ErrVocationNotFound):
		return http.StatusBadRequest, ErrMsgVocationNotFoundError
	case errors.Is(err, domain.ErrDestinationNotFound):
		return http.StatusBadRequest, ErrMsgDestinationNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusBadRequest, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrTrackNotFound):
		return http.StatusBadRequest, ErrMsgTrackNotFoundError
	case errors.Is(err, domain.ErrInvalidCapacity):
		return http.StatusBadRequest, ErrMsgInvalidCapacityError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	// Walk wrapped errors so fmt.Errorf chains still map
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceErrorToUserMessage(unwrapped)
	}

	// Short free-form messages pass through; anything else gets the generic
	// message so internals stay internal
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, errMsg
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
