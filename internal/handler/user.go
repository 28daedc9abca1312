package handler

import (
	"net/http"

	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/user"
)

// RegisterUserRequest represents the request to register a user
type RegisterUserRequest struct {
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username" validate:"required,max=100,excludesall=<>"`
}

// TrackSummary is one experience track in the tracks listing
type TrackSummary struct {
	Track      string `json:"track"`
	Experience string `json:"experience"`
	Level      int    `json:"level"`
}

// UserHandler handles user account HTTP requests
type UserHandler struct {
	userSvc user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc user.Service) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// HandleRegister registers a user account
// @Summary Register a user
// @Description Create a user account. Re-registering an existing id returns the existing account.
// @Tags user
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "Register request"
// @Success 201 {object} domain.User
// @Failure 400 {object} ErrorResponse "Invalid request"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /user/register [post]
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterUserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Register user"); err != nil {
		return
	}

	u, err := h.userSvc.Register(r.Context(), req.UserID, req.Username)
	if err != nil {
		respondServiceError(w, r, ErrMsgRegisterUserFailed, err)
		return
	}

	log.Info("User registered", "user_id", u.ID, "username", u.Username)
	respondJSON(w, http.StatusCreated, u)
}

// HandleGetUser retrieves a user account
// @Summary Get a user
// @Tags user
// @Produce json
// @Param user_id query string true "User id"
// @Success 200 {object} domain.User
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /user [get]
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	u, err := h.userSvc.GetUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetUserFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, u)
}

// HandleGetTracks lists a user's experience tracks
// @Summary List experience tracks
// @Description Returns every experience ledger the user has touched, with arbitrary precision totals as decimal strings.
// @Tags user
// @Produce json
// @Param user_id query string true "User id"
// @Success 200 {array} TrackSummary
// @Failure 404 {object} ErrorResponse "User not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /user/tracks [get]
func (h *UserHandler) HandleGetTracks(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	ledgers, err := h.userSvc.GetTracks(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetTracksFailed, err)
		return
	}

	summaries := make([]TrackSummary, 0, len(ledgers))
	for _, ledger := range ledgers {
		summaries = append(summaries, TrackSummary{
			Track:      string(ledger.Track),
			Experience: ledger.Experience.String(),
			Level:      ledger.Level,
		})
	}

	respondJSON(w, http.StatusOK, summaries)
}
