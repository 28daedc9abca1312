package handler

import (
	"net/http"

	"github.com/nymstead/wayfarer/internal/activity"
	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/logger"
)

// StartVocationRequest represents the request to start a vocational session
type StartVocationRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Vocation string `json:"vocation" validate:"required,vocation"`
}

// StartTravelRequest represents the request to start travelling
type StartTravelRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	Destination string `json:"destination" validate:"required,max=100"`
}

// VocationInfo is one catalog entry in the vocation listing
type VocationInfo struct {
	Key             string `json:"key"`
	DisplayName     string `json:"display_name"`
	ResourceKey     string `json:"resource_key"`
	BaseUnitSeconds int    `json:"base_unit_seconds"`
	ToolSlot        string `json:"tool_slot"`
	UnitXP          int    `json:"unit_xp"`
}

// DestinationInfo is one catalog entry in the destination listing
type DestinationInfo struct {
	Key           string `json:"key"`
	DisplayName   string `json:"display_name"`
	TravelSeconds int    `json:"travel_seconds"`
	ArrivalXP     int    `json:"arrival_xp"`
}

// ActivityHandler handles activity lifecycle HTTP requests
type ActivityHandler struct {
	activitySvc activity.Service
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(activitySvc activity.Service) *ActivityHandler {
	return &ActivityHandler{activitySvc: activitySvc}
}

// HandleStartVocation starts a vocational session
// @Summary Start a vocational session
// @Description Begin timed production of the vocation's resource. Requires the matching tool to be equipped and no other running activity.
// @Tags activity
// @Accept json
// @Produce json
// @Param request body StartVocationRequest true "Start vocation request"
// @Success 201 {object} domain.ActivityStatus "Session started"
// @Failure 400 {object} ErrorResponse "Invalid request or tool not equipped"
// @Failure 409 {object} ErrorResponse "Another activity is running"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /activity/vocation/start [post]
func (h *ActivityHandler) HandleStartVocation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req StartVocationRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start vocation"); err != nil {
		return
	}

	status, err := h.activitySvc.StartVocation(r.Context(), req.UserID, domain.VocationKey(req.Vocation))
	if err != nil {
		respondServiceError(w, r, ErrMsgStartVocationFailed, err)
		return
	}

	log.Info("Vocation started", "user_id", req.UserID, "vocation", req.Vocation)
	respondJSON(w, http.StatusCreated, status)
}

// HandleStartTravel starts travel to a destination
// @Summary Start travelling
// @Description Begin timed travel to a destination. Mutually exclusive with vocational work.
// @Tags activity
// @Accept json
// @Produce json
// @Param request body StartTravelRequest true "Start travel request"
// @Success 201 {object} domain.ActivityStatus "Travel started"
// @Failure 400 {object} ErrorResponse "Invalid request or unknown destination"
// @Failure 409 {object} ErrorResponse "Another activity is running"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /activity/travel/start [post]
func (h *ActivityHandler) HandleStartTravel(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req StartTravelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Start travel"); err != nil {
		return
	}

	status, err := h.activitySvc.StartTravel(r.Context(), req.UserID, req.Destination)
	if err != nil {
		respondServiceError(w, r, ErrMsgStartTravelFailed, err)
		return
	}

	log.Info("Travel started", "user_id", req.UserID, "destination", req.Destination)
	respondJSON(w, http.StatusCreated, status)
}

// HandleStatus reports activity progress, claiming whatever has accrued
// @Summary Get activity status
// @Description Report progress on the running activity of the given kind. Claimable units are granted as a side effect; completed travel applies the arrival. Safe to call repeatedly.
// @Tags activity
// @Produce json
// @Param user_id query string true "User id"
// @Param kind query string true "Activity kind (vocation or travel)"
// @Success 200 {object} domain.ActivityStatus
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /activity/status [get]
func (h *ActivityHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	kind, ok := GetKindParam(r, w)
	if !ok {
		return
	}

	status, err := h.activitySvc.Status(r.Context(), userID, kind)
	if err != nil {
		respondServiceError(w, r, ErrMsgActivityStatusFail, err)
		return
	}

	respondJSON(w, http.StatusOK, status)
}

// HandleStop stops the running activity
// @Summary Stop an activity
// @Description Claim accrued yield and tear down the running activity of the given kind. Yield that does not fit the inventory is forfeited and reported.
// @Tags activity
// @Produce json
// @Param user_id query string true "User id"
// @Param kind query string true "Activity kind (vocation or travel)"
// @Success 200 {object} domain.ActivityStatus "Final status with session yield"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 404 {object} ErrorResponse "No running activity"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /activity/stop [post]
func (h *ActivityHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}
	kind, ok := GetKindParam(r, w)
	if !ok {
		return
	}

	status, err := h.activitySvc.Stop(r.Context(), userID, kind)
	if err != nil {
		respondServiceError(w, r, ErrMsgStopActivityFailed, err)
		return
	}

	log.Info("Activity stopped", "user_id", userID, "kind", kind)
	respondJSON(w, http.StatusOK, status)
}

// HandleGetVocations lists the vocation catalog
// @Summary List vocations
// @Tags activity
// @Produce json
// @Success 200 {array} VocationInfo
// @Router /activity/vocations [get]
func (h *ActivityHandler) HandleGetVocations(w http.ResponseWriter, r *http.Request) {
	specs := h.activitySvc.Vocations()
	infos := make([]VocationInfo, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, VocationInfo{
			Key:             string(spec.Key),
			DisplayName:     spec.DisplayName,
			ResourceKey:     spec.ResourceKey,
			BaseUnitSeconds: spec.BaseUnitSeconds,
			ToolSlot:        string(spec.ToolSlot),
			UnitXP:          spec.UnitXP,
		})
	}
	respondJSON(w, http.StatusOK, infos)
}

// HandleGetDestinations lists the travel destination catalog
// @Summary List destinations
// @Tags activity
// @Produce json
// @Success 200 {array} DestinationInfo
// @Router /activity/destinations [get]
func (h *ActivityHandler) HandleGetDestinations(w http.ResponseWriter, r *http.Request) {
	specs := h.activitySvc.Destinations()
	infos := make([]DestinationInfo, 0, len(specs))
	for _, spec := range specs {
		infos = append(infos, DestinationInfo{
			Key:           spec.Key,
			DisplayName:   spec.DisplayName,
			TravelSeconds: spec.TravelSeconds,
			ArrivalXP:     spec.ArrivalXP,
		})
	}
	respondJSON(w, http.StatusOK, infos)
}
