package handler

import (
	"net/http"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/inventory"
	"github.com/nymstead/wayfarer/internal/logger"
)

// EquipmentChangeRequest represents a full equipment snapshot to apply
type EquipmentChangeRequest struct {
	UserID    string                  `json:"user_id" validate:"required"`
	Equipment map[string]EquippedItem `json:"equipment" validate:"required,dive"`
}

// EquippedItem is one slot entry in an equipment change request
type EquippedItem struct {
	ItemKey string `json:"item_key" validate:"required,max=100"`
	Rarity  string `json:"rarity,omitempty"`
}

// InventoryHandler handles inventory and equipment HTTP requests
type InventoryHandler struct {
	inventorySvc inventory.Service
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventorySvc inventory.Service) *InventoryHandler {
	return &InventoryHandler{inventorySvc: inventorySvc}
}

// HandleGetInventory retrieves a user's inventory
// @Summary Get inventory
// @Description Returns the slot array and capacities. An inventory is created at the base capacity on first read.
// @Tags inventory
// @Produce json
// @Param user_id query string true "User id"
// @Success 200 {object} domain.Inventory
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /inventory [get]
func (h *InventoryHandler) HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	inv, err := h.inventorySvc.GetInventory(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetInventoryFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, inv)
}

// HandleGetEquipment retrieves the stored equipment snapshot
// @Summary Get equipment
// @Tags inventory
// @Produce json
// @Param user_id query string true "User id"
// @Success 200 {object} domain.EquipmentSnapshot
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /equipment [get]
func (h *InventoryHandler) HandleGetEquipment(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetQueryParam(r, w, "user_id")
	if !ok {
		return
	}

	equipment, err := h.inventorySvc.GetEquipment(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetEquipmentFailed, err)
		return
	}

	respondJSON(w, http.StatusOK, equipment)
}

// HandleApplyEquipment applies an equipment snapshot and reconciles capacity
// @Summary Apply equipment change
// @Description Store a new equipment loadout and reconcile the inventory to the capacity it implies. On a shrink, stacks are relocated into free slots; stacks that cannot be relocated are reported lost.
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body EquipmentChangeRequest true "Equipment change request"
// @Success 200 {object} domain.CapacityChangeResult
// @Failure 400 {object} ErrorResponse "Invalid request or item does not fit the slot"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /equipment [post]
func (h *InventoryHandler) HandleApplyEquipment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req EquipmentChangeRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Apply equipment"); err != nil {
		return
	}

	snapshot := make(domain.EquipmentSnapshot, len(req.Equipment))
	for slot, entry := range req.Equipment {
		snapshot[domain.EquipSlot(slot)] = domain.EquippedItem{
			ItemKey: entry.ItemKey,
			Rarity:  domain.RarityLevel(entry.Rarity),
		}
	}

	result, err := h.inventorySvc.ApplyEquipmentChange(r.Context(), req.UserID, snapshot)
	if err != nil {
		respondServiceError(w, r, ErrMsgEquipmentApplyFailed, err)
		return
	}

	log.Info("Equipment change applied",
		"user_id", req.UserID,
		"old_capacity", result.OldCapacity,
		"new_capacity", result.NewCapacity,
		"lost_stacks", len(result.Lost))

	respondJSON(w, http.StatusOK, result)
}
