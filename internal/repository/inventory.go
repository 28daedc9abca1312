package repository

import (
	"context"

	"github.com/nymstead/wayfarer/internal/domain"
)

// Inventory handles inventory and equipment persistence
type Inventory interface {
	// GetInventory retrieves a user's inventory, or domain.ErrInventoryNotFound
	GetInventory(ctx context.Context, userID string) (*domain.Inventory, error)

	// CreateInventory initializes an empty inventory at the base capacity
	CreateInventory(ctx context.Context, userID string, baseCapacity int) (*domain.Inventory, error)

	// GetEquipment retrieves the stored equipment snapshot (may be empty)
	GetEquipment(ctx context.Context, userID string) (domain.EquipmentSnapshot, error)

	// Transaction support
	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines the interface for inventory transactions
type InventoryTx interface {
	Tx

	// GetInventoryForUpdate retrieves the inventory with a FOR UPDATE lock
	GetInventoryForUpdate(ctx context.Context, userID string) (*domain.Inventory, error)

	// UpdateInventory writes the slot array and capacities
	UpdateInventory(ctx context.Context, userID string, inventory domain.Inventory) error

	// SetEquipment replaces the stored equipment snapshot
	SetEquipment(ctx context.Context, userID string, equipment domain.EquipmentSnapshot) error
}
