package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/repository"
)

func getInventory(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.Inventory, error) {
	query := `
		SELECT slots, base_capacity, bonus_capacity, EXTRACT(EPOCH FROM updated_at)::bigint
		FROM inventories
		WHERE user_id = $1
	`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var slotsJSON []byte
	var inv domain.Inventory
	err := q.QueryRow(ctx, query, userID).Scan(&slotsJSON, &inv.BaseCapacity, &inv.BonusCapacity, &inv.LastUpdate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	slots, err := unmarshalSlots(slotsJSON)
	if err != nil {
		return nil, err
	}
	inv.Slots = slots
	return &inv, nil
}

func updateInventory(ctx context.Context, q querier, userID string, inv domain.Inventory) error {
	slotsJSON, err := marshalSlots(inv.Slots)
	if err != nil {
		return err
	}

	query := `
		UPDATE inventories
		SET slots = $1, base_capacity = $2, bonus_capacity = $3, updated_at = NOW()
		WHERE user_id = $4
	`
	tag, err := q.Exec(ctx, query, slotsJSON, inv.BaseCapacity, inv.BonusCapacity, userID)
	if err != nil {
		return fmt.Errorf("failed to update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}

// InventoryRepository implements repository.Inventory for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) repository.Inventory {
	return &InventoryRepository{db: db}
}

// GetInventory retrieves a user's inventory
func (r *InventoryRepository) GetInventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	return getInventory(ctx, r.db, userID, false)
}

// CreateInventory initializes an empty inventory at the base capacity
func (r *InventoryRepository) CreateInventory(ctx context.Context, userID string, baseCapacity int) (*domain.Inventory, error) {
	if baseCapacity <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidCapacity, baseCapacity)
	}

	slots := make([]*domain.Stack, baseCapacity)
	slotsJSON, err := marshalSlots(slots)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO inventories (user_id, slots, equipment, base_capacity, bonus_capacity, updated_at)
		VALUES ($1, $2, '{}'::jsonb, $3, 0, NOW())
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, slotsJSON, baseCapacity); err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}

	return getInventory(ctx, r.db, userID, false)
}

// GetEquipment retrieves the stored equipment snapshot
func (r *InventoryRepository) GetEquipment(ctx context.Context, userID string) (domain.EquipmentSnapshot, error) {
	var equipmentJSON []byte
	err := r.db.QueryRow(ctx, `SELECT equipment FROM inventories WHERE user_id = $1`, userID).Scan(&equipmentJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// No inventory yet means nothing equipped
			return domain.EquipmentSnapshot{}, nil
		}
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return unmarshalEquipment(equipmentJSON)
}

// BeginTx starts a transaction and returns an InventoryTx
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin inventory transaction: %w", err)
	}
	return &inventoryTx{tx: tx}, nil
}

// inventoryTx implements repository.InventoryTx
type inventoryTx struct {
	tx pgx.Tx
}

func (t *inventoryTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *inventoryTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *inventoryTx) GetInventoryForUpdate(ctx context.Context, userID string) (*domain.Inventory, error) {
	return getInventory(ctx, t.tx, userID, true)
}

func (t *inventoryTx) UpdateInventory(ctx context.Context, userID string, inventory domain.Inventory) error {
	return updateInventory(ctx, t.tx, userID, inventory)
}

func (t *inventoryTx) SetEquipment(ctx context.Context, userID string, equipment domain.EquipmentSnapshot) error {
	equipmentJSON, err := marshalEquipment(equipment)
	if err != nil {
		return err
	}

	query := `UPDATE inventories SET equipment = $1, updated_at = NOW() WHERE user_id = $2`
	tag, err := t.tx.Exec(ctx, query, equipmentJSON, userID)
	if err != nil {
		return fmt.Errorf("failed to set equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInventoryNotFound
	}
	return nil
}
