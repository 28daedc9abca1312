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

const itemColumns = `item_key, display_name, item_description, stackable, max_stack_size, equip_slot, capacity_bonus, stats`

// ItemRepository implements repository.Item for PostgreSQL
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(db *pgxpool.Pool) repository.Item {
	return &ItemRepository{db: db}
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var equipSlot string
	var statsJSON []byte
	err := row.Scan(
		&item.Key, &item.DisplayName, &item.Description, &item.Stackable,
		&item.MaxStackSize, &equipSlot, &item.CapacityBonus, &statsJSON)
	if err != nil {
		return nil, err
	}
	item.EquipSlot = domain.EquipSlot(equipSlot)
	stats, err := unmarshalStats(statsJSON)
	if err != nil {
		return nil, err
	}
	item.Stats = stats
	return &item, nil
}

// GetItemByKey retrieves an item template by key
func (r *ItemRepository) GetItemByKey(ctx context.Context, key string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_key = $1`
	item, err := scanItem(r.db.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, key)
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// GetItemsByKeys retrieves item templates for a set of keys. Unknown keys
// are simply absent from the result.
func (r *ItemRepository) GetItemsByKeys(ctx context.Context, keys []string) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_key = ANY($1)`
	rows, err := r.db.Query(ctx, query, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// UpsertItem inserts or replaces an item template
func (r *ItemRepository) UpsertItem(ctx context.Context, item *domain.Item) error {
	statsJSON, err := marshalStats(item.Stats)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO items (item_key, display_name, item_description, stackable, max_stack_size, equip_slot, capacity_bonus, stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (item_key) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			item_description = EXCLUDED.item_description,
			stackable = EXCLUDED.stackable,
			max_stack_size = EXCLUDED.max_stack_size,
			equip_slot = EXCLUDED.equip_slot,
			capacity_bonus = EXCLUDED.capacity_bonus,
			stats = EXCLUDED.stats
	`
	_, err = r.db.Exec(ctx, query,
		item.Key, item.DisplayName, item.Description, item.Stackable,
		item.MaxStackSize, string(item.EquipSlot), item.CapacityBonus, statsJSON)
	if err != nil {
		return fmt.Errorf("failed to upsert item: %w", err)
	}
	return nil
}
