package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/nymstead/wayfarer/internal/domain"
)

// ItemCatalog is the narrow item lookup capacity math needs.
type ItemCatalog interface {
	GetItemByKey(ctx context.Context, key string) (*domain.Item, error)
}

// BonusCapacity sums the capacity contributions of every equipped item,
// scaled by each item's rarity. Unknown item keys contribute nothing rather
// than failing the whole snapshot.
func BonusCapacity(ctx context.Context, items ItemCatalog, equipment domain.EquipmentSnapshot) (int, error) {
	bonus := 0
	for _, equipped := range equipment {
		item, err := items.GetItemByKey(ctx, equipped.ItemKey)
		if err != nil {
			if errors.Is(err, domain.ErrItemNotFound) {
				continue
			}
			return 0, fmt.Errorf("failed to resolve equipped item %s: %w", equipped.ItemKey, err)
		}
		if item.CapacityBonus <= 0 {
			continue
		}
		bonus += int(float64(item.CapacityBonus) * equipped.Rarity.CapacityMultiplier())
	}
	return bonus, nil
}
