package inventory

import (
	"github.com/google/uuid"

	"github.com/nymstead/wayfarer/internal/domain"
)

// Grant distributes quantity of an item into the slot array: existing stacks
// of the same template and rarity are topped up in slot order, then empty
// slots are filled lowest-index first, splitting by the item's max stack
// size. Unstackable items occupy one slot each. Whatever does not fit comes
// back as Remaining and must not be discarded by the caller.
//
// The slot array is mutated in place and padded to capacity if short;
// persistence is the caller's responsibility.
func Grant(slots []*domain.Stack, capacity int, item *domain.Item, rarity domain.RarityLevel, quantity int) ([]*domain.Stack, domain.GrantResult) {
	slots = normalize(slots, capacity)

	if quantity <= 0 {
		return slots, domain.GrantResult{}
	}

	maxStack := item.MaxStackSize
	if !item.Stackable || maxStack < 1 {
		maxStack = 1
	}

	remaining := quantity

	// Top up compatible stacks first.
	if item.Stackable {
		for _, s := range slots {
			if remaining == 0 {
				break
			}
			if s == nil || !s.SameVariant(item.Key, rarity) {
				continue
			}
			space := maxStack - s.Quantity
			if space <= 0 {
				continue
			}
			take := min(space, remaining)
			s.Quantity += take
			remaining -= take
		}
	}

	// Open new stacks in empty slots, lowest index first.
	for i := range slots {
		if remaining == 0 {
			break
		}
		if slots[i] != nil {
			continue
		}
		size := min(maxStack, remaining)
		slots[i] = &domain.Stack{
			ID:       uuid.NewString(),
			ItemKey:  item.Key,
			Quantity: size,
			Rarity:   rarity,
		}
		remaining -= size
	}

	return slots, domain.GrantResult{
		Granted:   quantity - remaining,
		Remaining: remaining,
	}
}

// normalize pads or leaves the slot array so its length equals capacity.
// Truncation is the reconciler's job; Grant never drops slots.
func normalize(slots []*domain.Stack, capacity int) []*domain.Stack {
	if capacity < 0 {
		capacity = 0
	}
	for len(slots) < capacity {
		slots = append(slots, nil)
	}
	return slots
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
