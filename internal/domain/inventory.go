package domain

// Stack is a quantity of one item template in a single slot. Two stacks merge
// only when both the template and the rarity variant match.
type Stack struct {
	ID       string      `json:"id"`
	ItemKey  string      `json:"item_key"`
	Quantity int         `json:"quantity"`
	Rarity   RarityLevel `json:"rarity,omitempty"`
}

// SameVariant reports whether two stacks hold the same mergeable item.
func (s *Stack) SameVariant(itemKey string, rarity RarityLevel) bool {
	return s.ItemKey == itemKey && s.Rarity == rarity
}

// Inventory is the structure stored in the JSONB column. Slots is an ordered
// fixed-length array whose length always equals Capacity(); a nil entry is an
// empty slot.
type Inventory struct {
	Slots         []*Stack `json:"slots"`
	BaseCapacity  int      `json:"base_capacity"`
	BonusCapacity int      `json:"bonus_capacity"`
	LastUpdate    int64    `json:"last_update,omitempty"`
}

// Capacity is the current maximum slot count.
func (inv *Inventory) Capacity() int {
	return inv.BaseCapacity + inv.BonusCapacity
}

// ItemCount sums the quantities across all occupied slots.
func (inv *Inventory) ItemCount() int {
	total := 0
	for _, s := range inv.Slots {
		if s != nil {
			total += s.Quantity
		}
	}
	return total
}

// EmptySlots counts unoccupied slots.
func (inv *Inventory) EmptySlots() int {
	empty := 0
	for _, s := range inv.Slots {
		if s == nil {
			empty++
		}
	}
	return empty
}

// GrantResult reports the outcome of distributing a quantity into slots.
// Remaining must never be silently discarded by the caller.
type GrantResult struct {
	Granted   int `json:"granted"`
	Remaining int `json:"remaining"`
}

// LostStack identifies a stack that could not be relocated during a capacity
// shrink, with the slot it occupied before truncation.
type LostStack struct {
	SlotIndex int    `json:"slot_index"`
	ItemKey   string `json:"item_key"`
	Quantity  int    `json:"quantity"`
}

// CapacityChangeResult reports an equipment-driven capacity reconciliation.
type CapacityChangeResult struct {
	OldCapacity int         `json:"old_capacity"`
	NewCapacity int         `json:"new_capacity"`
	Relocated   int         `json:"relocated"`
	Lost        []LostStack `json:"lost,omitempty"`
}
