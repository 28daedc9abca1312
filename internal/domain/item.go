package domain

// EquipSlot names a slot in the equipment loadout.
type EquipSlot string

const (
	SlotAxe     EquipSlot = "axe"
	SlotPickaxe EquipSlot = "pickaxe"
	SlotRod     EquipSlot = "rod"
	SlotSickle  EquipSlot = "sickle"
	SlotBack    EquipSlot = "back"
	SlotBelt    EquipSlot = "belt"
)

// ItemStat is one stat row on an item template.
type ItemStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Item represents an item template.
type Item struct {
	Key           string     `json:"item_key" db:"item_key"`
	DisplayName   string     `json:"display_name" db:"display_name"`
	Description   string     `json:"description,omitempty" db:"item_description"`
	Stackable     bool       `json:"stackable" db:"stackable"`
	MaxStackSize  int        `json:"max_stack_size" db:"max_stack_size"`
	EquipSlot     EquipSlot  `json:"equip_slot,omitempty" db:"equip_slot"`
	CapacityBonus int        `json:"capacity_bonus,omitempty" db:"capacity_bonus"`
	Stats         []ItemStat `json:"stats,omitempty"`
}

// StatTotal sums the named stat across the item's stat rows.
func (it *Item) StatTotal(name string) int {
	total := 0
	for _, row := range it.Stats {
		if row.Name == name {
			total += row.Value
		}
	}
	return total
}

// RarityLevel represents the rarity variant of an item instance
type RarityLevel string

const (
	RarityCommon    RarityLevel = "COMMON"
	RarityUncommon  RarityLevel = "UNCOMMON"
	RarityRare      RarityLevel = "RARE"
	RarityEpic      RarityLevel = "EPIC"
	RarityLegendary RarityLevel = "LEGENDARY"
)

// CapacityMultiplier scales an equipped item's capacity contribution by its
// rarity. Distance from common * 25%.
func (r RarityLevel) CapacityMultiplier() float64 {
	multipliers := map[RarityLevel]float64{
		RarityCommon:    1.0,
		RarityUncommon:  1.25,
		RarityRare:      1.5,
		RarityEpic:      1.75,
		RarityLegendary: 2.0,
	}

	if m, ok := multipliers[r]; ok {
		return m
	}
	return 1.0
}

// EquippedItem is one entry in an equipment snapshot.
type EquippedItem struct {
	ItemKey string      `json:"item_key"`
	Rarity  RarityLevel `json:"rarity,omitempty"`
}

// EquipmentSnapshot is the full equipment loadout supplied by the external
// equipment collaborator, keyed by slot.
type EquipmentSnapshot map[EquipSlot]EquippedItem
