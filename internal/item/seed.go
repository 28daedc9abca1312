package item

import "github.com/nymstead/wayfarer/internal/domain"

// SeedItems returns the built-in item templates: the gathered resources, the
// tools the vocations require, and the capacity-bearing containers.
func SeedItems() []domain.Item {
	return []domain.Item{
		// Gathered resources
		{
			Key:          "oak_log",
			DisplayName:  "Oak Log",
			Description:  "A sturdy length of oak, felled from the Thornwick groves.",
			Stackable:    true,
			MaxStackSize: 50,
		},
		{
			Key:          "iron_ore",
			DisplayName:  "Iron Ore",
			Description:  "Raw ore streaked with rust-red veins.",
			Stackable:    true,
			MaxStackSize: 50,
		},
		{
			Key:          "river_trout",
			DisplayName:  "River Trout",
			Description:  "A plump trout pulled from the Mistmoor shallows.",
			Stackable:    true,
			MaxStackSize: 20,
		},
		{
			Key:          "sage_leaf",
			DisplayName:  "Sage Leaf",
			Description:  "Fragrant leaves used in salves and seasonings.",
			Stackable:    true,
			MaxStackSize: 100,
		},

		// Tools
		{
			Key:         "bronze_axe",
			DisplayName: "Bronze Axe",
			Stackable:   false,
			EquipSlot:   domain.SlotAxe,
			Stats:       []domain.ItemStat{{Name: "gather_speed", Value: 10}},
		},
		{
			Key:         "steel_axe",
			DisplayName: "Steel Axe",
			Stackable:   false,
			EquipSlot:   domain.SlotAxe,
			Stats:       []domain.ItemStat{{Name: "gather_speed", Value: 25}},
		},
		{
			Key:         "bronze_pickaxe",
			DisplayName: "Bronze Pickaxe",
			Stackable:   false,
			EquipSlot:   domain.SlotPickaxe,
			Stats:       []domain.ItemStat{{Name: "gather_speed", Value: 10}},
		},
		{
			Key:         "steel_pickaxe",
			DisplayName: "Steel Pickaxe",
			Stackable:   false,
			EquipSlot:   domain.SlotPickaxe,
			Stats:       []domain.ItemStat{{Name: "gather_speed", Value: 25}},
		},
		{
			Key:         "willow_rod",
			DisplayName: "Willow Rod",
			Stackable:   false,
			EquipSlot:   domain.SlotRod,
			Stats:       []domain.ItemStat{{Name: "gather_speed", Value: 15}},
		},
		{
			Key:         "copper_sickle",
			DisplayName: "Copper Sickle",
			Stackable:   false,
			EquipSlot:   domain.SlotSickle,
			Stats:       []domain.ItemStat{{Name: "gather_speed", Value: 12}},
		},

		// Containers
		{
			Key:           "leather_pack",
			DisplayName:   "Leather Pack",
			Description:   "A worn pack with room for a few more finds.",
			Stackable:     false,
			EquipSlot:     domain.SlotBack,
			CapacityBonus: 4,
		},
		{
			Key:           "traveler_satchel",
			DisplayName:   "Traveler's Satchel",
			Description:   "Deep pockets stitched for the long road.",
			Stackable:     false,
			EquipSlot:     domain.SlotBack,
			CapacityBonus: 8,
		},
		{
			Key:           "forager_belt",
			DisplayName:   "Forager's Belt",
			Stackable:     false,
			EquipSlot:     domain.SlotBelt,
			CapacityBonus: 2,
		},
	}
}
