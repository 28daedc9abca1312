package activity

import "github.com/nymstead/wayfarer/internal/domain"

// VocationSpec configures one production vocation: what it yields, how long a
// base unit takes, which equipped tool it demands, and the XP each unit pays
// into the vocation and account tracks.
type VocationSpec struct {
	Key             domain.VocationKey
	DisplayName     string
	ResourceKey     string
	BaseUnitSeconds int
	ToolSlot        domain.EquipSlot
	ToolName        string // human-readable, used in ToolRequired errors
	UnitXP          int
	AccountUnitXP   int
}

// getVocations returns the vocation catalog
// Base unit durations are pre-tool-efficiency; the resolver shortens them
func getVocations() map[domain.VocationKey]VocationSpec {
	return map[domain.VocationKey]VocationSpec{
		domain.VocationWoodcutting: {
			Key:             domain.VocationWoodcutting,
			DisplayName:     "Woodcutting",
			ResourceKey:     "oak_log",
			BaseUnitSeconds: 30,
			ToolSlot:        domain.SlotAxe,
			ToolName:        "axe",
			UnitXP:          12,
			AccountUnitXP:   4,
		},
		domain.VocationMining: {
			Key:             domain.VocationMining,
			DisplayName:     "Mining",
			ResourceKey:     "iron_ore",
			BaseUnitSeconds: 45,
			ToolSlot:        domain.SlotPickaxe,
			ToolName:        "pickaxe",
			UnitXP:          18,
			AccountUnitXP:   6,
		},
		domain.VocationFishing: {
			Key:             domain.VocationFishing,
			DisplayName:     "Fishing",
			ResourceKey:     "river_trout",
			BaseUnitSeconds: 25,
			ToolSlot:        domain.SlotRod,
			ToolName:        "fishing rod",
			UnitXP:          10,
			AccountUnitXP:   3,
		},
		domain.VocationHerbalism: {
			Key:             domain.VocationHerbalism,
			DisplayName:     "Herbalism",
			ResourceKey:     "sage_leaf",
			BaseUnitSeconds: 20,
			ToolSlot:        domain.SlotSickle,
			ToolName:        "sickle",
			UnitXP:          8,
			AccountUnitXP:   3,
		},
	}
}

// DestinationSpec configures one travel destination.
type DestinationSpec struct {
	Key           string
	DisplayName   string
	TravelSeconds int
	ArrivalXP     int // account XP granted on arrival
}

// getDestinations returns the travel destination catalog
func getDestinations() map[string]DestinationSpec {
	return map[string]DestinationSpec{
		"thornwick": {
			Key:           "thornwick",
			DisplayName:   "Thornwick Village",
			TravelSeconds: 120,
			ArrivalXP:     5,
		},
		"emberfall": {
			Key:           "emberfall",
			DisplayName:   "Emberfall Keep",
			TravelSeconds: 300,
			ArrivalXP:     10,
		},
		"mistmoor": {
			Key:           "mistmoor",
			DisplayName:   "Mistmoor Crossing",
			TravelSeconds: 600,
			ArrivalXP:     20,
		},
		"duskharbor": {
			Key:           "duskharbor",
			DisplayName:   "Dusk Harbor",
			TravelSeconds: 900,
			ArrivalXP:     30,
		},
	}
}
