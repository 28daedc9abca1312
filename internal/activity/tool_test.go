package activity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nymstead/wayfarer/internal/domain"
)

// fakeCatalog implements ItemCatalog over a fixed item map.
type fakeCatalog struct {
	items map[string]*domain.Item
}

func (f *fakeCatalog) GetItemByKey(ctx context.Context, key string) (*domain.Item, error) {
	if item, ok := f.items[key]; ok {
		return item, nil
	}
	return nil, domain.ErrItemNotFound
}

func TestRequireTool(t *testing.T) {
	resolver := NewToolResolver(&fakeCatalog{})
	spec := getVocations()[domain.VocationWoodcutting]

	t.Run("missing tool", func(t *testing.T) {
		err := resolver.RequireTool(domain.EquipmentSnapshot{}, spec)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrToolRequired)
		assert.Contains(t, err.Error(), "axe")
	})

	t.Run("tool equipped", func(t *testing.T) {
		equipment := domain.EquipmentSnapshot{
			domain.SlotAxe: {ItemKey: "bronze_axe"},
		}
		assert.NoError(t, resolver.RequireTool(equipment, spec))
	})
}

func TestEfficiency(t *testing.T) {
	catalog := &fakeCatalog{items: map[string]*domain.Item{
		"bronze_axe": {
			Key:       "bronze_axe",
			EquipSlot: domain.SlotAxe,
			Stats:     []domain.ItemStat{{Name: EfficiencyStat, Value: 10}},
		},
		"enchanted_axe": {
			Key:       "enchanted_axe",
			EquipSlot: domain.SlotAxe,
			Stats: []domain.ItemStat{
				{Name: EfficiencyStat, Value: 80},
				{Name: EfficiencyStat, Value: 60},
			},
		},
		"plain_axe": {
			Key:       "plain_axe",
			EquipSlot: domain.SlotAxe,
		},
	}}
	resolver := NewToolResolver(catalog)
	spec := getVocations()[domain.VocationWoodcutting]
	ctx := context.Background()

	t.Run("sums the tool stat", func(t *testing.T) {
		eff, err := resolver.Efficiency(ctx, domain.EquipmentSnapshot{
			domain.SlotAxe: {ItemKey: "bronze_axe"},
		}, spec)
		require.NoError(t, err)
		assert.Equal(t, 10, eff)
	})

	t.Run("clamps at the cap", func(t *testing.T) {
		eff, err := resolver.Efficiency(ctx, domain.EquipmentSnapshot{
			domain.SlotAxe: {ItemKey: "enchanted_axe"},
		}, spec)
		require.NoError(t, err)
		assert.Equal(t, MaxEfficiencyPercent, eff)
	})

	t.Run("tool without the stat", func(t *testing.T) {
		eff, err := resolver.Efficiency(ctx, domain.EquipmentSnapshot{
			domain.SlotAxe: {ItemKey: "plain_axe"},
		}, spec)
		require.NoError(t, err)
		assert.Equal(t, 0, eff)
	})

	t.Run("empty slot", func(t *testing.T) {
		eff, err := resolver.Efficiency(ctx, domain.EquipmentSnapshot{}, spec)
		require.NoError(t, err)
		assert.Equal(t, 0, eff)
	})

	t.Run("unknown item key contributes nothing", func(t *testing.T) {
		eff, err := resolver.Efficiency(ctx, domain.EquipmentSnapshot{
			domain.SlotAxe: {ItemKey: "rusted_relic"},
		}, spec)
		require.NoError(t, err)
		assert.Equal(t, 0, eff)
	})
}

func TestEffectiveUnitSeconds(t *testing.T) {
	tests := []struct {
		name          string
		baseSeconds   int
		efficiency    int
		expectSeconds int
		expectApplied int
	}{
		{"no tool bonus", 30, 0, 30, 0},
		{"ten percent", 30, 10, 27, 10},
		{"half", 30, 50, 15, 50},
		{"full efficiency floors at minimum", 30, 100, MinUnitSeconds, 100},
		{"over the cap clamps", 30, 250, MinUnitSeconds, 100},
		{"negative clamps to zero", 30, -5, 30, 0},
		{"rounding truncates", 45, 33, 30, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seconds, applied := EffectiveUnitSeconds(tt.baseSeconds, tt.efficiency)
			assert.Equal(t, tt.expectSeconds, seconds)
			assert.Equal(t, tt.expectApplied, applied)
		})
	}
}
