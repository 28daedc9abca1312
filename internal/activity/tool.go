package activity

import (
	"context"
	"errors"
	"fmt"

	"github.com/nymstead/wayfarer/internal/domain"
)

// ItemCatalog is the narrow item lookup the resolver needs.
type ItemCatalog interface {
	GetItemByKey(ctx context.Context, key string) (*domain.Item, error)
}

// ToolResolver determines whether a vocation's required tool is equipped and
// how much it shortens unit durations.
type ToolResolver struct {
	items ItemCatalog
}

// NewToolResolver creates a new tool resolver
func NewToolResolver(items ItemCatalog) *ToolResolver {
	return &ToolResolver{items: items}
}

// RequireTool verifies the vocation's tool slot is occupied. Vocations all
// mandate a tool; the error names the missing tool for the player.
func (r *ToolResolver) RequireTool(equipment domain.EquipmentSnapshot, spec VocationSpec) error {
	if _, ok := equipment[spec.ToolSlot]; !ok {
		return fmt.Errorf("%w: equip a %s to start %s", domain.ErrToolRequired, spec.ToolName, spec.DisplayName)
	}
	return nil
}

// Efficiency computes the tool efficiency percentage for a vocation from the
// equipped tool's stat rows. No tool or no matching stat yields zero.
func (r *ToolResolver) Efficiency(ctx context.Context, equipment domain.EquipmentSnapshot, spec VocationSpec) (int, error) {
	equipped, ok := equipment[spec.ToolSlot]
	if !ok {
		return 0, nil
	}

	tool, err := r.items.GetItemByKey(ctx, equipped.ItemKey)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve equipped tool: %w", err)
	}

	eff := tool.StatTotal(EfficiencyStat)
	if eff < 0 {
		eff = 0
	}
	if eff > MaxEfficiencyPercent {
		eff = MaxEfficiencyPercent
	}
	return eff, nil
}

// EffectiveUnitSeconds applies an efficiency percentage to a base unit
// duration. The result never drops below MinUnitSeconds: 100% efficiency
// would otherwise yield instantaneous units and a zero-duration claim loop.
func EffectiveUnitSeconds(baseSeconds, efficiencyPercent int) (unitSeconds, appliedEfficiency int) {
	if efficiencyPercent < 0 {
		efficiencyPercent = 0
	}
	if efficiencyPercent > MaxEfficiencyPercent {
		efficiencyPercent = MaxEfficiencyPercent
	}

	unitSeconds = baseSeconds * (100 - efficiencyPercent) / 100
	if unitSeconds < MinUnitSeconds {
		unitSeconds = MinUnitSeconds
	}
	return unitSeconds, efficiencyPercent
}
