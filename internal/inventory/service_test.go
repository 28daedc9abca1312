package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nymstead/wayfarer/internal/concurrency"
	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/event"
	"github.com/nymstead/wayfarer/internal/repository"
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

func testCatalog() *fakeCatalog {
	return &fakeCatalog{items: map[string]*domain.Item{
		"leather_pack": {
			Key:           "leather_pack",
			EquipSlot:     domain.SlotBack,
			CapacityBonus: 4,
		},
		"traveler_satchel": {
			Key:           "traveler_satchel",
			EquipSlot:     domain.SlotBack,
			CapacityBonus: 8,
		},
		"forager_belt": {
			Key:           "forager_belt",
			EquipSlot:     domain.SlotBelt,
			CapacityBonus: 2,
		},
		"bronze_axe": {
			Key:       "bronze_axe",
			EquipSlot: domain.SlotAxe,
		},
	}}
}

// fakeRepo is an in-memory repository.Inventory with pass-through
// transactions.
type fakeRepo struct {
	inventories map[string]*domain.Inventory
	equipment   map[string]domain.EquipmentSnapshot
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		inventories: make(map[string]*domain.Inventory),
		equipment:   make(map[string]domain.EquipmentSnapshot),
	}
}

func (f *fakeRepo) GetInventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	if inv, ok := f.inventories[userID]; ok {
		copied := *inv
		copied.Slots = append([]*domain.Stack(nil), inv.Slots...)
		return &copied, nil
	}
	return nil, domain.ErrInventoryNotFound
}

func (f *fakeRepo) CreateInventory(ctx context.Context, userID string, baseCapacity int) (*domain.Inventory, error) {
	inv := &domain.Inventory{
		Slots:        make([]*domain.Stack, baseCapacity),
		BaseCapacity: baseCapacity,
	}
	f.inventories[userID] = inv
	return inv, nil
}

func (f *fakeRepo) GetEquipment(ctx context.Context, userID string) (domain.EquipmentSnapshot, error) {
	if eq, ok := f.equipment[userID]; ok {
		return eq, nil
	}
	return domain.EquipmentSnapshot{}, nil
}

func (f *fakeRepo) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	return &fakeInventoryTx{repo: f}, nil
}

type fakeInventoryTx struct {
	repo *fakeRepo
}

func (t *fakeInventoryTx) Commit(ctx context.Context) error   { return nil }
func (t *fakeInventoryTx) Rollback(ctx context.Context) error { return nil }

func (t *fakeInventoryTx) GetInventoryForUpdate(ctx context.Context, userID string) (*domain.Inventory, error) {
	return t.repo.GetInventory(ctx, userID)
}

func (t *fakeInventoryTx) UpdateInventory(ctx context.Context, userID string, inventory domain.Inventory) error {
	copied := inventory
	copied.Slots = append([]*domain.Stack(nil), inventory.Slots...)
	t.repo.inventories[userID] = &copied
	return nil
}

func (t *fakeInventoryTx) SetEquipment(ctx context.Context, userID string, equipment domain.EquipmentSnapshot) error {
	t.repo.equipment[userID] = equipment
	return nil
}

type recordingPublisher struct {
	events []event.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt event.Event) error {
	p.events = append(p.events, evt)
	return nil
}

func newTestService(repo *fakeRepo) (Service, *recordingPublisher) {
	pub := &recordingPublisher{}
	svc := NewService(repo, testCatalog(), pub, concurrency.NewLockManager(), 30)
	return svc, pub
}

func TestGetInventoryCreatesOnFirstTouch(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	inv, err := svc.GetInventory(ctx, "user1")
	require.NoError(t, err)

	assert.Equal(t, 30, inv.Capacity())
	assert.Len(t, inv.Slots, 30)
	assert.Equal(t, 0, inv.ItemCount())

	// The second read returns the stored inventory, not a fresh one.
	repo.inventories["user1"].Slots[0] = &domain.Stack{ID: "s1", ItemKey: "oak_log", Quantity: 3}
	inv, err = svc.GetInventory(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, 3, inv.ItemCount())
}

func TestBonusCapacity(t *testing.T) {
	ctx := context.Background()
	catalog := testCatalog()

	tests := []struct {
		name      string
		equipment domain.EquipmentSnapshot
		expect    int
	}{
		{"empty loadout", domain.EquipmentSnapshot{}, 0},
		{
			"single pack",
			domain.EquipmentSnapshot{domain.SlotBack: {ItemKey: "leather_pack"}},
			4,
		},
		{
			"pack and belt sum",
			domain.EquipmentSnapshot{
				domain.SlotBack: {ItemKey: "traveler_satchel"},
				domain.SlotBelt: {ItemKey: "forager_belt"},
			},
			10,
		},
		{
			"rarity scales the bonus",
			domain.EquipmentSnapshot{domain.SlotBack: {ItemKey: "leather_pack", Rarity: domain.RarityRare}},
			6,
		},
		{
			"items without a bonus contribute nothing",
			domain.EquipmentSnapshot{domain.SlotAxe: {ItemKey: "bronze_axe"}},
			0,
		},
		{
			"unknown keys are skipped",
			domain.EquipmentSnapshot{domain.SlotBack: {ItemKey: "phantom_pack"}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bonus, err := BonusCapacity(ctx, catalog, tt.equipment)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, bonus)
		})
	}
}

func TestApplyEquipmentChangeGrowsCapacity(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	result, err := svc.ApplyEquipmentChange(ctx, "user1", domain.EquipmentSnapshot{
		domain.SlotBack: {ItemKey: "traveler_satchel"},
	})
	require.NoError(t, err)

	assert.Equal(t, 30, result.OldCapacity)
	assert.Equal(t, 38, result.NewCapacity)
	assert.Equal(t, 0, result.Relocated)
	assert.Empty(t, result.Lost)

	inv := repo.inventories["user1"]
	assert.Len(t, inv.Slots, 38)
	assert.Equal(t, 8, inv.BonusCapacity)

	equipment, err := svc.GetEquipment(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "traveler_satchel", equipment[domain.SlotBack].ItemKey)
}

func TestApplyEquipmentChangeShrinkRelocates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc, pub := newTestService(repo)

	// 34 slots from a previously equipped pack, with a stack stranded above
	// the shrunk capacity and a hole for it below.
	slots := make([]*domain.Stack, 34)
	slots[0] = &domain.Stack{ID: "s1", ItemKey: "oak_log", Quantity: 10}
	slots[32] = &domain.Stack{ID: "s2", ItemKey: "iron_ore", Quantity: 5}
	repo.inventories["user1"] = &domain.Inventory{
		Slots:         slots,
		BaseCapacity:  30,
		BonusCapacity: 4,
	}

	result, err := svc.ApplyEquipmentChange(ctx, "user1", domain.EquipmentSnapshot{})
	require.NoError(t, err)

	assert.Equal(t, 34, result.OldCapacity)
	assert.Equal(t, 30, result.NewCapacity)
	assert.Equal(t, 1, result.Relocated)
	assert.Empty(t, result.Lost)

	inv := repo.inventories["user1"]
	assert.Len(t, inv.Slots, 30)
	assert.Equal(t, 0, inv.BonusCapacity)
	assert.Equal(t, 15, inv.ItemCount())
	assert.Empty(t, pub.events)
}

func TestApplyEquipmentChangeShrinkReportsLostStacks(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc, pub := newTestService(repo)

	// Every slot below the shrunk capacity is occupied: the stranded stack
	// has nowhere to go.
	slots := make([]*domain.Stack, 34)
	for i := 0; i < 30; i++ {
		slots[i] = &domain.Stack{ID: "f", ItemKey: "oak_log", Quantity: 1}
	}
	slots[33] = &domain.Stack{ID: "s2", ItemKey: "iron_ore", Quantity: 5}
	repo.inventories["user1"] = &domain.Inventory{
		Slots:         slots,
		BaseCapacity:  30,
		BonusCapacity: 4,
	}

	result, err := svc.ApplyEquipmentChange(ctx, "user1", domain.EquipmentSnapshot{})
	require.NoError(t, err)

	require.Len(t, result.Lost, 1)
	assert.Equal(t, "iron_ore", result.Lost[0].ItemKey)
	assert.Equal(t, 5, result.Lost[0].Quantity)

	require.Len(t, pub.events, 1)
	assert.Equal(t, event.CapacityLoss, pub.events[0].Type)
}

func TestApplyEquipmentChangeRejectsBadLoadouts(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	t.Run("item in the wrong slot", func(t *testing.T) {
		_, err := svc.ApplyEquipmentChange(ctx, "user1", domain.EquipmentSnapshot{
			domain.SlotAxe: {ItemKey: "leather_pack"},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.ApplyEquipmentChange(ctx, "user1", domain.EquipmentSnapshot{
			domain.SlotBack: {ItemKey: "phantom_pack"},
		})
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})

	// Neither attempt stored an equipment snapshot.
	assert.Empty(t, repo.equipment)
}
