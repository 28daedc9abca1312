package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/nymstead/wayfarer/internal/concurrency"
	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/event"
	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/metrics"
	"github.com/nymstead/wayfarer/internal/repository"
)

// Publisher is the slice of the event bus capacity changes report on.
type Publisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

// Service defines inventory and equipment business logic
type Service interface {
	// GetInventory retrieves a user's inventory, creating an empty one at
	// the base capacity on first touch
	GetInventory(ctx context.Context, userID string) (*domain.Inventory, error)

	// GetEquipment retrieves the stored equipment snapshot
	GetEquipment(ctx context.Context, userID string) (domain.EquipmentSnapshot, error)

	// ApplyEquipmentChange stores a new equipment snapshot and reconciles
	// the inventory to the capacity it implies. Stacks that cannot be
	// relocated on a shrink are reported lost, never dropped silently.
	ApplyEquipmentChange(ctx context.Context, userID string, equipment domain.EquipmentSnapshot) (*domain.CapacityChangeResult, error)
}

type service struct {
	repo         repository.Inventory
	items        ItemCatalog
	publisher    Publisher
	locks        *concurrency.LockManager
	baseCapacity int
}

// NewService creates a new inventory service
func NewService(
	repo repository.Inventory,
	items ItemCatalog,
	publisher Publisher,
	locks *concurrency.LockManager,
	baseCapacity int,
) Service {
	return &service{
		repo:         repo,
		items:        items,
		publisher:    publisher,
		locks:        locks,
		baseCapacity: baseCapacity,
	}
}

func (s *service) GetInventory(ctx context.Context, userID string) (*domain.Inventory, error) {
	inv, err := s.repo.GetInventory(ctx, userID)
	if err == nil {
		return inv, nil
	}
	if !errors.Is(err, domain.ErrInventoryNotFound) {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	inv, err = s.repo.CreateInventory(ctx, userID, s.baseCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}
	return inv, nil
}

func (s *service) GetEquipment(ctx context.Context, userID string) (domain.EquipmentSnapshot, error) {
	equipment, err := s.repo.GetEquipment(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return equipment, nil
}

// validateEquipment checks every equipped item exists and belongs in the
// slot it occupies.
func (s *service) validateEquipment(ctx context.Context, equipment domain.EquipmentSnapshot) error {
	for slot, equipped := range equipment {
		item, err := s.items.GetItemByKey(ctx, equipped.ItemKey)
		if err != nil {
			return fmt.Errorf("failed to resolve equipped item %s: %w", equipped.ItemKey, err)
		}
		if item.EquipSlot != slot {
			return fmt.Errorf("%w: %s does not fit the %s slot", domain.ErrInvalidInput, item.Key, slot)
		}
	}
	return nil
}

func (s *service) ApplyEquipmentChange(ctx context.Context, userID string, equipment domain.EquipmentSnapshot) (*domain.CapacityChangeResult, error) {
	log := logger.FromContext(ctx)

	mu := s.locks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	if _, err := s.GetInventory(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.validateEquipment(ctx, equipment); err != nil {
		return nil, err
	}

	bonus, err := BonusCapacity(ctx, s.items, equipment)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	inv, err := tx.GetInventoryForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	oldCapacity := inv.Capacity()
	newCapacity := inv.BaseCapacity + bonus

	slots, relocated, lost := Reconcile(inv.Slots, oldCapacity, newCapacity)
	inv.Slots = slots
	inv.BonusCapacity = bonus

	if err := tx.UpdateInventory(ctx, userID, *inv); err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}
	if err := tx.SetEquipment(ctx, userID, equipment); err != nil {
		return nil, fmt.Errorf("failed to set equipment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.CapacityChanges.Inc()
	if len(lost) > 0 {
		metrics.StacksLost.Add(float64(len(lost)))
		log.Warn("Capacity shrink lost stacks",
			"user_id", userID,
			"old_capacity", oldCapacity,
			"new_capacity", newCapacity,
			"lost", len(lost))
		if s.publisher != nil {
			evt := event.NewCapacityLossEvent(userID, oldCapacity, newCapacity, lost)
			if err := s.publisher.Publish(ctx, evt); err != nil {
				log.Warn("Failed to publish event", "event_type", evt.Type, "error", err)
			}
		}
	}

	log.Info("Equipment applied",
		"user_id", userID,
		"old_capacity", oldCapacity,
		"new_capacity", newCapacity,
		"relocated", relocated)

	return &domain.CapacityChangeResult{
		OldCapacity: oldCapacity,
		NewCapacity: newCapacity,
		Relocated:   relocated,
		Lost:        lost,
	}, nil
}
