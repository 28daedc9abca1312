package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nymstead/wayfarer/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}

	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}

	return nil
}

// Common event types
const (
	ActivityStarted   Type = "activity.started"
	ActivityStopped   Type = "activity.stopped"
	ActivityCancelled Type = "activity.cancelled"
	TravelArrived     Type = "travel.arrived"
	UnitsClaimed      Type = "activity.units_claimed"
	LevelUp           Type = "experience.level_up"
	CapacityLoss      Type = "inventory.capacity_loss"
)

// Typed event payloads for type safety

// ActivityStartedPayloadV1 is the typed payload for activity started events
type ActivityStartedPayloadV1 struct {
	UserID      string `json:"user_id"`
	Kind        string `json:"kind"`
	VocationKey string `json:"vocation_key,omitempty"`
	Destination string `json:"destination,omitempty"`
	UnitSeconds int    `json:"unit_seconds,omitempty"`
	EndsAt      int64  `json:"ends_at"`
	Timestamp   int64  `json:"timestamp"`
}

// ActivityStoppedPayloadV1 is the typed payload for activity stopped and cancelled events
type ActivityStoppedPayloadV1 struct {
	UserID       string `json:"user_id"`
	Kind         string `json:"kind"`
	VocationKey  string `json:"vocation_key,omitempty"`
	UnitsClaimed int    `json:"units_claimed"`
	Timestamp    int64  `json:"timestamp"`
}

// TravelArrivedPayloadV1 is the typed payload for travel arrival events
type TravelArrivedPayloadV1 struct {
	UserID      string `json:"user_id"`
	Destination string `json:"destination"`
	XPAwarded   int    `json:"xp_awarded"`
	Timestamp   int64  `json:"timestamp"`
}

// UnitsClaimedPayloadV1 is the typed payload for yield claim events
type UnitsClaimedPayloadV1 struct {
	UserID       string `json:"user_id"`
	VocationKey  string `json:"vocation_key"`
	UnitsClaimed int    `json:"units_claimed"`
	ItemsGranted int    `json:"items_granted"`
	ItemsUnfit   int    `json:"items_unfit"`
	Timestamp    int64  `json:"timestamp"`
}

// LevelUpPayloadV1 is the typed payload for level up events
type LevelUpPayloadV1 struct {
	UserID   string `json:"user_id"`
	Track    string `json:"track"`
	OldLevel int    `json:"old_level"`
	NewLevel int    `json:"new_level"`
	Source   string `json:"source,omitempty"`
}

// CapacityLossPayloadV1 is the typed payload for capacity shrink loss events
type CapacityLossPayloadV1 struct {
	UserID      string             `json:"user_id"`
	OldCapacity int                `json:"old_capacity"`
	NewCapacity int                `json:"new_capacity"`
	Lost        []domain.LostStack `json:"lost"`
	Timestamp   int64              `json:"timestamp"`
}

// Type-safe event constructors

// NewActivityStartedEvent creates a new activity started event with type-safe payload
func NewActivityStartedEvent(a *domain.Activity) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActivityStarted,
		Payload: ActivityStartedPayloadV1{
			UserID:      a.UserID,
			Kind:        string(a.Kind),
			VocationKey: string(a.VocationKey),
			Destination: a.DestinationKey,
			UnitSeconds: a.UnitSeconds,
			EndsAt:      a.EndsAt.Unix(),
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewActivityStoppedEvent creates a new activity stopped event
func NewActivityStoppedEvent(a *domain.Activity, unitsClaimed int, cancelled bool) Event {
	eventType := ActivityStopped
	if cancelled {
		eventType = ActivityCancelled
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: ActivityStoppedPayloadV1{
			UserID:       a.UserID,
			Kind:         string(a.Kind),
			VocationKey:  string(a.VocationKey),
			UnitsClaimed: unitsClaimed,
			Timestamp:    time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewTravelArrivedEvent creates a new travel arrival event
func NewTravelArrivedEvent(userID, destination string, xpAwarded int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    TravelArrived,
		Payload: TravelArrivedPayloadV1{
			UserID:      userID,
			Destination: destination,
			XPAwarded:   xpAwarded,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewUnitsClaimedEvent creates a new yield claim event
func NewUnitsClaimedEvent(userID, vocationKey string, summary *domain.YieldSummary) Event {
	granted, unfit := 0, 0
	for _, n := range summary.ItemsGranted {
		granted += n
	}
	for _, n := range summary.ItemsUnfit {
		unfit += n
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    UnitsClaimed,
		Payload: UnitsClaimedPayloadV1{
			UserID:       userID,
			VocationKey:  vocationKey,
			UnitsClaimed: summary.UnitsClaimed,
			ItemsGranted: granted,
			ItemsUnfit:   unfit,
			Timestamp:    time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// NewLevelUpEvent creates a new level up event with type-safe payload
func NewLevelUpEvent(userID string, track domain.Track, oldLevel, newLevel int, source string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    LevelUp,
		Payload: LevelUpPayloadV1{
			UserID:   userID,
			Track:    string(track),
			OldLevel: oldLevel,
			NewLevel: newLevel,
			Source:   source,
		},
		Metadata: map[string]interface{}{
			"source": source,
		},
	}
}

// NewCapacityLossEvent creates a new capacity shrink loss event
func NewCapacityLossEvent(userID string, oldCapacity, newCapacity int, lost []domain.LostStack) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CapacityLoss,
		Payload: CapacityLossPayloadV1{
			UserID:      userID,
			OldCapacity: oldCapacity,
			NewCapacity: newCapacity,
			Lost:        lost,
			Timestamp:   time.Now().Unix(),
		},
		Metadata: nil,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously; failures are collected rather than
	// aborting the remaining handlers.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
