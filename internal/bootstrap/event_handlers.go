package bootstrap

import (
	"context"
	"log/slog"

	"github.com/nymstead/wayfarer/internal/event"
	"github.com/nymstead/wayfarer/internal/metrics"
)

// RegisterEventHandlers wires the in-process subscribers: a metrics collector
// counting every published event, and a notification logger for the events an
// external push collaborator would care about. The bus is the boundary where
// such a collaborator plugs in.
func RegisterEventHandlers(bus event.Bus) {
	allTypes := []event.Type{
		event.ActivityStarted,
		event.ActivityStopped,
		event.ActivityCancelled,
		event.TravelArrived,
		event.UnitsClaimed,
		event.LevelUp,
		event.CapacityLoss,
	}

	for _, t := range allTypes {
		bus.Subscribe(t, countEvent)
	}

	bus.Subscribe(event.LevelUp, logLevelUp)
	bus.Subscribe(event.TravelArrived, logTravelArrived)
	bus.Subscribe(event.CapacityLoss, logCapacityLoss)

	slog.Info("Event handlers registered", "types", len(allTypes))
}

func countEvent(ctx context.Context, evt event.Event) error {
	metrics.EventsPublished.WithLabelValues(string(evt.Type)).Inc()
	return nil
}

func logLevelUp(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.LevelUpPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	slog.Info("Level up",
		"user_id", payload.UserID,
		"track", payload.Track,
		"old_level", payload.OldLevel,
		"new_level", payload.NewLevel)
	return nil
}

func logTravelArrived(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.TravelArrivedPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	slog.Info("Travel arrived",
		"user_id", payload.UserID,
		"destination", payload.Destination)
	return nil
}

func logCapacityLoss(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.CapacityLossPayloadV1](evt.Payload)
	if err != nil {
		return err
	}
	slog.Warn("Stacks lost to capacity shrink",
		"user_id", payload.UserID,
		"old_capacity", payload.OldCapacity,
		"new_capacity", payload.NewCapacity,
		"lost_stacks", len(payload.Lost))
	return nil
}
