package activity

import (
	"context"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/event"
	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/metrics"
)

// Publisher is the slice of the event bus the lifecycle needs. The external
// notifier collaborator subscribes on the other side.
type Publisher interface {
	Publish(ctx context.Context, evt event.Event) error
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn("Failed to publish event",
			"event_type", evt.Type, "error", err)
	}
}

func (s *service) publishActivityStarted(ctx context.Context, activity *domain.Activity) {
	s.publish(ctx, event.NewActivityStartedEvent(activity))
}

func (s *service) publishActivityStopped(ctx context.Context, activity *domain.Activity, unitsClaimed int, cancelled bool) {
	s.publish(ctx, event.NewActivityStoppedEvent(activity, unitsClaimed, cancelled))
}

func (s *service) publishArrival(ctx context.Context, activity *domain.Activity, arrival *domain.XPAwardResult) {
	xpAwarded := 0
	if arrival != nil {
		xpAwarded = arrival.XPGained
	}
	s.publish(ctx, event.NewTravelArrivedEvent(activity.UserID, activity.DestinationKey, xpAwarded))
	if arrival != nil && arrival.LeveledUp {
		s.publish(ctx, event.NewLevelUpEvent(activity.UserID, arrival.Track, arrival.OldLevel, arrival.NewLevel, SourceTravel))
	}
}

// publishClaim records a committed claim's counters and events. Callers invoke
// it only after the claiming transaction has committed.
func (s *service) publishClaim(ctx context.Context, activity *domain.Activity, summary *domain.YieldSummary, claim *claimResult) {
	if summary == nil || summary.Empty() {
		return
	}
	for key, qty := range summary.ItemsUnfit {
		metrics.ItemsUnfit.WithLabelValues(key).Add(float64(qty))
	}
	if summary.UnitsClaimed > 0 {
		metrics.UnitsClaimed.WithLabelValues(string(activity.VocationKey)).Add(float64(summary.UnitsClaimed))
		for key, qty := range summary.ItemsGranted {
			metrics.ItemsGranted.WithLabelValues(key).Add(float64(qty))
		}
		s.publish(ctx, event.NewUnitsClaimedEvent(activity.UserID, string(activity.VocationKey), summary))
	}
	if claim == nil {
		return
	}
	for _, award := range claim.levelUps {
		s.publish(ctx, event.NewLevelUpEvent(activity.UserID, award.Track, award.OldLevel, award.NewLevel, SourceVocation))
	}
}
