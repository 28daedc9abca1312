package activity

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/nymstead/wayfarer/internal/concurrency"
	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/inventory"
	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/metrics"
	"github.com/nymstead/wayfarer/internal/repository"
	"github.com/nymstead/wayfarer/internal/xp"
)

// Stop reasons recorded in metrics.
const (
	StopReasonCompleted = "completed"
	StopReasonStopped   = "stopped"
	StopReasonCancelled = "cancelled"
	StopReasonArrived   = "arrived"
)

// Service defines the activity lifecycle business logic
type Service interface {
	// StartVocation begins a vocational session. The required tool must be
	// equipped and no other activity may be running.
	StartVocation(ctx context.Context, userID string, key domain.VocationKey) (*domain.ActivityStatus, error)

	// StartTravel begins travel to a destination
	StartTravel(ctx context.Context, userID, destinationKey string) (*domain.ActivityStatus, error)

	// Status reports progress and claims whatever has accrued: completed
	// travel applies the destination, vocational claimable units become
	// items and XP. Reading twice in a row is safe.
	Status(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error)

	// Stop claims accrued yield and tears the activity down
	Stop(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error)

	// Vocations lists the vocation catalog
	Vocations() []VocationSpec

	// Destinations lists the travel destination catalog
	Destinations() []DestinationSpec
}

type service struct {
	activityRepo  repository.Activity
	inventoryRepo repository.Inventory
	userRepo      repository.User
	items         ItemCatalog
	tools         *ToolResolver
	xpSvc         xp.Service
	publisher     Publisher
	locks         *concurrency.LockManager
	maxSession    time.Duration
	baseCapacity  int
	now           func() time.Time
}

// NewService creates a new activity lifecycle service
func NewService(
	activityRepo repository.Activity,
	inventoryRepo repository.Inventory,
	userRepo repository.User,
	items ItemCatalog,
	xpSvc xp.Service,
	publisher Publisher,
	locks *concurrency.LockManager,
	maxSession time.Duration,
	baseCapacity int,
) Service {
	return &service{
		activityRepo:  activityRepo,
		inventoryRepo: inventoryRepo,
		userRepo:      userRepo,
		items:         items,
		tools:         NewToolResolver(items),
		xpSvc:         xpSvc,
		publisher:     publisher,
		locks:         locks,
		maxSession:    maxSession,
		baseCapacity:  baseCapacity,
		now:           time.Now,
	}
}

func (s *service) Vocations() []VocationSpec {
	vocations := getVocations()
	specs := make([]VocationSpec, 0, len(vocations))
	for _, spec := range vocations {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Key < specs[j].Key })
	return specs
}

func (s *service) Destinations() []DestinationSpec {
	destinations := getDestinations()
	specs := make([]DestinationSpec, 0, len(destinations))
	for _, spec := range destinations {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Key < specs[j].Key })
	return specs
}

func (s *service) StartVocation(ctx context.Context, userID string, key domain.VocationKey) (*domain.ActivityStatus, error) {
	log := logger.FromContext(ctx)

	spec, ok := getVocations()[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrVocationNotFound, key)
	}

	mu := s.locks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.ensureInventory(ctx, userID); err != nil {
		return nil, err
	}

	equipment, err := s.inventoryRepo.GetEquipment(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	if err := s.tools.RequireTool(equipment, spec); err != nil {
		return nil, err
	}

	efficiency, err := s.tools.Efficiency(ctx, equipment, spec)
	if err != nil {
		return nil, err
	}
	unitSeconds, applied := EffectiveUnitSeconds(spec.BaseUnitSeconds, efficiency)

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	announce, err := s.clearFinishedActivity(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	activity := &domain.Activity{
		UserID:      userID,
		Kind:        domain.KindVocation,
		StartedAt:   now,
		EndsAt:      now.Add(s.maxSession),
		VocationKey: spec.Key,
		ResourceKey: spec.ResourceKey,
		LocationKey: user.LocationKey,
		UnitSeconds: unitSeconds,
	}

	if err := tx.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if announce != nil {
		announce(ctx)
	}
	metrics.ActivitiesStarted.WithLabelValues(string(domain.KindVocation), string(spec.Key)).Inc()
	s.publishActivityStarted(ctx, activity)

	log.Info("Vocation started",
		"user_id", userID,
		"vocation", spec.Key,
		"unit_seconds", unitSeconds,
		"efficiency", applied)

	return s.buildStatus(activity, ComputeFor(activity, now), nil), nil
}

func (s *service) StartTravel(ctx context.Context, userID, destinationKey string) (*domain.ActivityStatus, error) {
	log := logger.FromContext(ctx)

	dest, ok := getDestinations()[destinationKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDestinationNotFound, destinationKey)
	}

	mu := s.locks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.LocationKey == dest.Key {
		return nil, fmt.Errorf("%w: already at %s", domain.ErrInvalidInput, dest.DisplayName)
	}

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	announce, err := s.clearFinishedActivity(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	activity := &domain.Activity{
		UserID:         userID,
		Kind:           domain.KindTravel,
		StartedAt:      now,
		EndsAt:         now.Add(time.Duration(dest.TravelSeconds) * time.Second),
		DestinationKey: dest.Key,
	}

	if err := tx.CreateActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if announce != nil {
		announce(ctx)
	}
	metrics.ActivitiesStarted.WithLabelValues(string(domain.KindTravel), "").Inc()
	s.publishActivityStarted(ctx, activity)

	log.Info("Travel started", "user_id", userID, "destination", dest.Key, "ends_at", activity.EndsAt)

	return s.buildStatus(activity, ComputeFor(activity, now), nil), nil
}

func (s *service) Status(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown activity kind %q", domain.ErrInvalidInput, kind)
	}

	mu := s.locks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	activity, err := tx.GetActivityForUpdate(ctx, userID, kind)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return &domain.ActivityStatus{Running: false}, nil
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	now := s.now()
	progress := ComputeFor(activity, now)

	switch activity.Kind {
	case domain.KindTravel:
		if !progress.IsComplete {
			return s.buildStatus(activity, progress, nil), nil
		}
		return s.finishTravel(ctx, tx, activity, StopReasonArrived)

	case domain.KindVocation:
		summary, claim, err := s.claimUnits(ctx, tx, activity, progress)
		if err != nil {
			return nil, err
		}

		complete := progress.IsComplete && progress.UnitsClaimable == summary.UnitsClaimed
		if complete {
			if err := tx.DeleteActivity(ctx, userID, activity.Kind); err != nil {
				return nil, fmt.Errorf("failed to delete activity: %w", err)
			}
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}

		s.publishClaim(ctx, activity, summary, claim)
		if complete {
			metrics.ActivitiesStopped.WithLabelValues(string(activity.Kind), StopReasonCompleted).Inc()
			s.publishActivityStopped(ctx, activity, summary.UnitsClaimed, false)
		}

		status := s.buildStatus(activity, progress, summary)
		// A lapsed session that still has unfitted yield stays claimable.
		status.Running = !complete
		return status, nil
	}

	return nil, fmt.Errorf("%w: unknown activity kind %q", domain.ErrInvalidInput, activity.Kind)
}

func (s *service) Stop(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.ActivityStatus, error) {
	log := logger.FromContext(ctx)

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown activity kind %q", domain.ErrInvalidInput, kind)
	}

	mu := s.locks.GetLock(userID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.activityRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	activity, err := tx.GetActivityForUpdate(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	now := s.now()
	progress := ComputeFor(activity, now)

	switch activity.Kind {
	case domain.KindTravel:
		if progress.IsComplete {
			return s.finishTravel(ctx, tx, activity, StopReasonArrived)
		}
		// Cancelled en route: the traveler stays where they were.
		if err := tx.DeleteActivity(ctx, userID, activity.Kind); err != nil {
			return nil, fmt.Errorf("failed to delete activity: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}

		metrics.ActivitiesStopped.WithLabelValues(string(activity.Kind), StopReasonCancelled).Inc()
		s.publishActivityStopped(ctx, activity, 0, true)
		log.Info("Travel cancelled", "user_id", userID, "destination", activity.DestinationKey)

		status := s.buildStatus(activity, progress, nil)
		status.Running = false
		return status, nil

	case domain.KindVocation:
		summary, claim, err := s.claimUnits(ctx, tx, activity, progress)
		if err != nil {
			return nil, err
		}

		if err := tx.DeleteActivity(ctx, userID, activity.Kind); err != nil {
			return nil, fmt.Errorf("failed to delete activity: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}

		reason := StopReasonStopped
		if progress.IsComplete {
			reason = StopReasonCompleted
		}
		metrics.ActivitiesStopped.WithLabelValues(string(activity.Kind), reason).Inc()
		s.publishClaim(ctx, activity, summary, claim)
		s.publishActivityStopped(ctx, activity, summary.UnitsClaimed, false)
		log.Info("Vocation stopped",
			"user_id", userID,
			"vocation", activity.VocationKey,
			"units_claimed", summary.UnitsClaimed,
			"reason", reason)

		status := s.buildStatus(activity, progress, summary)
		status.Running = false
		return status, nil
	}

	return nil, fmt.Errorf("%w: unknown activity kind %q", domain.ErrInvalidInput, activity.Kind)
}

// clearFinishedActivity makes room for a new activity. A finished activity is
// finalized and removed; a running one is a conflict. Called with the activity
// row locked for the whole transaction. The returned announce func carries the
// finalization's events and metrics and must run after the surrounding
// transaction commits.
func (s *service) clearFinishedActivity(ctx context.Context, tx repository.ActivityTx, userID string) (func(context.Context), error) {
	existing, err := tx.GetAnyActivityForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrActivityNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check running activity: %w", err)
	}

	progress := ComputeFor(existing, s.now())
	if !progress.IsComplete {
		return nil, fmt.Errorf("%w: %s already running", domain.ErrConflictingActivity, existing.Kind)
	}

	var announce func(context.Context)
	switch existing.Kind {
	case domain.KindVocation:
		summary, claim, err := s.claimUnits(ctx, tx, existing, progress)
		if err != nil {
			return nil, err
		}
		// The finished session's yield must land before it can be torn
		// down; a full inventory keeps the session claimable instead.
		if summary.UnitsClaimed < progress.UnitsClaimable {
			return nil, fmt.Errorf("%w: finished %s session has unclaimed yield", domain.ErrConflictingActivity, existing.VocationKey)
		}
		announce = func(ctx context.Context) {
			metrics.ActivitiesStopped.WithLabelValues(string(existing.Kind), StopReasonCompleted).Inc()
			s.publishClaim(ctx, existing, summary, claim)
			s.publishActivityStopped(ctx, existing, summary.UnitsClaimed, false)
		}
	case domain.KindTravel:
		arrival, err := s.applyArrival(ctx, tx, existing)
		if err != nil {
			return nil, err
		}
		announce = func(ctx context.Context) {
			metrics.ActivitiesStopped.WithLabelValues(string(existing.Kind), StopReasonArrived).Inc()
			s.publishArrival(ctx, existing, arrival)
		}
	}

	if err := tx.DeleteActivity(ctx, userID, existing.Kind); err != nil {
		return nil, fmt.Errorf("failed to delete finished activity: %w", err)
	}
	return announce, nil
}

// claimResult carries the claim side effects that only become observable
// after the transaction commits.
type claimResult struct {
	levelUps []domain.XPAwardResult
}

// claimUnits grants a vocational activity's claimable units as items and XP
// and advances the claimed counter by exactly the fitted amount. A full
// inventory is not an error: surplus units stay claimable.
func (s *service) claimUnits(ctx context.Context, tx repository.ActivityTx, activity *domain.Activity, progress domain.ActivityProgress) (*domain.YieldSummary, *claimResult, error) {
	summary := &domain.YieldSummary{}
	claim := &claimResult{}

	if progress.UnitsClaimable <= 0 {
		return summary, claim, nil
	}

	spec, ok := getVocations()[activity.VocationKey]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrVocationNotFound, activity.VocationKey)
	}

	item, err := s.items.GetItemByKey(ctx, activity.ResourceKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve resource item: %w", err)
	}

	inv, err := tx.GetInventoryForUpdate(ctx, activity.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get inventory: %w", err)
	}

	slots, result := inventory.Grant(inv.Slots, inv.Capacity(), item, domain.RarityCommon, progress.UnitsClaimable)
	fitted := result.Granted

	if result.Remaining > 0 {
		summary.ItemsUnfit = map[string]int{item.Key: result.Remaining}
	}
	if fitted == 0 {
		return summary, claim, nil
	}

	inv.Slots = slots
	inv.LastUpdate = s.now().Unix()
	if err := tx.UpdateInventory(ctx, activity.UserID, *inv); err != nil {
		return nil, nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	summary.UnitsClaimed = fitted
	summary.ItemsGranted = map[string]int{item.Key: fitted}
	summary.XPAwarded = map[string]int{}

	vocTrack := domain.VocationTrack(spec.Key)
	for _, award := range []struct {
		track  domain.Track
		amount int
	}{
		{vocTrack, spec.UnitXP * fitted},
		{domain.TrackAccount, spec.AccountUnitXP * fitted},
	} {
		res, err := s.xpSvc.Award(ctx, tx, activity.UserID, award.track, award.amount)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to award xp on %s: %w", award.track, err)
		}
		summary.XPAwarded[string(award.track)] = res.XPGained
		if res.LeveledUp {
			summary.LevelUps = append(summary.LevelUps, domain.LevelUp{
				Track:    res.Track,
				OldLevel: res.OldLevel,
				NewLevel: res.NewLevel,
			})
			claim.levelUps = append(claim.levelUps, *res)
		}
	}

	activity.UnitsClaimed += fitted
	if err := tx.UpdateUnitsClaimed(ctx, activity.UserID, activity.Kind, activity.UnitsClaimed); err != nil {
		return nil, nil, fmt.Errorf("failed to update claimed units: %w", err)
	}

	return summary, claim, nil
}

// finishTravel applies the arrival, tears the row down and commits.
func (s *service) finishTravel(ctx context.Context, tx repository.ActivityTx, activity *domain.Activity, reason string) (*domain.ActivityStatus, error) {
	arrival, err := s.applyArrival(ctx, tx, activity)
	if err != nil {
		return nil, err
	}
	if err := tx.DeleteActivity(ctx, activity.UserID, activity.Kind); err != nil {
		return nil, fmt.Errorf("failed to delete activity: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.ActivitiesStopped.WithLabelValues(string(activity.Kind), reason).Inc()
	s.publishArrival(ctx, activity, arrival)

	logger.FromContext(ctx).Info("Travel arrived",
		"user_id", activity.UserID,
		"destination", activity.DestinationKey)

	progress := ComputeTravel(activity.StartedAt, activity.EndsAt, s.now())
	status := s.buildStatus(activity, progress, nil)
	status.Running = false
	status.ArrivedAt = activity.DestinationKey
	if arrival != nil && arrival.LeveledUp {
		status.Yield = &domain.YieldSummary{
			XPAwarded: map[string]int{string(arrival.Track): arrival.XPGained},
			LevelUps: []domain.LevelUp{{
				Track:    arrival.Track,
				OldLevel: arrival.OldLevel,
				NewLevel: arrival.NewLevel,
			}},
		}
	} else if arrival != nil {
		status.Yield = &domain.YieldSummary{
			XPAwarded: map[string]int{string(arrival.Track): arrival.XPGained},
		}
	}
	return status, nil
}

// applyArrival moves the user to the destination and pays the arrival XP.
func (s *service) applyArrival(ctx context.Context, tx repository.ActivityTx, activity *domain.Activity) (*domain.XPAwardResult, error) {
	dest, ok := getDestinations()[activity.DestinationKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDestinationNotFound, activity.DestinationKey)
	}

	if err := tx.UpdateUserLocation(ctx, activity.UserID, dest.Key); err != nil {
		return nil, fmt.Errorf("failed to update location: %w", err)
	}

	result, err := s.xpSvc.Award(ctx, tx, activity.UserID, domain.TrackAccount, dest.ArrivalXP)
	if err != nil {
		return nil, fmt.Errorf("failed to award arrival xp: %w", err)
	}
	return result, nil
}

func (s *service) ensureInventory(ctx context.Context, userID string) error {
	_, err := s.inventoryRepo.GetInventory(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrInventoryNotFound) {
		return fmt.Errorf("failed to get inventory: %w", err)
	}
	if _, err := s.inventoryRepo.CreateInventory(ctx, userID, s.baseCapacity); err != nil {
		return fmt.Errorf("failed to create inventory: %w", err)
	}
	return nil
}

func (s *service) buildStatus(activity *domain.Activity, progress domain.ActivityProgress, yield *domain.YieldSummary) *domain.ActivityStatus {
	startedAt := activity.StartedAt
	endsAt := activity.EndsAt
	status := &domain.ActivityStatus{
		Running:          !progress.IsComplete,
		Kind:             activity.Kind,
		VocationKey:      activity.VocationKey,
		DestinationKey:   activity.DestinationKey,
		StartedAt:        &startedAt,
		EndsAt:           &endsAt,
		RemainingSeconds: progress.RemainingSeconds,
		Progress:         progress.Progress,
	}
	if activity.Kind == domain.KindVocation {
		status.UnitProgress = progress.UnitProgress
		status.UnitsClaimable = progress.UnitsClaimable
		if yield != nil {
			status.UnitsClaimable = progress.UnitsClaimable - yield.UnitsClaimed
		}
	}
	if yield != nil && !yield.Empty() {
		status.Yield = yield
	}
	return status
}
