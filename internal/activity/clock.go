package activity

import (
	"time"

	"github.com/nymstead/wayfarer/internal/domain"
)

// The clock is pure arithmetic over timestamps: no I/O, no side effects.
// All time-based state advances lazily when a caller asks, so an unwatched
// activity simply accumulates claimable units until the next read.

// Compute derives unit-based progress for a vocational activity.
// unitSeconds below one second is floored to one to avoid division by zero;
// a zero-duration window reports full progress and nothing remaining.
func Compute(startedAt, endsAt time.Time, unitSeconds, unitsClaimed int, now time.Time) domain.ActivityProgress {
	duration := endsAt.Sub(startedAt)
	if duration < 0 {
		duration = 0
	}
	elapsed := clampDuration(now.Sub(startedAt), 0, duration)

	if unitSeconds < 1 {
		unitSeconds = 1
	}
	unit := time.Duration(unitSeconds) * time.Second

	unitsTotal := int(elapsed / unit)
	unitsClaimable := unitsTotal - unitsClaimed
	if unitsClaimable < 0 {
		unitsClaimable = 0
	}

	unitProgress := 1.0
	progress := 1.0
	if duration > 0 {
		unitProgress = float64(elapsed%unit) / float64(unit)
		progress = float64(elapsed) / float64(duration)
	}

	return domain.ActivityProgress{
		ElapsedSeconds:   int(elapsed / time.Second),
		RemainingSeconds: ceilSeconds(duration - elapsed),
		UnitsTotal:       unitsTotal,
		UnitsClaimable:   unitsClaimable,
		UnitProgress:     unitProgress,
		Progress:         progress,
		IsComplete:       !now.Before(endsAt),
	}
}

// ComputeTravel derives continuous progress for a travel activity. Travel has
// no sub-units, only overall completion.
func ComputeTravel(startedAt, endsAt, now time.Time) domain.ActivityProgress {
	duration := endsAt.Sub(startedAt)
	if duration < 0 {
		duration = 0
	}
	elapsed := clampDuration(now.Sub(startedAt), 0, duration)

	progress := 1.0
	if duration > 0 {
		progress = float64(elapsed) / float64(duration)
	}

	return domain.ActivityProgress{
		ElapsedSeconds:   int(elapsed / time.Second),
		RemainingSeconds: ceilSeconds(duration - elapsed),
		Progress:         progress,
		IsComplete:       !now.Before(endsAt),
	}
}

// ComputeFor dispatches on the activity kind.
func ComputeFor(a *domain.Activity, now time.Time) domain.ActivityProgress {
	switch a.Kind {
	case domain.KindVocation:
		return Compute(a.StartedAt, a.EndsAt, a.UnitSeconds, a.UnitsClaimed, now)
	case domain.KindTravel:
		return ComputeTravel(a.StartedAt, a.EndsAt, now)
	default:
		// Unknown kinds never reach the clock; treat as already complete.
		return domain.ActivityProgress{Progress: 1, UnitProgress: 1, IsComplete: true}
	}
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

func ceilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	secs := d / time.Second
	if d%time.Second != 0 {
		secs++
	}
	return int(secs)
}
