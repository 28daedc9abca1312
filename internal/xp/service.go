package xp

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/metrics"
	"github.com/nymstead/wayfarer/internal/repository"
)

// Service awards experience against per-track ledgers. Awards run inside the
// caller's transaction: the store passed in is expected to hold row locks.
type Service interface {
	// Award credits amount on a track and refreshes the cached level.
	// Non-positive amounts are a no-op that still reports the current level.
	Award(ctx context.Context, store repository.LedgerStore, userID string, track domain.Track, amount int) (*domain.XPAwardResult, error)

	// Curve exposes the level table for a track.
	Curve(track domain.Track) *Curve
}

type service struct {
	curves *Curves
}

// NewService creates a new experience service
func NewService(curves *Curves) Service {
	return &service{curves: curves}
}

func (s *service) Curve(track domain.Track) *Curve {
	return s.curves.ForTrack(track)
}

func (s *service) Award(ctx context.Context, store repository.LedgerStore, userID string, track domain.Track, amount int) (*domain.XPAwardResult, error) {
	ledger, err := store.GetLedgerForUpdate(ctx, userID, track)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	if ledger == nil {
		ledger = &domain.ExperienceLedger{
			UserID:     userID,
			Track:      track,
			Experience: new(big.Int),
		}
	}

	oldLevel := ledger.Level

	if amount <= 0 {
		return &domain.XPAwardResult{
			Track:    track,
			NewXP:    ledger.Experience.String(),
			OldLevel: oldLevel,
			NewLevel: oldLevel,
		}, nil
	}

	ledger.Experience = new(big.Int).Add(ledger.Experience, big.NewInt(int64(amount)))
	curve := s.curves.ForTrack(track)
	newLevel := curve.LevelForTotalXP(ledger.Experience)
	ledger.Level = newLevel
	ledger.UpdatedAt = time.Now()

	if err := store.UpsertLedger(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to upsert ledger: %w", err)
	}

	metrics.XPAwarded.WithLabelValues(string(track)).Add(float64(amount))
	if newLevel > oldLevel {
		metrics.LevelUps.WithLabelValues(string(track)).Inc()
		logger.FromContext(ctx).Info("Level up",
			"user_id", userID, "track", track, "old_level", oldLevel, "new_level", newLevel)
	}

	return &domain.XPAwardResult{
		Track:     track,
		XPGained:  amount,
		NewXP:     ledger.Experience.String(),
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}, nil
}
