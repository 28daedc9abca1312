package repository

import (
	"context"

	"github.com/nymstead/wayfarer/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpsertUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, userID string) error
}

// Ledger exposes experience ledgers outside a claim transaction, for
// read-only track summaries.
type Ledger interface {
	GetLedger(ctx context.Context, userID string, track domain.Track) (*domain.ExperienceLedger, error)
	GetLedgers(ctx context.Context, userID string) ([]domain.ExperienceLedger, error)
}
