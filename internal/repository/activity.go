package repository

import (
	"context"

	"github.com/nymstead/wayfarer/internal/domain"
)

// Activity handles activity persistence. The activities table carries a
// (user_id, kind) primary key, so creating an activity doubles as the
// compare-and-set that enforces "one running activity per kind".
type Activity interface {
	// GetActivity retrieves the running activity of a kind, or
	// domain.ErrActivityNotFound.
	GetActivity(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.Activity, error)

	// Transaction support
	BeginTx(ctx context.Context) (ActivityTx, error)
}

// ActivityTx is the atomic unit every activity mutation runs in: the
// activity row, the inventory slot array and the experience ledgers are
// read-modify-written together or not at all.
type ActivityTx interface {
	Tx
	LedgerStore

	// GetActivityForUpdate retrieves the activity with a FOR UPDATE lock
	GetActivityForUpdate(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.Activity, error)

	// GetAnyActivityForUpdate locks and returns whichever activity the user
	// has running regardless of kind, for conflict checks on start.
	GetAnyActivityForUpdate(ctx context.Context, userID string) (*domain.Activity, error)

	// CreateActivity inserts the activity row. A conflicting row of the same
	// kind surfaces as domain.ErrConflictingActivity.
	CreateActivity(ctx context.Context, activity *domain.Activity) error

	// UpdateUnitsClaimed advances the claimed-units counter
	UpdateUnitsClaimed(ctx context.Context, userID string, kind domain.ActivityKind, unitsClaimed int) error

	// DeleteActivity removes the activity row
	DeleteActivity(ctx context.Context, userID string, kind domain.ActivityKind) error

	// Inventory operations within transaction
	GetInventoryForUpdate(ctx context.Context, userID string) (*domain.Inventory, error)
	UpdateInventory(ctx context.Context, userID string, inventory domain.Inventory) error

	// UpdateUserLocation applies a travel arrival
	UpdateUserLocation(ctx context.Context, userID, locationKey string) error
}

// LedgerStore covers experience ledger access, shared by transactions and
// by the plain ledger repository.
type LedgerStore interface {
	// GetLedgerForUpdate retrieves a (user, track) ledger with a FOR UPDATE
	// lock, or nil when the user has no experience on the track yet.
	GetLedgerForUpdate(ctx context.Context, userID string, track domain.Track) (*domain.ExperienceLedger, error)

	// UpsertLedger writes the experience total and cached level
	UpsertLedger(ctx context.Context, ledger *domain.ExperienceLedger) error
}
