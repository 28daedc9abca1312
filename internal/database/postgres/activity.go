package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/repository"
)

const activityColumns = `user_id, kind, vocation_key, resource_key, location_key, destination_key, started_at, ends_at, unit_seconds, units_claimed`

// ActivityRepository implements repository.Activity for PostgreSQL
type ActivityRepository struct {
	db *pgxpool.Pool
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *pgxpool.Pool) repository.Activity {
	return &ActivityRepository{db: db}
}

func scanActivity(row pgx.Row) (*domain.Activity, error) {
	var a domain.Activity
	var kind, vocationKey string
	err := row.Scan(
		&a.UserID, &kind, &vocationKey, &a.ResourceKey, &a.LocationKey,
		&a.DestinationKey, &a.StartedAt, &a.EndsAt, &a.UnitSeconds,
		&a.UnitsClaimed)
	if err != nil {
		return nil, err
	}
	a.Kind = domain.ActivityKind(kind)
	a.VocationKey = domain.VocationKey(vocationKey)
	return &a, nil
}

func getActivity(ctx context.Context, q querier, userID string, kind domain.ActivityKind, forUpdate bool) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE user_id = $1 AND kind = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	activity, err := scanActivity(q.QueryRow(ctx, query, userID, string(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

// GetActivity retrieves the running activity of a kind
func (r *ActivityRepository) GetActivity(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.Activity, error) {
	return getActivity(ctx, r.db, userID, kind, false)
}

// BeginTx starts a transaction and returns an ActivityTx
func (r *ActivityRepository) BeginTx(ctx context.Context) (repository.ActivityTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin activity transaction: %w", err)
	}
	return &activityTx{tx: tx}, nil
}

// activityTx implements repository.ActivityTx. It spans the activity row,
// the inventory and the experience ledgers so a claim is one atomic unit.
type activityTx struct {
	tx pgx.Tx
}

func (t *activityTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *activityTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *activityTx) GetActivityForUpdate(ctx context.Context, userID string, kind domain.ActivityKind) (*domain.Activity, error) {
	return getActivity(ctx, t.tx, userID, kind, true)
}

func (t *activityTx) GetAnyActivityForUpdate(ctx context.Context, userID string) (*domain.Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE user_id = $1 LIMIT 1 FOR UPDATE`
	activity, err := scanActivity(t.tx.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

func (t *activityTx) CreateActivity(ctx context.Context, activity *domain.Activity) error {
	query := `
		INSERT INTO activities (user_id, kind, vocation_key, resource_key, location_key, destination_key, started_at, ends_at, unit_seconds, units_claimed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := t.tx.Exec(ctx, query,
		activity.UserID, string(activity.Kind), string(activity.VocationKey),
		activity.ResourceKey, activity.LocationKey, activity.DestinationKey,
		activity.StartedAt, activity.EndsAt, activity.UnitSeconds,
		activity.UnitsClaimed)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrConflictingActivity, activity.Kind)
		}
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (t *activityTx) UpdateUnitsClaimed(ctx context.Context, userID string, kind domain.ActivityKind, unitsClaimed int) error {
	query := `UPDATE activities SET units_claimed = $1 WHERE user_id = $2 AND kind = $3`
	tag, err := t.tx.Exec(ctx, query, unitsClaimed, userID, string(kind))
	if err != nil {
		return fmt.Errorf("failed to update claimed units: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (t *activityTx) DeleteActivity(ctx context.Context, userID string, kind domain.ActivityKind) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM activities WHERE user_id = $1 AND kind = $2`, userID, string(kind))
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (t *activityTx) GetInventoryForUpdate(ctx context.Context, userID string) (*domain.Inventory, error) {
	return getInventory(ctx, t.tx, userID, true)
}

func (t *activityTx) UpdateInventory(ctx context.Context, userID string, inventory domain.Inventory) error {
	return updateInventory(ctx, t.tx, userID, inventory)
}

func (t *activityTx) GetLedgerForUpdate(ctx context.Context, userID string, track domain.Track) (*domain.ExperienceLedger, error) {
	return getLedger(ctx, t.tx, userID, track, true)
}

func (t *activityTx) UpsertLedger(ctx context.Context, ledger *domain.ExperienceLedger) error {
	return upsertLedger(ctx, t.tx, ledger)
}

func (t *activityTx) UpdateUserLocation(ctx context.Context, userID, locationKey string) error {
	query := `UPDATE users SET location_key = $1, updated_at = NOW() WHERE user_id = $2`
	tag, err := t.tx.Exec(ctx, query, locationKey, userID)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
