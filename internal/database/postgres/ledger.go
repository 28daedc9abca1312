package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/repository"
)

// querier is the common query surface of pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const ledgerColumns = `user_id, track, experience, level, updated_at`

func scanLedger(row pgx.Row) (*domain.ExperienceLedger, error) {
	var ledger domain.ExperienceLedger
	var experience pgtype.Numeric
	if err := row.Scan(&ledger.UserID, &ledger.Track, &experience, &ledger.Level, &ledger.UpdatedAt); err != nil {
		return nil, err
	}
	value, err := numericToBigInt(experience)
	if err != nil {
		return nil, err
	}
	ledger.Experience = value
	return &ledger, nil
}

func getLedger(ctx context.Context, q querier, userID string, track domain.Track, forUpdate bool) (*domain.ExperienceLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM experience_ledgers WHERE user_id = $1 AND track = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	ledger, err := scanLedger(q.QueryRow(ctx, query, userID, track))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return ledger, nil
}

func upsertLedger(ctx context.Context, q querier, ledger *domain.ExperienceLedger) error {
	query := `
		INSERT INTO experience_ledgers (user_id, track, experience, level, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, track) DO UPDATE SET
			experience = EXCLUDED.experience,
			level = EXCLUDED.level,
			updated_at = NOW()
	`
	_, err := q.Exec(ctx, query, ledger.UserID, ledger.Track, bigIntToNumeric(ledger.Experience), ledger.Level)
	if err != nil {
		return fmt.Errorf("failed to upsert ledger: %w", err)
	}
	return nil
}

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) repository.Ledger {
	return &LedgerRepository{db: db}
}

// GetLedger retrieves one (user, track) ledger
func (r *LedgerRepository) GetLedger(ctx context.Context, userID string, track domain.Track) (*domain.ExperienceLedger, error) {
	ledger, err := getLedger(ctx, r.db, userID, track, false)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrTrackNotFound, track)
	}
	return ledger, nil
}

// GetLedgers retrieves every ledger a user has
func (r *LedgerRepository) GetLedgers(ctx context.Context, userID string) ([]domain.ExperienceLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM experience_ledgers WHERE user_id = $1 ORDER BY track`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledgers: %w", err)
	}
	defer rows.Close()

	var ledgers []domain.ExperienceLedger
	for rows.Next() {
		ledger, err := scanLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger: %w", err)
		}
		ledgers = append(ledgers, *ledger)
	}
	return ledgers, rows.Err()
}
