package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/repository"
)

// UserRepository implements repository.User for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) repository.User {
	return &UserRepository{db: db}
}

// GetUserByID retrieves a user by their id
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, location_key, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	var user domain.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&user.ID, &user.Username, &user.LocationKey, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// UpsertUser inserts a new user or updates an existing one. A new user's
// generated id is written back to the struct.
func (r *UserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		query := `
			INSERT INTO users (username, location_key, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			RETURNING user_id
		`
		if err := r.db.QueryRow(ctx, query, user.Username, user.LocationKey).Scan(&user.ID); err != nil {
			return fmt.Errorf("failed to insert user: %w", err)
		}
		return nil
	}

	query := `
		UPDATE users
		SET username = $1, location_key = $2, updated_at = NOW()
		WHERE user_id = $3
	`
	tag, err := r.db.Exec(ctx, query, user.Username, user.LocationKey, user.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user and, via cascades, their activities, inventory
// and ledgers
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
