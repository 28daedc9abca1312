package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/repository"
)

// Service defines user account business logic
type Service interface {
	// Register creates a user account, or returns the existing one when the
	// id is already known. Registration is idempotent.
	Register(ctx context.Context, userID, username string) (*domain.User, error)

	// GetUser retrieves a user by id
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// GetTracks returns all experience ledgers for a user
	GetTracks(ctx context.Context, userID string) ([]domain.ExperienceLedger, error)
}

type service struct {
	repo    repository.User
	ledgers repository.Ledger
}

// NewService creates a new user service
func NewService(repo repository.User, ledgers repository.Ledger) Service {
	return &service{repo: repo, ledgers: ledgers}
}

func (s *service) Register(ctx context.Context, userID, username string) (*domain.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	}

	if userID != "" {
		existing, err := s.repo.GetUserByID(ctx, userID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	u := &domain.User{ID: userID, Username: username, LocationKey: domain.DefaultLocationKey}
	if err := s.repo.UpsertUser(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("User registered", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *service) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *service) GetTracks(ctx context.Context, userID string) ([]domain.ExperienceLedger, error) {
	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.ledgers.GetLedgers(ctx, userID)
}
