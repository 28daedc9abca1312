package user

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nymstead/wayfarer/internal/domain"
)

// fakeUserRepo is an in-memory repository.User.
type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if u, ok := f.users[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UpsertUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = "generated-" + user.Username
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, userID string) error {
	delete(f.users, userID)
	return nil
}

// fakeLedgerRepo is an in-memory repository.Ledger.
type fakeLedgerRepo struct {
	ledgers map[string][]domain.ExperienceLedger
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{ledgers: make(map[string][]domain.ExperienceLedger)}
}

func (f *fakeLedgerRepo) GetLedger(ctx context.Context, userID string, track domain.Track) (*domain.ExperienceLedger, error) {
	for _, l := range f.ledgers[userID] {
		if l.Track == track {
			return &l, nil
		}
	}
	return nil, domain.ErrTrackNotFound
}

func (f *fakeLedgerRepo) GetLedgers(ctx context.Context, userID string) ([]domain.ExperienceLedger, error) {
	return f.ledgers[userID], nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new account at the default location", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, newFakeLedgerRepo())

		u, err := svc.Register(ctx, "", "Rowan")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "Rowan", u.Username)
		assert.Equal(t, domain.DefaultLocationKey, u.LocationKey)
		assert.Contains(t, repo.users, u.ID)
	})

	t.Run("is idempotent for a known id", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, newFakeLedgerRepo())
		repo.users["user1"] = &domain.User{
			ID:          "user1",
			Username:    "Rowan",
			LocationKey: "emberfall",
		}

		u, err := svc.Register(ctx, "user1", "SomebodyElse")
		require.NoError(t, err)

		// The existing account wins: no rename, no relocation.
		assert.Equal(t, "Rowan", u.Username)
		assert.Equal(t, "emberfall", u.LocationKey)
		assert.Len(t, repo.users, 1)
	})

	t.Run("trims the username", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, newFakeLedgerRepo())

		u, err := svc.Register(ctx, "", "  Rowan  ")
		require.NoError(t, err)
		assert.Equal(t, "Rowan", u.Username)
	})

	t.Run("rejects an empty username", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo, newFakeLedgerRepo())

		_, err := svc.Register(ctx, "", "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, repo.users)
	})
}

func TestGetUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo, newFakeLedgerRepo())
	repo.users["user1"] = &domain.User{ID: "user1", Username: "Rowan"}

	u, err := svc.GetUser(ctx, "user1")
	require.NoError(t, err)
	assert.Equal(t, "Rowan", u.Username)

	_, err = svc.GetUser(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestGetTracks(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	ledgers := newFakeLedgerRepo()
	svc := NewService(repo, ledgers)

	repo.users["user1"] = &domain.User{ID: "user1", Username: "Rowan"}
	ledgers.ledgers["user1"] = []domain.ExperienceLedger{
		{UserID: "user1", Track: domain.TrackAccount, Experience: big.NewInt(500), Level: 2},
		{UserID: "user1", Track: domain.VocationTrack(domain.VocationFishing), Experience: big.NewInt(120), Level: 0},
	}

	tracks, err := svc.GetTracks(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, domain.TrackAccount, tracks[0].Track)
	assert.Equal(t, "500", tracks[0].Experience.String())

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetTracks(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("user with no experience yet", func(t *testing.T) {
		repo.users["user2"] = &domain.User{ID: "user2", Username: "Ash"}
		tracks, err := svc.GetTracks(ctx, "user2")
		require.NoError(t, err)
		assert.Empty(t, tracks)
	})
}
