package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nymstead/wayfarer/internal/database/postgres"
	"github.com/nymstead/wayfarer/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// Centralizing construction keeps dependency injection in main readable.
type Repositories struct {
	User      repository.User
	Item      repository.Item
	Inventory repository.Inventory
	Activity  repository.Activity
	Ledger    repository.Ledger
}

// InitializeRepositories creates all repository implementations over the pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:      postgres.NewUserRepository(dbPool),
		Item:      postgres.NewItemRepository(dbPool),
		Inventory: postgres.NewInventoryRepository(dbPool),
		Activity:  postgres.NewActivityRepository(dbPool),
		Ledger:    postgres.NewLedgerRepository(dbPool),
	}
}
