package repository

import (
	"context"

	"github.com/nymstead/wayfarer/internal/domain"
)

// Item defines the interface for item template persistence
type Item interface {
	GetItemByKey(ctx context.Context, key string) (*domain.Item, error)
	GetItemsByKeys(ctx context.Context, keys []string) ([]domain.Item, error)
	UpsertItem(ctx context.Context, item *domain.Item) error
}
