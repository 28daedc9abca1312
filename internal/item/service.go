package item

import (
	"context"
	"fmt"
	"time"

	"github.com/nymstead/wayfarer/internal/domain"
	"github.com/nymstead/wayfarer/internal/logger"
	"github.com/nymstead/wayfarer/internal/repository"
)

const (
	defaultCacheSize = 256
	defaultCacheTTL  = 5 * time.Minute
)

// Service defines the interface for item template lookups
type Service interface {
	GetItemByKey(ctx context.Context, key string) (*domain.Item, error)
	GetItemsByKeys(ctx context.Context, keys []string) ([]domain.Item, error)
	SeedCatalog(ctx context.Context) error
}

type service struct {
	repo  repository.Item
	cache *itemCache
}

// NewService creates a new item catalog service backed by the item repository
// with a read-through cache in front of it.
func NewService(repo repository.Item) Service {
	return &service{
		repo:  repo,
		cache: newItemCache(defaultCacheSize, defaultCacheTTL),
	}
}

func (s *service) GetItemByKey(ctx context.Context, key string) (*domain.Item, error) {
	if item, ok := s.cache.Get(key); ok {
		return item, nil
	}

	item, err := s.repo.GetItemByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, item)
	return item, nil
}

func (s *service) GetItemsByKeys(ctx context.Context, keys []string) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(keys))
	var misses []string
	for _, key := range keys {
		if item, ok := s.cache.Get(key); ok {
			items = append(items, *item)
			continue
		}
		misses = append(misses, key)
	}

	if len(misses) == 0 {
		return items, nil
	}

	fetched, err := s.repo.GetItemsByKeys(ctx, misses)
	if err != nil {
		return nil, err
	}
	for i := range fetched {
		it := fetched[i]
		s.cache.Set(it.Key, &it)
		items = append(items, it)
	}

	return items, nil
}

// SeedCatalog upserts the built-in item templates. Run at startup so fresh
// databases have the resources and tools the vocations reference.
func (s *service) SeedCatalog(ctx context.Context) error {
	log := logger.FromContext(ctx)

	seeds := SeedItems()
	for i := range seeds {
		if err := s.repo.UpsertItem(ctx, &seeds[i]); err != nil {
			return fmt.Errorf("failed to seed item %s: %w", seeds[i].Key, err)
		}
	}

	s.cache.Clear()
	log.Info("item catalog seeded", "count", len(seeds))
	return nil
}
