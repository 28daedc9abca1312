package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/nymstead/wayfarer/internal/item"
	"github.com/nymstead/wayfarer/internal/repository"
)

// SeedCatalog populates the item templates the engine references. When a
// catalog file is present it is schema-validated and synced; otherwise the
// built-in catalog is upserted so a fresh database still works out of the box.
func SeedCatalog(ctx context.Context, repo repository.Item, itemSvc item.Service) error {
	slog.Info(LogMsgSeedingItems)

	if _, err := os.Stat(item.ConfigPath); err == nil {
		loader := item.NewLoader()

		config, err := loader.Load(item.ConfigPath)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSeedItems, err)
		}
		if err := loader.Validate(config); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSeedItems, err)
		}
		if _, err := loader.SyncToDatabase(ctx, config, repo); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedSeedItems, err)
		}
	} else if err := itemSvc.SeedCatalog(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSeedItems, err)
	}

	slog.Info(LogMsgItemsSeeded)
	return nil
}
