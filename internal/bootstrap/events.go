package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nymstead/wayfarer/internal/config"
	"github.com/nymstead/wayfarer/internal/event"
)

// InitializeEventSystem creates the in-process event bus and wraps it in the
// resilient publisher that retries failed publishes and dead-letters the rest.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = "logs/deadletter.jsonl"
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     event.RetryMaxAttempts,
		RetryDelay:     EventDefaultRetryDelay,
		DeadLetterPath: deadLetterPath,
	})

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", event.RetryMaxAttempts,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)

	return eventBus, publisher, nil
}
