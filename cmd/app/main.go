package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nymstead/wayfarer/internal/activity"
	"github.com/nymstead/wayfarer/internal/bootstrap"
	"github.com/nymstead/wayfarer/internal/concurrency"
	"github.com/nymstead/wayfarer/internal/config"
	"github.com/nymstead/wayfarer/internal/database"
	"github.com/nymstead/wayfarer/internal/inventory"
	"github.com/nymstead/wayfarer/internal/item"
	"github.com/nymstead/wayfarer/internal/server"
	"github.com/nymstead/wayfarer/internal/user"
	"github.com/nymstead/wayfarer/internal/xp"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), 10, time.Minute, 5*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	repos := bootstrap.InitializeRepositories(dbPool)

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize event system: %v", err)
	}
	bootstrap.RegisterEventHandlers(eventBus)

	itemService := item.NewService(repos.Item)
	if err := bootstrap.SeedCatalog(context.Background(), repos.Item, itemService); err != nil {
		log.Fatalf("Failed to seed item catalog: %v", err)
	}

	locks := concurrency.NewLockManager()
	xpService := xp.NewService(xp.NewCurves())
	userService := user.NewService(repos.User, repos.Ledger)
	inventoryService := inventory.NewService(repos.Inventory, itemService, publisher, locks, cfg.BaseCapacity)
	activityService := activity.NewService(
		repos.Activity,
		repos.Inventory,
		repos.User,
		itemService,
		xpService,
		publisher,
		locks,
		time.Duration(cfg.MaxSessionHours)*time.Hour,
		cfg.BaseCapacity,
	)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, activityService, inventoryService, userService)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		ResilientPublisher: publisher,
	})
}
