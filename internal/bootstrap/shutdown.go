package bootstrap

import (
	"context"
	"log/slog"

	"github.com/nymstead/wayfarer/internal/event"
	"github.com/nymstead/wayfarer/internal/server"
)

// ShutdownComponents holds everything that needs a graceful stop.
type ShutdownComponents struct {
	Server             *server.Server
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops components in dependency order: the HTTP server
// first so no new work arrives, then the event publisher so pending retries
// and dead letters are flushed. Errors are logged but never abort the
// sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if err := components.Server.Shutdown(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Close(); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
