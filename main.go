package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shandysiswandi/usere2e/internal/app"
)

// main runs the save-user scenario once against the configured user service
// and exits non-zero when it fails.
func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := app.Load()
	if err != nil {
		slog.Error("failed to init config", "error", err)
		return 1
	}

	application, err := app.New(ctx, cfg) // Wire config, instrumentation and clients
	if err != nil {
		slog.Error("failed to init harness", "error", err)
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		application.Close(closeCtx) // Flush telemetry before exit
	}()

	if err := application.WaitReady(ctx); err != nil {
		slog.ErrorContext(ctx, "user service is not reachable", "error", err)
		return 1
	}

	if _, err := application.RunSaveUser(ctx); err != nil {
		slog.ErrorContext(ctx, "save user scenario failed", "error", err)
		return 1
	}

	slog.InfoContext(ctx, "save user scenario passed")

	return 0
}
