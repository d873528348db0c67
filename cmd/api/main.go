package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/spendy/internal/config"
	"github.com/MrJamesThe3rd/spendy/internal/export"
	spendyHttp "github.com/MrJamesThe3rd/spendy/internal/http"
	exportHandler "github.com/MrJamesThe3rd/spendy/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/spendy/internal/http/importcsv"
	ledgerHandler "github.com/MrJamesThe3rd/spendy/internal/http/ledger"
	themeHandler "github.com/MrJamesThe3rd/spendy/internal/http/theme"
	txHandler "github.com/MrJamesThe3rd/spendy/internal/http/transaction"
	"github.com/MrJamesThe3rd/spendy/internal/importer"
	"github.com/MrJamesThe3rd/spendy/internal/ledger"
	"github.com/MrJamesThe3rd/spendy/internal/logging"
	"github.com/MrJamesThe3rd/spendy/internal/persistence"
	"github.com/MrJamesThe3rd/spendy/internal/storage"
	"github.com/MrJamesThe3rd/spendy/internal/theme"
	"github.com/MrJamesThe3rd/spendy/internal/tracker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Format, cfg.LogLevel())
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeStorage, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeStorage()

	writer := persistence.NewWriter(
		persistence.NewGateway(kv, logging.Component(logger, "persistence")),
		cfg.Storage.QueueSize,
		logger,
	)

	store := ledger.NewStore(writer, ledger.WithLogger(logging.Component(logger, "ledger")))
	store.Initialize(ctx)

	var (
		trackerService = tracker.New(store, logging.Component(logger, "tracker"))
		themeService   = theme.NewService(ctx, writer)
		importService  = importer.NewService()
		exportService  = export.NewService(trackerService)
	)

	router := spendyHttp.New(
		cfg.Server.AllowedOrigins,
		txHandler.NewHandler(trackerService),
		ledgerHandler.NewHandler(trackerService),
		themeHandler.NewHandler(themeService),
		importHandler.NewHandler(importService, trackerService),
		exportHandler.NewHandler(exportService),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", "addr", srv.Addr, "transactions", store.Len())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()

		serverErr := srv.Shutdown(shutdownCtx)

		if err := writer.Close(shutdownCtx); err != nil {
			return errors.Join(serverErr, fmt.Errorf("flush pending writes: %w", err))
		}

		return serverErr
	})

	return g.Wait()
}
