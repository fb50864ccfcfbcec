package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nusfitness/fitness-bot/internal/app"
	backendclient "github.com/nusfitness/fitness-bot/internal/backend"
	"github.com/nusfitness/fitness-bot/internal/config"
	"github.com/nusfitness/fitness-bot/internal/controller"
	"github.com/nusfitness/fitness-bot/internal/history"
	"github.com/nusfitness/fitness-bot/internal/model"
	"github.com/nusfitness/fitness-bot/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	// Facility names are part of the token grammar; a bad one would break
	// routing for every user, so reject at startup.
	for _, f := range model.Facilities {
		if err := token.ValidateFacilityName(f.Name); err != nil {
			logger.Fatal("Invalid facility reference data", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := backendclient.NewClient(cfg.BackendURL, logger)

	var charts *backendclient.ChartClient
	if cfg.ChartURL != "" {
		charts = backendclient.NewChartClient(cfg.ChartURL)
	} else {
		logger.Warn("CHART_URL not set, chart view will be unavailable")
	}

	historyStore, cleanup, err := buildHistoryStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize history store", zap.Error(err))
	}
	defer cleanup()

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(botInstance, backend, charts, historyStore, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	logger.Info("Starting NUSFitness bot",
		zap.String("environment", cfg.Environment),
		zap.String("backend_url", cfg.BackendURL))

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}

// buildHistoryStore picks the menu history backend: a local Postgres table
// when HISTORY_DSN is set, the booking backend's menu endpoints otherwise.
func buildHistoryStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (history.Store, func(), error) {
	if cfg.HistoryDSN == "" {
		logger.Info("Using backend-hosted menu history")
		return history.NewHTTPStore(cfg.BackendURL), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.HistoryDSN)
	if err != nil {
		return nil, nil, err
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		pool.Close()
		return nil, nil, err
	}
	migrator.Close()

	logger.Info("Using Postgres menu history")
	return history.NewPostgresStore(pool), pool.Close, nil
}
