// The scheduler worker runs scheduled automation rules. It ticks once at
// startup and then on a fixed interval; ticks are idempotent, so restarts
// and overlapping deployments are safe.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gestor/internal/config"
	"gestor/internal/database"
	"gestor/internal/logger"
	"gestor/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	scheduler := services.NewSchedulerService(dbManager.DB(), appConfig.SchedulerConcurrency)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting scheduler worker, interval %s, concurrency %d",
		appConfig.SchedulerInterval, appConfig.SchedulerConcurrency)

	tick := func() {
		n, err := scheduler.RunDailyTick(ctx, time.Now())
		if err != nil {
			log.Errorw("Scheduler tick failed", "error", err)
			return
		}
		log.Infow("Scheduler tick finished", "transactions_generated", n)
	}

	tick()

	ticker := time.NewTicker(appConfig.SchedulerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down scheduler worker")
			return nil
		case <-ticker.C:
			tick()
		}
	}
}
