package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/formiguinhas/ledger/internal/config"
	"github.com/formiguinhas/ledger/internal/ledger"
	"github.com/formiguinhas/ledger/internal/store"
	"github.com/formiguinhas/ledger/pkg/logger"
)

// The scheduler automates the monthly reset the app otherwise leaves to a
// user tapping the clock button: on the first of each month every supporter
// goes back to Pending for the new cycle.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	st, err := store.Open(cfg)
	if err != nil {
		zlog.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	supporterLedger := ledger.NewSupporterLedger(st, cfg, zlog)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		zlog.Fatal("invalid scheduler timezone", zap.Error(err))
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	_, err = c.AddFunc(cfg.Scheduler.ResetCron, func() {
		runMonthlyReset(supporterLedger, zlog)
	})
	if err != nil {
		zlog.Fatal("failed to schedule monthly reset", zap.Error(err))
	}

	// Start the scheduler
	c.Start()
	zlog.Info("scheduler started", zap.String("reset_cron", cfg.Scheduler.ResetCron))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down scheduler")
	c.Stop()
	zlog.Info("scheduler stopped")
}

func runMonthlyReset(supporters *ledger.SupporterLedger, zlog *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Reload first: the server process owns the working copy and may have
	// written since this process started.
	if err := supporters.Load(ctx); err != nil {
		zlog.Error("monthly reset: failed to load supporters", zap.Error(err))
		return
	}

	if err := supporters.ResetForNewMonth(ctx); err != nil {
		zlog.Error("monthly reset failed", zap.Error(err))
		return
	}

	zlog.Info("monthly reset completed")
}
