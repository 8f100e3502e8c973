package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"golang-jobs-scryper/internal/dedup"
	"golang-jobs-scryper/internal/watcher"
	"golang-jobs-scryper/pkg/logger"
	"golang-jobs-scryper/pkg/telegram"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the fetch-export-notify cycle on a schedule",
	Run:   runWatch,
}

func runWatch(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, appLogger, err := setup(false)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	source, err := newJobSource(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to configure job source", logger.ErrorField(err))
	}

	pipeline := buildPipeline(cfg, appLogger)
	tracker := dedup.NewTracker(cfg.Watch.DedupTTL)

	w := watcher.New(cfg, source, pipeline, tracker, appLogger)
	if cfg.Telegram.BotToken != "" {
		alerts, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		w = w.WithAlerts(alerts)
	}

	if err := w.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start watcher", logger.ErrorField(err))
	}

	appLogger.Info("Watch mode started. Waiting for scheduled runs...",
		logger.Field("app", cfg.App.Name),
		logger.Field("schedule", cfg.Watch.Schedule))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down watcher...")
	cancel()
	w.Stop()
	appLogger.Info("Watcher stopped.")
}
