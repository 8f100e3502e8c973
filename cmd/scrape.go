package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"golang-jobs-scryper/internal/exporter"
	"golang-jobs-scryper/internal/notify"
	"golang-jobs-scryper/internal/scraper"
	"golang-jobs-scryper/pkg/logger"
)

var (
	scrapePages      int
	scrapeWebhook    bool
	scrapeHours      float64
	scrapeWebhookURL string
	scrapeOutput     string
	scrapeQuiet      bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch job listings and write CSV or send webhook notifications",
	Run:   runScrape,
}

func init() {
	scrapeCmd.Flags().IntVarP(&scrapePages, "pages", "p", 1, "Number of pages to fetch")
	scrapeCmd.Flags().BoolVarP(&scrapeWebhook, "webhook", "w", false, "Send recent jobs to the chat webhook instead of writing CSV")
	scrapeCmd.Flags().Float64Var(&scrapeHours, "hours", 0, "Hours to look back for recent jobs (overrides config)")
	scrapeCmd.Flags().StringVar(&scrapeWebhookURL, "webhook-url", "", "Chat webhook URL (overrides config and WEBHOOK_URL)")
	scrapeCmd.Flags().StringVarP(&scrapeOutput, "output", "o", "", "Output CSV filename (overrides config)")
	scrapeCmd.Flags().BoolVarP(&scrapeQuiet, "quiet", "q", false, "Minimal output")
}

func runScrape(cmd *cobra.Command, args []string) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, appLogger, err := setup(scrapeQuiet)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	if cmd.Flags().Changed("hours") {
		cfg.Notifier.HoursBack = scrapeHours
	}
	if scrapeWebhookURL != "" {
		cfg.Notifier.WebhookURL = scrapeWebhookURL
	}
	if scrapeOutput != "" {
		cfg.Output.File = scrapeOutput
	}

	source, err := newJobSource(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to configure job source", logger.ErrorField(err))
	}

	appLogger.Info("Fetching job listings",
		logger.Field("app", cfg.App.Name),
		logger.Field("pages", scrapePages))

	records, err := scraper.FetchPages(ctx, source, 1, scrapePages, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to fetch job listings", logger.ErrorField(err))
	}

	appLogger.Info("Fetch complete", logger.Field("total_jobs", len(records)))

	if !scrapeWebhook {
		if err := exporter.WriteCSV(cfg.Output.File, records); err != nil {
			appLogger.Fatal("Failed to write CSV", logger.ErrorField(err))
		}
		appLogger.Info("Saved job listings",
			logger.Field("file", cfg.Output.File),
			logger.Field("jobs", len(records)))
		return
	}

	pipeline := buildPipeline(cfg, appLogger)
	report, err := pipeline.Notify(ctx, records, cfg.Notifier.HoursBack, cfg.Notifier.WebhookURL)
	if err != nil {
		if errors.Is(err, notify.ErrMissingWebhookURL) {
			appLogger.Fatal("No webhook URL provided; set notifier.webhook_url, WEBHOOK_URL or --webhook-url")
		}
		appLogger.Fatal("Notification run could not start", logger.ErrorField(err))
	}

	if report.Matched == 0 {
		appLogger.Info("No recent jobs in window",
			logger.Field("hours_back", cfg.Notifier.HoursBack))
		return
	}

	appLogger.Info("Notification run complete",
		logger.Field("run_id", report.RunID.String()),
		logger.Field("matched", report.Matched),
		logger.Field("batches_attempted", report.BatchesAttempted),
		logger.Field("batches_succeeded", report.BatchesSucceeded),
		logger.Field("batches_failed", report.BatchesFailed))
}
