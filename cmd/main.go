package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"golang-jobs-scryper/internal/config"
	"golang-jobs-scryper/internal/notify"
	"golang-jobs-scryper/internal/scraper"
	"golang-jobs-scryper/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "jobs-scryper",
	Short: "A CLI for fetching job listings and sending chat notifications",
	Long:  `jobs-scryper fetches job listings from a careers-search API, writes them to CSV and can deliver batched Google Chat notifications for recent postings.`,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing jobs-scryper CLI: %s\n", err)
		os.Exit(1)
	}
}

func setup(quiet bool) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.Logger.Level
	if quiet {
		level = "warn"
	}
	appLogger, err := logger.New(level, cfg.Logger.Encoding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	// WEBHOOK_URL is the conventional secret name in CI environments.
	if cfg.Notifier.WebhookURL == "" {
		cfg.Notifier.WebhookURL = os.Getenv("WEBHOOK_URL")
	}

	return cfg, appLogger, nil
}

// newJobSource picks the configured source: the careers search API when a
// base URL is set, RSS feeds otherwise.
func newJobSource(cfg *config.Config, log *logger.Logger) (scraper.JobSource, error) {
	if cfg.Source.BaseURL != "" {
		return scraper.NewCareersClient(cfg, log), nil
	}
	if len(cfg.Source.Feeds) > 0 {
		return scraper.NewRSSSource(cfg.Source.Feeds, log), nil
	}
	return nil, fmt.Errorf("no job source configured: set source.base_url or source.feeds")
}

func buildPipeline(cfg *config.Config, log *logger.Logger) *notify.Pipeline {
	renderer := notify.NewRenderer(cfg.Notifier.Title, cfg.Notifier.ImageURL)
	sender := notify.NewHTTPSender(cfg.Notifier.RequestTimeout)
	policy := notify.RetryPolicy{
		MaxAttempts: cfg.Notifier.Retry.MaxAttempts,
		BaseDelay:   cfg.Notifier.Retry.BaseDelay,
		Factor:      cfg.Notifier.Retry.Factor,
	}
	deliverer := notify.NewDeliverer(sender, policy, cfg.Notifier.InterMessageDelay, log)
	return notify.NewPipeline(renderer, deliverer, log)
}
