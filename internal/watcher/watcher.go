package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"golang-jobs-scryper/internal/config"
	"golang-jobs-scryper/internal/dedup"
	"golang-jobs-scryper/internal/entity"
	"golang-jobs-scryper/internal/exporter"
	"golang-jobs-scryper/internal/notify"
	"golang-jobs-scryper/internal/scraper"
	"golang-jobs-scryper/pkg/logger"
	"golang-jobs-scryper/pkg/telegram"
	"golang-jobs-scryper/pkg/utils"
)

// Watcher runs the fetch-export-notify cycle on a cron schedule, deduping
// listings already announced in earlier runs.
type Watcher struct {
	cfg      *config.Config
	source   scraper.JobSource
	pipeline *notify.Pipeline
	tracker  *dedup.Tracker
	alerts   telegram.Notifier // optional, nil = disabled
	log      *logger.Logger
	cron     *cron.Cron
}

// New creates a watcher over the given source and pipeline.
func New(cfg *config.Config, source scraper.JobSource, pipeline *notify.Pipeline, tracker *dedup.Tracker, log *logger.Logger) *Watcher {
	return &Watcher{
		cfg:      cfg,
		source:   source,
		pipeline: pipeline,
		tracker:  tracker,
		log:      log,
		cron:     cron.New(),
	}
}

// WithAlerts attaches a Telegram notifier for run digests and failure
// alerts.
func (w *Watcher) WithAlerts(n telegram.Notifier) *Watcher {
	w.alerts = n
	return w
}

// Start registers the schedule and begins running. It returns after the
// scheduler is started; ticks run on the cron goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.cfg.Watch.Schedule, func() {
		if err := w.RunOnce(ctx); err != nil {
			w.log.Error("Watch run failed", logger.ErrorField(err))
			w.alert(telegram.FormatRunError(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", w.cfg.Watch.Schedule, err)
	}

	w.cron.Start()
	w.log.Info("Watcher started", logger.Field("schedule", w.cfg.Watch.Schedule))
	return nil
}

// Stop halts the scheduler and waits for a running tick to finish.
func (w *Watcher) Stop() {
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.log.Info("Watcher stopped")
}

// RunOnce performs one fetch-export-notify cycle.
func (w *Watcher) RunOnce(ctx context.Context) error {
	records, err := scraper.FetchPages(ctx, w.source, 1, w.cfg.Watch.Pages, w.log)
	if err != nil {
		return fmt.Errorf("fetch jobs: %w", err)
	}

	fresh := w.tracker.FilterUnseen(records)
	w.log.Info("Watch tick fetched jobs",
		logger.Field("total", len(records)),
		logger.Field("unseen", len(fresh)))

	if err := exporter.WriteCSV(w.cfg.Output.File, records); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}

	if len(fresh) == 0 {
		return nil
	}

	report, err := w.pipeline.Notify(ctx, fresh, w.cfg.Notifier.HoursBack, w.cfg.Notifier.WebhookURL)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	w.sendDigest(fresh)

	// Leave partially failed runs unmarked so the next tick retries the
	// whole set; a duplicate announcement beats a silently dropped one.
	if report.AllDelivered() {
		w.tracker.Mark(fresh)
	}
	return nil
}

func (w *Watcher) sendDigest(fresh []entity.JobRecord) {
	if w.alerts == nil {
		return
	}
	now := utils.TimeNowUTC()
	recent := notify.FilterRecent(fresh, w.cfg.Notifier.HoursBack, now)
	if len(recent) == 0 {
		return
	}
	for _, msg := range telegram.FormatJobsDigest(recent, now) {
		if err := w.alerts.SendMessage(msg); err != nil {
			w.log.Error("Failed to send Telegram digest", logger.ErrorField(err))
			return
		}
		time.Sleep(time.Second)
	}
}

func (w *Watcher) alert(text string) {
	if w.alerts == nil {
		return
	}
	if err := w.alerts.SendMessage(text); err != nil {
		w.log.Error("Failed to send Telegram alert", logger.ErrorField(err))
	}
}
