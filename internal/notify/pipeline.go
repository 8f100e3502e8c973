package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"golang-jobs-scryper/internal/entity"
	"golang-jobs-scryper/pkg/logger"
)

// ErrMissingWebhookURL is returned when notification is requested without a
// webhook URL configured. This is a precondition failure: no batching or
// delivery is attempted.
var ErrMissingWebhookURL = errors.New("webhook url is required")

// DeliveryReport summarises one notification run.
type DeliveryReport struct {
	RunID            uuid.UUID
	Matched          int
	BatchesAttempted int
	BatchesSucceeded int
	BatchesFailed    int
	Batches          []BatchResult
}

// AllDelivered reports whether every batch reached the webhook.
func (r *DeliveryReport) AllDelivered() bool {
	return r.BatchesFailed == 0
}

// Pipeline is the notification entry point: it filters records by recency,
// batches them, renders cards and delivers them sequentially.
type Pipeline struct {
	renderer  *Renderer
	deliverer *Deliverer
	log       *logger.Logger
	now       func() time.Time
}

// NewPipeline wires a renderer and deliverer into a pipeline.
func NewPipeline(renderer *Renderer, deliverer *Deliverer, log *logger.Logger) *Pipeline {
	return &Pipeline{
		renderer:  renderer,
		deliverer: deliverer,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Notify selects the records posted within the last hoursBack hours,
// partitions them into messages and delivers them to webhookURL. It returns
// a report covering partial failures; an error is returned only for
// precondition violations, before any delivery is attempted.
func (p *Pipeline) Notify(ctx context.Context, records []entity.JobRecord, hoursBack float64, webhookURL string) (*DeliveryReport, error) {
	if webhookURL == "" {
		return nil, ErrMissingWebhookURL
	}
	if hoursBack < 0 {
		return nil, fmt.Errorf("hours back must be non-negative, got %v", hoursBack)
	}

	now := p.now()
	report := &DeliveryReport{RunID: uuid.New()}

	recent := FilterRecent(records, hoursBack, now)
	report.Matched = len(recent)

	if len(recent) == 0 {
		p.log.Info("No recent jobs to notify",
			logger.Field("run_id", report.RunID.String()),
			logger.Field("hours_back", hoursBack))
		return report, nil
	}

	batches := SplitBatches(recent)
	p.log.Info("Delivering job notifications",
		logger.Field("run_id", report.RunID.String()),
		logger.Field("matched", report.Matched),
		logger.Field("batches", len(batches)))

	msgs := make([]ChatMessage, 0, len(batches))
	for _, batch := range batches {
		msgs = append(msgs, p.renderer.Render(batch, report.Matched, hoursBack, now))
	}

	report.Batches = p.deliverer.Deliver(ctx, webhookURL, msgs)
	report.BatchesAttempted = len(report.Batches)
	for _, b := range report.Batches {
		if b.Status == BatchSucceeded {
			report.BatchesSucceeded++
		} else {
			report.BatchesFailed++
		}
	}

	if report.AllDelivered() {
		p.log.Info("All batches delivered",
			logger.Field("run_id", report.RunID.String()),
			logger.Field("batches", report.BatchesAttempted))
	} else {
		p.log.Warn("Some batches failed to deliver",
			logger.Field("run_id", report.RunID.String()),
			logger.Field("succeeded", report.BatchesSucceeded),
			logger.Field("failed", report.BatchesFailed))
	}

	return report, nil
}
