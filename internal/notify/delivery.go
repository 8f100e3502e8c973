package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang-jobs-scryper/pkg/logger"
)

// RetryPolicy names the knobs of the per-batch retry loop so they can be
// tuned and asserted on in tests instead of living inline.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Factor      float64
}

// DefaultRetryPolicy matches the documented behavior under sustained 5xx:
// delays of 2s and 4s between the three attempts.
var DefaultRetryPolicy = RetryPolicy{
	MaxAttempts: 3,
	BaseDelay:   2 * time.Second,
	Factor:      2,
}

// Backoff returns the delay before retry number retry (1-based), doubling
// from BaseDelay by Factor.
func (p RetryPolicy) Backoff(retry int) time.Duration {
	d := float64(p.BaseDelay)
	for i := 1; i < retry; i++ {
		d *= p.Factor
	}
	return time.Duration(d)
}

// SendResult is the outcome of one webhook POST.
type SendResult struct {
	StatusCode int
	Err        error
}

// Success reports whether the receiver accepted the message.
func (r SendResult) Success() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Retryable reports whether the failure is worth another attempt:
// transport errors and timeouts, 429, and the 5xx class. Other 4xx
// responses are terminal for the batch.
func (r SendResult) Retryable() bool {
	if r.Err != nil {
		return true
	}
	if r.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return r.StatusCode >= 500
}

// Sender posts one rendered message to the webhook URL.
type Sender interface {
	Send(ctx context.Context, webhookURL string, msg ChatMessage) SendResult
}

// SenderFunc adapts a function to the Sender interface, for tests.
type SenderFunc func(ctx context.Context, webhookURL string, msg ChatMessage) SendResult

// Send implements the Sender interface.
func (f SenderFunc) Send(ctx context.Context, webhookURL string, msg ChatMessage) SendResult {
	return f(ctx, webhookURL, msg)
}

// HTTPSender delivers messages over HTTP with a bounded per-request wait.
type HTTPSender struct {
	client *http.Client
}

// NewHTTPSender creates an HTTP sender with the given per-request timeout.
func NewHTTPSender(timeout time.Duration) *HTTPSender {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSender{client: &http.Client{Timeout: timeout}}
}

// Send posts the card payload as JSON.
func (s *HTTPSender) Send(ctx context.Context, webhookURL string, msg ChatMessage) SendResult {
	body, err := json.Marshal(msg)
	if err != nil {
		return SendResult{Err: fmt.Errorf("marshal card payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return SendResult{Err: fmt.Errorf("create webhook request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return SendResult{Err: fmt.Errorf("post webhook: %w", err)}
	}
	defer resp.Body.Close()

	return SendResult{StatusCode: resp.StatusCode}
}

// BatchStatus is the terminal state of one batch's delivery.
type BatchStatus string

const (
	BatchPending   BatchStatus = "pending"
	BatchSucceeded BatchStatus = "succeeded"
	BatchFailed    BatchStatus = "failed"
)

// BatchResult records how one batch's delivery ended.
type BatchResult struct {
	PartIndex  int
	Status     BatchStatus
	Attempts   int
	StatusCode int
	Err        error
}

// Deliverer sends rendered messages sequentially in part order, retrying
// retryable failures with exponential backoff and pacing successive
// messages to stay under the receiver's burst rate limit. One failed batch
// never blocks the ones after it.
type Deliverer struct {
	sender            Sender
	policy            RetryPolicy
	interMessageDelay time.Duration
	sleep             func(ctx context.Context, d time.Duration)
	log               *logger.Logger
}

// NewDeliverer creates a delivery loop around the given sender.
func NewDeliverer(sender Sender, policy RetryPolicy, interMessageDelay time.Duration, log *logger.Logger) *Deliverer {
	return &Deliverer{
		sender:            sender,
		policy:            policy,
		interMessageDelay: interMessageDelay,
		sleep:             sleepCtx,
		log:               log,
	}
}

// WithSleep overrides the sleep function, for tests.
func (d *Deliverer) WithSleep(sleep func(ctx context.Context, dur time.Duration)) *Deliverer {
	d.sleep = sleep
	return d
}

// Deliver sends every message in order and returns one result per message.
func (d *Deliverer) Deliver(ctx context.Context, webhookURL string, msgs []ChatMessage) []BatchResult {
	results := make([]BatchResult, 0, len(msgs))
	for i, msg := range msgs {
		res := d.deliverOne(ctx, webhookURL, i+1, msg)
		results = append(results, res)

		if res.Status == BatchSucceeded && i < len(msgs)-1 {
			d.sleep(ctx, d.interMessageDelay)
		}
	}
	return results
}

// deliverOne walks one batch through its state machine:
// PENDING -> SUCCESS, or PENDING -> retry (retryable) up to MaxAttempts -> FAILED,
// or PENDING -> FAILED immediately on a non-retryable status.
func (d *Deliverer) deliverOne(ctx context.Context, webhookURL string, partIndex int, msg ChatMessage) BatchResult {
	result := BatchResult{PartIndex: partIndex, Status: BatchPending}

	for attempt := 1; attempt <= d.policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := d.policy.Backoff(attempt - 1)
			d.log.Info("Retrying webhook message",
				logger.Field("part", partIndex),
				logger.Field("attempt", attempt),
				logger.Field("delay", delay.String()))
			d.sleep(ctx, delay)
		}

		send := d.sender.Send(ctx, webhookURL, msg)
		result.Attempts = attempt
		result.StatusCode = send.StatusCode
		result.Err = send.Err

		if send.Success() {
			result.Status = BatchSucceeded
			d.log.Info("Webhook message delivered",
				logger.Field("part", partIndex),
				logger.Field("attempts", attempt))
			return result
		}

		if !send.Retryable() {
			result.Status = BatchFailed
			d.log.Error("Webhook rejected message, not retrying",
				logger.Field("part", partIndex),
				logger.Field("status_code", send.StatusCode))
			return result
		}

		d.log.Warn("Webhook message attempt failed",
			logger.Field("part", partIndex),
			logger.Field("attempt", attempt),
			logger.Field("status_code", send.StatusCode),
			logger.ErrorField(send.Err))
	}

	result.Status = BatchFailed
	d.log.Error("Webhook message failed after max attempts",
		logger.Field("part", partIndex),
		logger.Field("attempts", d.policy.MaxAttempts))
	return result
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
