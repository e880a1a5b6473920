package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"vigil/internal/alerts"
)

// Dispatcher offers urgent and high alerts to the outbound queue, deduped
// against the notification log.
//
// Best-effort side channel: no Dispatch failure ever reaches the caller or
// affects the alert list. A dedup-check failure is treated as "not a
// duplicate" - the cost of a missed compliance alert outweighs a duplicate
// mail.
type Dispatcher struct {
	queue   Queue
	log     LogStore
	logger  *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewDispatcher constructs a dispatcher. now defaults to time.Now.
func NewDispatcher(queue Queue, log LogStore, logger *slog.Logger, metrics *Metrics) *Dispatcher {
	return &Dispatcher{
		queue:   queue,
		log:     log,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// WithClock overrides the dispatcher clock for tests.
func (d *Dispatcher) WithClock(now func() time.Time) *Dispatcher {
	d.now = now
	return d
}

// Dispatch filters the list to urgent and high alerts and enqueues each one
// that has not already been notified today.
func (d *Dispatcher) Dispatch(ctx context.Context, list []alerts.AlertRecord) {
	ctx, span := otel.Tracer("vigil/notify").Start(ctx, "notify.dispatch")
	defer span.End()

	var sent int
	for _, a := range list {
		if a.Priority != alerts.PriorityUrgent && a.Priority != alerts.PriorityHigh {
			continue
		}
		if d.dispatchOne(ctx, a) {
			sent++
		}
	}
	span.SetAttributes(attribute.Int("notify.sent", sent))
}

func (d *Dispatcher) dispatchOne(ctx context.Context, a alerts.AlertRecord) bool {
	day := d.now()

	exists, err := d.log.ExistsToday(ctx, a.EntityID, a.DocumentType, a.ExpiryDate, day)
	if err != nil {
		// Fail open toward sending.
		d.logger.WarnContext(ctx, "notification dedup check failed, sending anyway",
			"alert_id", a.ID,
			"error", err,
		)
	}
	if exists {
		d.metrics.incDeduped()
		return false
	}

	payload := Payload{
		MessageID:    uuid.NewString(),
		AlertID:      a.ID,
		EntityID:     a.EntityID,
		EntityName:   a.EntityName,
		Kind:         string(a.Kind),
		DocumentType: string(a.DocumentType),
		Priority:     string(a.Priority),
		ExpiryDate:   a.ExpiryDate.Format("2006-01-02"),
		Message:      a.Message,
		Action:       a.Action,
		EnqueuedAt:   day,
	}
	if err := d.queue.Enqueue(ctx, payload); err != nil {
		d.metrics.incFailed()
		d.logger.ErrorContext(ctx, "notification enqueue failed",
			"alert_id", a.ID,
			"priority", a.Priority,
			"error", err,
		)
		return false
	}

	entry := LogEntry{
		ID:           payload.MessageID,
		AlertID:      a.ID,
		EntityID:     a.EntityID,
		DocumentType: a.DocumentType,
		ExpiryDate:   a.ExpiryDate,
		Priority:     string(a.Priority),
		SentAt:       day,
	}
	if err := d.log.Append(ctx, entry); err != nil {
		// The notification went out; a missing log row only risks one
		// duplicate tomorrow's worth of dedup, so log and move on.
		d.logger.WarnContext(ctx, "notification log append failed",
			"alert_id", a.ID,
			"error", err,
		)
	}
	d.metrics.incSent()
	return true
}
