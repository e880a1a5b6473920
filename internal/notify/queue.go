package notify

import (
	"context"
	"log/slog"
	"time"
)

// Payload is the message handed to the outbound queue. Delivery itself
// (rendering, mail transport, retries) belongs to the consumer on the other
// side of the topic.
type Payload struct {
	MessageID    string    `json:"message_id"`
	AlertID      string    `json:"alert_id"`
	EntityID     string    `json:"entity_id"`
	EntityName   string    `json:"entity_name"`
	Kind         string    `json:"kind"`
	DocumentType string    `json:"document_type"`
	Priority     string    `json:"priority"`
	ExpiryDate   string    `json:"expiry_date"`
	Message      string    `json:"message"`
	Action       string    `json:"action"`
	EnqueuedAt   time.Time `json:"enqueued_at"`
}

// Queue enqueues notification payloads. Fire-and-forget from the engine's
// point of view: failures are the dispatcher's to log and swallow.
type Queue interface {
	Enqueue(ctx context.Context, payload Payload) error
}

// LoggingQueue writes payloads to the log instead of a broker. Used when no
// Kafka brokers are configured.
type LoggingQueue struct {
	Logger *slog.Logger
}

func (q LoggingQueue) Enqueue(ctx context.Context, payload Payload) error {
	q.Logger.InfoContext(ctx, "notification (no broker configured)",
		"alert_id", payload.AlertID,
		"priority", payload.Priority,
		"message", payload.Message,
	)
	return nil
}
