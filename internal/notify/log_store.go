package notify

import (
	"context"
	"time"

	"vigil/internal/entities"
)

// LogEntry records one enqueued notification. The (entity, document type,
// expiry) triple plus the calendar day is the dedup boundary: idempotent
// re-evaluation within a day must not re-notify.
type LogEntry struct {
	ID           string
	AlertID      string
	EntityID     string
	DocumentType entities.DocumentType
	ExpiryDate   time.Time
	Priority     string
	SentAt       time.Time
}

// LogStore is the dedup boundary for outbound notifications.
type LogStore interface {
	// ExistsToday reports whether a notification for the triple was already
	// logged on the given calendar day.
	ExistsToday(ctx context.Context, entityID string, doc entities.DocumentType, expiry time.Time, day time.Time) (bool, error)

	// Append records a sent notification.
	Append(ctx context.Context, entry LogEntry) error
}
