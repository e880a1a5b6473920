package notify

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vigil/internal/entities"
)

// PostgresLogStore persists the notification log in PostgreSQL. Schema:
//
//	notification_log(id uuid primary key, alert_id text, entity_id text,
//	                 doc_type text, expires_on date, priority text,
//	                 sent_at timestamptz)
type PostgresLogStore struct {
	db *sql.DB
}

// NewPostgresLogStore constructs a PostgreSQL-backed notification log.
func NewPostgresLogStore(db *sql.DB) *PostgresLogStore {
	return &PostgresLogStore{db: db}
}

func (s *PostgresLogStore) ExistsToday(ctx context.Context, entityID string, doc entities.DocumentType, expiry, day time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM notification_log
			WHERE entity_id = $1 AND doc_type = $2 AND expires_on = $3
			  AND sent_at::date = $4::date
		)`

	var exists bool
	err := s.db.QueryRowContext(ctx, query,
		entityID, string(doc),
		expiry.Format("2006-01-02"), day.Format("2006-01-02"),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check notification log: %w", err)
	}
	return exists, nil
}

func (s *PostgresLogStore) Append(ctx context.Context, entry LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	const query = `
		INSERT INTO notification_log (id, alert_id, entity_id, doc_type, expires_on, priority, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		entry.ID, entry.AlertID, entry.EntityID, string(entry.DocumentType),
		entry.ExpiryDate.Format("2006-01-02"), entry.Priority, entry.SentAt,
	)
	if err != nil {
		return fmt.Errorf("append notification log: %w", err)
	}
	return nil
}
