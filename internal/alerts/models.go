package alerts

import (
	"fmt"
	"time"

	"vigil/internal/entities"
)

// Priority classifies how close a document is to lapsing. Low is only
// produced by the status badge classification; generated alerts are always
// urgent, high, or medium.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities for sorting and worst-case reduction. Higher is
// more severe.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 0
	}
	return -1
}

// AlertRecord is the unit of engine output. Records are recomputed on every
// evaluation pass and never individually persisted; collaborators key read
// flags and notification-sent markers off the deterministic ID.
type AlertRecord struct {
	// ID is a pure function of (entity, document type, expiry date).
	// Regenerating the same inputs always yields the same ID, which is what
	// makes dedup against persisted logs and read-state sets correct without
	// a persisted alert table.
	ID string `json:"id"`

	Kind         entities.Kind         `json:"kind"`
	DocumentType entities.DocumentType `json:"document_type"`
	Priority     Priority              `json:"priority"`

	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`

	ExpiryDate time.Time `json:"expiry_date"`
	// DaysRemaining is signed; negative means the document already lapsed.
	DaysRemaining int `json:"days_remaining"`

	Message string `json:"message"`
	Action  string `json:"action"`

	CreatedAt time.Time `json:"created_at"`
}

// AlertID builds the deterministic identifier shared with the read-state and
// notification-log collaborators.
func AlertID(doc entities.DocumentType, entityID string, expiry time.Time) string {
	return fmt.Sprintf("%s_%s_%s", doc, entityID, expiry.Format("2006-01-02"))
}
