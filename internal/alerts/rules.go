package alerts

import (
	"fmt"
	"time"

	"vigil/internal/entities"
	"vigil/internal/thresholds"
)

// Evaluate applies the expiry rules for one document type to one entity.
// This is pure domain logic - no I/O, no side effects, no retained state;
// every call reclassifies fresh from now.
//
// Returns nil when the document is not tracked for the entity or the expiry
// is still comfortably beyond the medium threshold.
func Evaluate(entity entities.Entity, doc entities.DocumentType, set thresholds.Set, now time.Time) *AlertRecord {
	expiry, ok := entity.ExpiryFor(doc)
	if !ok {
		return nil
	}

	t := set.For(doc)
	days := daysUntil(expiry, now)
	if days > t.Medium {
		return nil
	}

	// Classification order is fixed: lapsed is urgent regardless of the
	// configured boundaries.
	var priority Priority
	switch {
	case days < 0:
		priority = PriorityUrgent
	case days <= t.Urgent:
		priority = PriorityUrgent
	case days <= t.High:
		priority = PriorityHigh
	default:
		priority = PriorityMedium
	}

	return &AlertRecord{
		ID:            AlertID(doc, entity.ID, expiry),
		Kind:          entity.Kind,
		DocumentType:  doc,
		Priority:      priority,
		EntityID:      entity.ID,
		EntityName:    entity.Name,
		ExpiryDate:    expiry,
		DaysRemaining: days,
		Message:       renderMessage(entity.Name, doc, days),
		Action:        renderAction(priority, doc),
		CreatedAt:     now,
	}
}

// Classify is the status badge variant of Evaluate. It uses its own threshold
// table and always returns a priority: documents beyond the medium boundary
// (or untracked) classify as low rather than producing no result.
func Classify(entity entities.Entity, doc entities.DocumentType, set thresholds.Set, now time.Time) Priority {
	expiry, ok := entity.ExpiryFor(doc)
	if !ok {
		return PriorityLow
	}

	t := set.For(doc)
	days := daysUntil(expiry, now)
	switch {
	case days < 0, days <= t.Urgent:
		return PriorityUrgent
	case days <= t.High:
		return PriorityHigh
	case days <= t.Medium:
		return PriorityMedium
	}
	return PriorityLow
}

// daysUntil computes signed whole days between two calendar dates. Time
// components are dropped so an expiry "today" is day zero regardless of the
// clock time of either side.
func daysUntil(expiry, now time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(n) / (24 * time.Hour))
}

func renderMessage(name string, doc entities.DocumentType, days int) string {
	label := doc.Label()
	switch {
	case days < 0:
		return fmt.Sprintf("%s: %s lapsed %d days ago", name, label, -days)
	case days == 0:
		return fmt.Sprintf("%s: %s expires today", name, label)
	case days == 1:
		return fmt.Sprintf("%s: %s expires tomorrow", name, label)
	default:
		return fmt.Sprintf("%s: %s expires in %d days", name, label, days)
	}
}

func renderAction(priority Priority, doc entities.DocumentType) string {
	label := doc.Label()
	switch priority {
	case PriorityUrgent:
		return fmt.Sprintf("Renew the %s immediately", label)
	case PriorityHigh:
		return fmt.Sprintf("Start the %s renewal now", label)
	default:
		return fmt.Sprintf("Schedule the %s renewal", label)
	}
}
