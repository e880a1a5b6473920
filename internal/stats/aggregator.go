// Package stats reduces alert lists into per-entity severity counts.
package stats

import "vigil/internal/alerts"

// Stats summarizes one alert list. Total and ByDocumentType count alert
// rows; the per-priority fields count entities after the worst-case
// reduction, answering "how many organizations currently have an open
// issue" rather than "how many alert rows exist".
type Stats struct {
	Total  int `json:"total"`
	Urgent int `json:"urgent"`
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`

	ByDocumentType map[string]int `json:"by_document_type"`

	Unread Unread `json:"unread"`
}

// Unread counts entities with unacknowledged urgent or high alerts.
type Unread struct {
	Urgent int `json:"urgent"`
	High   int `json:"high"`
	Total  int `json:"total"`
}

// Aggregate runs two parallel reductions over the same alert list.
//
// Worst-severity counts group alerts by entity, keep only the most severe
// alert per entity, and count entities per priority bucket; an entity with
// three lapsed documents counts once. Unread counts apply the same
// reduction after filtering to urgent/high alerts whose ID is not in
// readIDs. Stateless: everything is recomputed from scratch per call, which
// is why the alert cache upstream matters for cost control.
func Aggregate(list []alerts.AlertRecord, readIDs map[string]struct{}) Stats {
	s := Stats{
		Total:          len(list),
		ByDocumentType: make(map[string]int),
	}

	worst := make(map[string]alerts.Priority)
	unreadWorst := make(map[string]alerts.Priority)
	for _, a := range list {
		s.ByDocumentType[string(a.DocumentType)]++

		if cur, ok := worst[a.EntityID]; !ok || a.Priority.Rank() > cur.Rank() {
			worst[a.EntityID] = a.Priority
		}

		if a.Priority != alerts.PriorityUrgent && a.Priority != alerts.PriorityHigh {
			continue
		}
		if _, read := readIDs[a.ID]; read {
			continue
		}
		if cur, ok := unreadWorst[a.EntityID]; !ok || a.Priority.Rank() > cur.Rank() {
			unreadWorst[a.EntityID] = a.Priority
		}
	}

	for _, p := range worst {
		switch p {
		case alerts.PriorityUrgent:
			s.Urgent++
		case alerts.PriorityHigh:
			s.High++
		case alerts.PriorityMedium:
			s.Medium++
		case alerts.PriorityLow:
			s.Low++
		}
	}

	for _, p := range unreadWorst {
		switch p {
		case alerts.PriorityUrgent:
			s.Unread.Urgent++
		case alerts.PriorityHigh:
			s.Unread.High++
		}
	}
	s.Unread.Total = s.Unread.Urgent + s.Unread.High

	return s
}
