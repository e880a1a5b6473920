package thresholds

import "vigil/internal/entities"

// Thresholds holds the day-count boundaries that classify an alert's priority
// for one document type. Evaluation assumes Urgent <= High <= Medium but does
// not enforce it; each branch compares independently if the invariant is
// violated upstream.
type Thresholds struct {
	Urgent int `json:"urgent_days"`
	High   int `json:"high_days"`
	Medium int `json:"medium_days"`
}

// Set maps every tracked document type to its thresholds. Read-only snapshot;
// the store replaces whole sets, never patches them.
type Set map[entities.DocumentType]Thresholds

// For returns the thresholds for a document type, falling back to the alert
// defaults for types missing from the set.
func (s Set) For(doc entities.DocumentType) Thresholds {
	if t, ok := s[doc]; ok {
		return t
	}
	return alertDefaults[doc]
}

// RawThresholds is the partially specified form stored in settings. Nil
// fields inherit the built-in default, field by field, so adding a threshold
// never silently zeroes the others.
type RawThresholds struct {
	Urgent *int `json:"urgent_days,omitempty"`
	High   *int `json:"high_days,omitempty"`
	Medium *int `json:"medium_days,omitempty"`
}

// RawConfig is the stored configuration blob: per-type partial overrides.
type RawConfig map[entities.DocumentType]RawThresholds

// Merge applies the raw overrides on top of a defaults table and returns a
// complete set covering every tracked document type.
func (r RawConfig) Merge(defaults Set) Set {
	out := make(Set, len(defaults))
	for _, doc := range entities.AllDocumentTypes() {
		t := defaults[doc]
		if raw, ok := r[doc]; ok {
			if raw.Urgent != nil {
				t.Urgent = *raw.Urgent
			}
			if raw.High != nil {
				t.High = *raw.High
			}
			if raw.Medium != nil {
				t.Medium = *raw.Medium
			}
		}
		out[doc] = t
	}
	return out
}
