package thresholds

import "vigil/internal/entities"

// Built-in threshold tables. Two distinct tables exist on purpose: the alert
// table drives alert generation and notifications, the status table drives
// the badge classification shown next to each entity. They are configured
// independently under separate settings keys.
//
// TODO(settings): confirm the status table values with operations before the
// next review cycle; they were carried over unchanged from the previous
// deployment.

// Settings keys for the two configurable tables.
const (
	AlertConfigKey  = "alert_thresholds"
	StatusConfigKey = "status_thresholds"
)

var alertDefaults = Set{
	entities.DocCommercialRegistration: {Urgent: 30, High: 45, Medium: 60},
	entities.DocSocialInsurance:        {Urgent: 15, High: 30, Medium: 45},
	entities.DocResidencePermit:        {Urgent: 7, High: 15, Medium: 30},
	entities.DocContract:               {Urgent: 14, High: 30, Medium: 60},
	entities.DocHealthInsurance:        {Urgent: 14, High: 30, Medium: 45},
}

var statusDefaults = Set{
	entities.DocCommercialRegistration: {Urgent: 15, High: 30, Medium: 90},
	entities.DocSocialInsurance:        {Urgent: 10, High: 20, Medium: 60},
	entities.DocResidencePermit:        {Urgent: 7, High: 14, Medium: 45},
	entities.DocContract:               {Urgent: 10, High: 20, Medium: 90},
	entities.DocHealthInsurance:        {Urgent: 10, High: 20, Medium: 60},
}

// AlertDefaults returns a copy of the built-in alert threshold table.
func AlertDefaults() Set {
	return copySet(alertDefaults)
}

// StatusDefaults returns a copy of the built-in status badge threshold table.
func StatusDefaults() Set {
	return copySet(statusDefaults)
}

// DefaultsFor maps a settings key to its built-in table. Unknown keys get the
// alert table so a misconfigured caller still degrades to sane values.
func DefaultsFor(key string) Set {
	if key == StatusConfigKey {
		return StatusDefaults()
	}
	return AlertDefaults()
}

func copySet(s Set) Set {
	out := make(Set, len(s))
	for doc, t := range s {
		out[doc] = t
	}
	return out
}
