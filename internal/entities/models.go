package entities

import "time"

// Kind distinguishes the two tracked entity families. They share evaluation
// mechanics but are monitored for disjoint document types and cached in
// separate slots.
type Kind string

const (
	KindOrganization Kind = "organization"
	KindIndividual   Kind = "individual"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindOrganization || k == KindIndividual
}

// DocumentType identifies one trackable expiry concern. The set is closed;
// evaluation iterates DocumentTypesFor rather than discovering types
// dynamically.
type DocumentType string

const (
	DocCommercialRegistration DocumentType = "commercial_registration"
	DocSocialInsurance        DocumentType = "social_insurance"
	DocResidencePermit        DocumentType = "residence_permit"
	DocContract               DocumentType = "contract"
	DocHealthInsurance        DocumentType = "health_insurance"
)

// Label returns the operator-facing name for the document type.
func (d DocumentType) Label() string {
	switch d {
	case DocCommercialRegistration:
		return "commercial registration"
	case DocSocialInsurance:
		return "social insurance subscription"
	case DocResidencePermit:
		return "residence permit"
	case DocContract:
		return "contract"
	case DocHealthInsurance:
		return "health insurance"
	}
	return string(d)
}

var (
	organizationDocs = []DocumentType{DocCommercialRegistration, DocSocialInsurance}
	individualDocs   = []DocumentType{DocResidencePermit, DocContract, DocHealthInsurance}
)

// DocumentTypesFor returns the document types applicable to a kind, in the
// fixed evaluation order.
func DocumentTypesFor(kind Kind) []DocumentType {
	switch kind {
	case KindOrganization:
		return organizationDocs
	case KindIndividual:
		return individualDocs
	}
	return nil
}

// AllDocumentTypes lists every tracked document type across both kinds.
func AllDocumentTypes() []DocumentType {
	out := make([]DocumentType, 0, len(organizationDocs)+len(individualDocs))
	out = append(out, organizationDocs...)
	out = append(out, individualDocs...)
	return out
}

// Entity is a read-only snapshot of one tracked organization or individual.
// The alert engine never mutates entities; lifecycle belongs to the store.
type Entity struct {
	ID   string
	Kind Kind
	Name string

	// Expiries holds the optional expiry date per document type. Absent key
	// means the document is not tracked for this entity. Only the calendar
	// date is meaningful; any time component is ignored by evaluation.
	Expiries map[DocumentType]time.Time
}

// ExpiryFor returns the expiry date for a document type and whether it is
// tracked. Zero dates are treated as untracked so a malformed row degrades
// to "no alert" instead of failing the batch.
func (e Entity) ExpiryFor(doc DocumentType) (time.Time, bool) {
	exp, ok := e.Expiries[doc]
	if !ok || exp.IsZero() {
		return time.Time{}, false
	}
	return exp, true
}
