package stats

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"vigil/internal/alerts"
	"vigil/internal/entities"
)

type AggregatorSuite struct {
	suite.Suite
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func alert(id, entityID string, doc entities.DocumentType, p alerts.Priority) alerts.AlertRecord {
	return alerts.AlertRecord{
		ID:           id,
		EntityID:     entityID,
		DocumentType: doc,
		Priority:     p,
	}
}

func (s *AggregatorSuite) TestEntityWithTwoLapsedDocumentsCountsOnce() {
	list := []alerts.AlertRecord{
		alert("a1", "org-1", entities.DocCommercialRegistration, alerts.PriorityUrgent),
		alert("a2", "org-1", entities.DocSocialInsurance, alerts.PriorityUrgent),
	}

	got := Aggregate(list, nil)
	s.Equal(2, got.Total, "row count keeps both alerts")
	s.Equal(1, got.Urgent, "entity count deduplicates")
	s.Equal(0, got.High)
}

func (s *AggregatorSuite) TestWorstSeverityWinsPerEntity() {
	list := []alerts.AlertRecord{
		alert("a1", "org-1", entities.DocCommercialRegistration, alerts.PriorityMedium),
		alert("a2", "org-1", entities.DocSocialInsurance, alerts.PriorityHigh),
		alert("a3", "org-2", entities.DocCommercialRegistration, alerts.PriorityMedium),
	}

	got := Aggregate(list, nil)
	s.Equal(0, got.Urgent)
	s.Equal(1, got.High, "org-1 counts in its worst bucket only")
	s.Equal(1, got.Medium, "org-2 stays medium")
}

func (s *AggregatorSuite) TestByDocumentTypeCountsRows() {
	list := []alerts.AlertRecord{
		alert("a1", "org-1", entities.DocCommercialRegistration, alerts.PriorityUrgent),
		alert("a2", "org-2", entities.DocCommercialRegistration, alerts.PriorityMedium),
		alert("a3", "ind-1", entities.DocResidencePermit, alerts.PriorityHigh),
	}

	got := Aggregate(list, nil)
	s.Equal(2, got.ByDocumentType["commercial_registration"])
	s.Equal(1, got.ByDocumentType["residence_permit"])
}

func (s *AggregatorSuite) TestUnreadIgnoresMediumAndReadAlerts() {
	list := []alerts.AlertRecord{
		alert("a1", "org-1", entities.DocCommercialRegistration, alerts.PriorityUrgent),
		alert("a2", "org-2", entities.DocSocialInsurance, alerts.PriorityHigh),
		alert("a3", "org-3", entities.DocCommercialRegistration, alerts.PriorityMedium),
	}
	read := map[string]struct{}{"a1": {}}

	got := Aggregate(list, read)
	s.Equal(0, got.Unread.Urgent, "read urgent alert excluded")
	s.Equal(1, got.Unread.High)
	s.Equal(1, got.Unread.Total)
}

func (s *AggregatorSuite) TestMarkingOnlyHighAlertReadRemovesEntityFromUnread() {
	list := []alerts.AlertRecord{
		alert("a1", "org-1", entities.DocCommercialRegistration, alerts.PriorityHigh),
	}

	before := Aggregate(list, nil)
	s.Equal(1, before.Unread.High)
	s.Equal(1, before.High, "problems count unaffected by read state")

	after := Aggregate(list, map[string]struct{}{"a1": {}})
	s.Equal(0, after.Unread.High, "entity drops out of unread")
	s.Equal(1, after.High, "problems count unchanged")
}

func (s *AggregatorSuite) TestUnreadDeduplicatesPerEntity() {
	list := []alerts.AlertRecord{
		alert("a1", "org-1", entities.DocCommercialRegistration, alerts.PriorityUrgent),
		alert("a2", "org-1", entities.DocSocialInsurance, alerts.PriorityHigh),
	}

	got := Aggregate(list, nil)
	s.Equal(1, got.Unread.Urgent, "entity counts once, in its worst bucket")
	s.Equal(0, got.Unread.High)
	s.Equal(1, got.Unread.Total)
}

func (s *AggregatorSuite) TestEmptyListYieldsZeroStats() {
	got := Aggregate(nil, nil)
	s.Equal(0, got.Total)
	s.Equal(0, got.Urgent)
	s.Empty(got.ByDocumentType)
	s.Equal(0, got.Unread.Total)
}
