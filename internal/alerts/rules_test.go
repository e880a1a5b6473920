package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vigil/internal/entities"
	"vigil/internal/thresholds"
)

type RulesSuite struct {
	suite.Suite
	now time.Time
	set thresholds.Set
}

func TestRulesSuite(t *testing.T) {
	suite.Run(t, new(RulesSuite))
}

func (s *RulesSuite) SetupTest() {
	s.now = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	s.set = thresholds.Set{
		entities.DocCommercialRegistration: {Urgent: 30, High: 45, Medium: 60},
		entities.DocResidencePermit:        {Urgent: 7, High: 15, Medium: 30},
	}
}

func (s *RulesSuite) org(expiry time.Time) entities.Entity {
	return entities.Entity{
		ID:   "org-1",
		Kind: entities.KindOrganization,
		Name: "Al Noor Trading Est.",
		Expiries: map[entities.DocumentType]time.Time{
			entities.DocCommercialRegistration: expiry,
		},
	}
}

func (s *RulesSuite) TestUntrackedDocumentProducesNoAlert() {
	e := entities.Entity{ID: "org-2", Kind: entities.KindOrganization, Name: "Empty Co"}
	s.Nil(Evaluate(e, entities.DocCommercialRegistration, s.set, s.now))
}

func (s *RulesSuite) TestZeroExpiryTreatedAsUntracked() {
	e := s.org(time.Time{})
	s.Nil(Evaluate(e, entities.DocCommercialRegistration, s.set, s.now))
}

func (s *RulesSuite) TestExpiryBeyondMediumProducesNoAlert() {
	e := s.org(s.now.AddDate(0, 0, 90))
	s.Nil(Evaluate(e, entities.DocCommercialRegistration, s.set, s.now))
}

func (s *RulesSuite) TestExpiryTodayIsUrgentDayZero() {
	// Different clock time on the same calendar day must still be day zero.
	e := s.org(time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC))
	alert := Evaluate(e, entities.DocCommercialRegistration, s.set, s.now)
	s.Require().NotNil(alert)
	s.Equal(PriorityUrgent, alert.Priority)
	s.Equal(0, alert.DaysRemaining)
}

func (s *RulesSuite) TestLapsedIsUrgentRegardlessOfThresholds() {
	tight := thresholds.Set{
		entities.DocCommercialRegistration: {Urgent: 0, High: 0, Medium: 0},
	}
	e := s.org(s.now.AddDate(0, 0, -5))
	alert := Evaluate(e, entities.DocCommercialRegistration, tight, s.now)
	s.Require().NotNil(alert)
	s.Equal(PriorityUrgent, alert.Priority)
	s.Equal(-5, alert.DaysRemaining)
	s.Contains(alert.Message, "lapsed 5 days ago")
}

func (s *RulesSuite) TestResidencePermitTenDaysOutIsHigh() {
	e := entities.Entity{
		ID:   "ind-1",
		Kind: entities.KindIndividual,
		Name: "Samir Haddad",
		Expiries: map[entities.DocumentType]time.Time{
			entities.DocResidencePermit: s.now.AddDate(0, 0, 10),
		},
	}
	alert := Evaluate(e, entities.DocResidencePermit, s.set, s.now)
	s.Require().NotNil(alert)
	s.Equal(PriorityHigh, alert.Priority)
	s.Equal(10, alert.DaysRemaining)
}

func (s *RulesSuite) TestPriorityBoundaries() {
	cases := []struct {
		days int
		want Priority
	}{
		{days: 30, want: PriorityUrgent},
		{days: 31, want: PriorityHigh},
		{days: 45, want: PriorityHigh},
		{days: 46, want: PriorityMedium},
		{days: 60, want: PriorityMedium},
	}
	for _, tc := range cases {
		e := s.org(s.now.AddDate(0, 0, tc.days))
		alert := Evaluate(e, entities.DocCommercialRegistration, s.set, s.now)
		s.Require().NotNil(alert, "days=%d", tc.days)
		s.Equal(tc.want, alert.Priority, "days=%d", tc.days)
	}
}

func (s *RulesSuite) TestPriorityMonotonicInDaysRemaining() {
	prev := PriorityUrgent.Rank()
	for days := -10; days <= 60; days++ {
		e := s.org(s.now.AddDate(0, 0, days))
		alert := Evaluate(e, entities.DocCommercialRegistration, s.set, s.now)
		s.Require().NotNil(alert, "days=%d", days)
		s.LessOrEqual(alert.Priority.Rank(), prev, "days=%d", days)
		prev = alert.Priority.Rank()
	}
}

func (s *RulesSuite) TestIdentifierStableAcrossEvaluationTimes() {
	expiry := s.now.AddDate(0, 0, 20)
	e := s.org(expiry)

	first := Evaluate(e, entities.DocCommercialRegistration, s.set, s.now)
	later := Evaluate(e, entities.DocCommercialRegistration, s.set, s.now.AddDate(0, 0, 15))

	s.Require().NotNil(first)
	s.Require().NotNil(later)
	s.Equal(first.ID, later.ID)
	s.NotEqual(first.Priority, later.Priority)
	s.Equal("commercial_registration_org-1_2026-03-30", first.ID)
}

func (s *RulesSuite) TestMessageCarriesEntityNameAndDayCount() {
	e := s.org(s.now.AddDate(0, 0, 20))
	alert := Evaluate(e, entities.DocCommercialRegistration, s.set, s.now)
	s.Require().NotNil(alert)
	s.Contains(alert.Message, "Al Noor Trading Est.")
	s.Contains(alert.Message, "20 days")
	s.Contains(alert.Message, "commercial registration")
	s.NotEmpty(alert.Action)
}

func (s *RulesSuite) TestClassifyReturnsLowBeyondMedium() {
	statusSet := thresholds.StatusDefaults()

	far := s.org(s.now.AddDate(0, 0, 365))
	s.Equal(PriorityLow, Classify(far, entities.DocCommercialRegistration, statusSet, s.now))

	untracked := entities.Entity{ID: "org-3", Kind: entities.KindOrganization}
	s.Equal(PriorityLow, Classify(untracked, entities.DocCommercialRegistration, statusSet, s.now))

	lapsed := s.org(s.now.AddDate(0, 0, -1))
	s.Equal(PriorityUrgent, Classify(lapsed, entities.DocCommercialRegistration, statusSet, s.now))
}
