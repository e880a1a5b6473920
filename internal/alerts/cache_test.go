package alerts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vigil/internal/entities"
	"vigil/pkg/platform/sentinel"
)

type CacheSuite struct {
	suite.Suite
	cache *Cache
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) SetupTest() {
	s.cache = NewCache(time.Minute, nil)
}

func fixedGen(list []AlertRecord, calls *atomic.Int32) func(context.Context) ([]AlertRecord, error) {
	return func(context.Context) ([]AlertRecord, error) {
		calls.Add(1)
		return list, nil
	}
}

func (s *CacheSuite) TestSecondCallWithinTTLIsServedFromCache() {
	ctx := context.Background()
	var calls atomic.Int32
	gen := fixedGen([]AlertRecord{{ID: "a1"}}, &calls)

	first, err := s.cache.GetOrGenerate(ctx, entities.KindOrganization, 42, false, gen)
	s.Require().NoError(err)
	second, err := s.cache.GetOrGenerate(ctx, entities.KindOrganization, 42, false, gen)
	s.Require().NoError(err)

	s.Equal(int32(1), calls.Load())
	s.Equal(first, second)
}

func (s *CacheSuite) TestSignatureChangeIsAMiss() {
	ctx := context.Background()
	var calls atomic.Int32
	gen := fixedGen([]AlertRecord{{ID: "a1"}}, &calls)

	_, err := s.cache.GetOrGenerate(ctx, entities.KindOrganization, 42, false, gen)
	s.Require().NoError(err)
	_, err = s.cache.GetOrGenerate(ctx, entities.KindOrganization, 43, false, gen)
	s.Require().NoError(err)

	s.Equal(int32(2), calls.Load())
}

func (s *CacheSuite) TestForceRefreshBypassesFreshEntry() {
	ctx := context.Background()
	var calls atomic.Int32
	gen := fixedGen([]AlertRecord{{ID: "a1"}}, &calls)

	_, err := s.cache.GetOrGenerate(ctx, entities.KindOrganization, 42, false, gen)
	s.Require().NoError(err)
	_, err = s.cache.GetOrGenerate(ctx, entities.KindOrganization, 42, true, gen)
	s.Require().NoError(err)

	s.Equal(int32(2), calls.Load())
}

func (s *CacheSuite) TestKindsUseIndependentSlots() {
	ctx := context.Background()
	var orgCalls, indCalls atomic.Int32

	_, err := s.cache.GetOrGenerate(ctx, entities.KindOrganization, 1, false, fixedGen(nil, &orgCalls))
	s.Require().NoError(err)
	_, err = s.cache.GetOrGenerate(ctx, entities.KindIndividual, 1, false, fixedGen(nil, &indCalls))
	s.Require().NoError(err)

	s.cache.Invalidate(entities.KindOrganization)

	_, err = s.cache.GetOrGenerate(ctx, entities.KindOrganization, 1, false, fixedGen(nil, &orgCalls))
	s.Require().NoError(err)
	_, err = s.cache.GetOrGenerate(ctx, entities.KindIndividual, 1, false, fixedGen(nil, &indCalls))
	s.Require().NoError(err)

	s.Equal(int32(2), orgCalls.Load(), "invalidated slot regenerates")
	s.Equal(int32(1), indCalls.Load(), "untouched slot stays cached")
}

func (s *CacheSuite) TestConcurrentCallersShareOneGeneration() {
	ctx := context.Background()
	release := make(chan struct{})
	var calls atomic.Int32
	result := []AlertRecord{{ID: "shared"}}

	gen := func(context.Context) ([]AlertRecord, error) {
		calls.Add(1)
		<-release
		return result, nil
	}

	const callers = 8
	results := make([][]AlertRecord, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			list, err := s.cache.GetOrGenerate(ctx, entities.KindOrganization, 7, false, gen)
			s.NoError(err)
			results[i] = list
		}(i)
	}

	// Let the callers queue up on the in-flight generation, then release it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Equal(int32(1), calls.Load(), "exactly one generation pass")
	for i := 1; i < callers; i++ {
		s.Require().NotEmpty(results[i])
		// Identical backing array, not a recomputed copy.
		s.Same(&results[0][0], &results[i][0])
	}
}

func (s *CacheSuite) TestDeadlineExceededMapsToTimeout() {
	ctx := context.Background()
	gen := func(context.Context) ([]AlertRecord, error) {
		return nil, context.DeadlineExceeded
	}

	_, err := s.cache.GetOrGenerate(ctx, entities.KindOrganization, 1, false, gen)
	s.Require().Error(err)
	s.ErrorIs(err, sentinel.ErrTimeout)
}

func (s *CacheSuite) TestGenerationErrorIsNotCached() {
	ctx := context.Background()
	var calls atomic.Int32
	failing := func(context.Context) ([]AlertRecord, error) {
		calls.Add(1)
		return nil, errors.New("upstream down")
	}

	_, err := s.cache.GetOrGenerate(ctx, entities.KindOrganization, 1, false, failing)
	s.Error(err)

	var recovered atomic.Int32
	_, err = s.cache.GetOrGenerate(ctx, entities.KindOrganization, 1, false, fixedGen(nil, &recovered))
	s.NoError(err)
	s.Equal(int32(1), recovered.Load())
}

func TestSignatureTracksContentNotJustCount(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	a := []entities.Entity{{
		ID: "org-1", Kind: entities.KindOrganization,
		Expiries: map[entities.DocumentType]time.Time{entities.DocCommercialRegistration: now},
	}}
	b := []entities.Entity{{
		ID: "org-1", Kind: entities.KindOrganization,
		Expiries: map[entities.DocumentType]time.Time{entities.DocCommercialRegistration: now.AddDate(0, 0, 1)},
	}}
	c := []entities.Entity{{
		ID: "org-2", Kind: entities.KindOrganization,
		Expiries: map[entities.DocumentType]time.Time{entities.DocCommercialRegistration: now},
	}}

	if Signature(a) == Signature(b) {
		t.Fatal("expiry change must change the signature")
	}
	if Signature(a) == Signature(c) {
		t.Fatal("id change must change the signature")
	}
	if Signature(a) != Signature(a) {
		t.Fatal("signature must be deterministic")
	}
}
