package entities

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentTypeSetsAreDisjoint(t *testing.T) {
	seen := map[DocumentType]struct{}{}
	for _, doc := range DocumentTypesFor(KindOrganization) {
		seen[doc] = struct{}{}
	}
	for _, doc := range DocumentTypesFor(KindIndividual) {
		_, dup := seen[doc]
		assert.False(t, dup, "document type %s appears in both kinds", doc)
	}
	assert.Nil(t, DocumentTypesFor("robots"))
}

func TestExpiryForTreatsZeroDateAsUntracked(t *testing.T) {
	e := Entity{
		ID:   "org-1",
		Kind: KindOrganization,
		Expiries: map[DocumentType]time.Time{
			DocCommercialRegistration: {},
		},
	}
	_, ok := e.ExpiryFor(DocCommercialRegistration)
	assert.False(t, ok)
	_, ok = e.ExpiryFor(DocSocialInsurance)
	assert.False(t, ok)
}

func TestInMemoryStoreListFiltersByKindAndKeepsOrder(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Entity{ID: "org-2", Kind: KindOrganization, Name: "B"}))
	require.NoError(t, store.Put(ctx, Entity{ID: "ind-1", Kind: KindIndividual, Name: "I"}))
	require.NoError(t, store.Put(ctx, Entity{ID: "org-1", Kind: KindOrganization, Name: "A"}))

	orgs, err := store.List(ctx, KindOrganization)
	require.NoError(t, err)
	require.Len(t, orgs, 2)
	assert.Equal(t, "org-2", orgs[0].ID, "insertion order preserved")
	assert.Equal(t, "org-1", orgs[1].ID)
}

func TestInMemoryStoreListReturnsCopies(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	expiry := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Put(ctx, Entity{
		ID: "org-1", Kind: KindOrganization,
		Expiries: map[DocumentType]time.Time{DocCommercialRegistration: expiry},
	}))

	first, err := store.List(ctx, KindOrganization)
	require.NoError(t, err)
	first[0].Expiries[DocCommercialRegistration] = expiry.AddDate(1, 0, 0)

	second, err := store.List(ctx, KindOrganization)
	require.NoError(t, err)
	assert.Equal(t, expiry, second[0].Expiries[DocCommercialRegistration], "caller mutation does not leak into the store")
}
