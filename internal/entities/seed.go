package entities

import (
	"context"
	"time"
)

// SeedDemoEntities fills an in-memory store with a small fixture set so the
// service produces visible alerts when run without a database.
func SeedDemoEntities(store *InMemoryStore, now time.Time) {
	ctx := context.Background()
	day := 24 * time.Hour

	_ = store.Put(ctx, Entity{
		ID:   "org-1001",
		Kind: KindOrganization,
		Name: "Al Noor Trading Est.",
		Expiries: map[DocumentType]time.Time{
			DocCommercialRegistration: now.Add(12 * day),
			DocSocialInsurance:        now.Add(-3 * day),
		},
	})
	_ = store.Put(ctx, Entity{
		ID:   "org-1002",
		Kind: KindOrganization,
		Name: "Falcon Logistics LLC",
		Expiries: map[DocumentType]time.Time{
			DocCommercialRegistration: now.Add(120 * day),
		},
	})
	_ = store.Put(ctx, Entity{
		ID:   "ind-2001",
		Kind: KindIndividual,
		Name: "Samir Haddad",
		Expiries: map[DocumentType]time.Time{
			DocResidencePermit: now.Add(9 * day),
			DocContract:        now.Add(40 * day),
			DocHealthInsurance: now.Add(20 * day),
		},
	})
	_ = store.Put(ctx, Entity{
		ID:   "ind-2002",
		Kind: KindIndividual,
		Name: "Lina Aziz",
		Expiries: map[DocumentType]time.Time{
			DocResidencePermit: now.Add(200 * day),
		},
	})
}
