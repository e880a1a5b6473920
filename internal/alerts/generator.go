package alerts

import (
	"sort"
	"time"

	"vigil/internal/entities"
	"vigil/internal/thresholds"
)

// Generate evaluates every applicable document type for every entity and
// returns the collected alerts, sorted.
//
// Sort order: priority descending, then soonest expiry first. The sort is
// stable so equal keys keep discovery order and unchanged inputs produce
// byte-identical lists between passes.
func Generate(ents []entities.Entity, set thresholds.Set, now time.Time) []AlertRecord {
	var out []AlertRecord
	for _, entity := range ents {
		for _, doc := range entities.DocumentTypesFor(entity.Kind) {
			if alert := Evaluate(entity, doc, set, now); alert != nil {
				out = append(out, *alert)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ri, rj := out[i].Priority.Rank(), out[j].Priority.Rank(); ri != rj {
			return ri > rj
		}
		return out[i].DaysRemaining < out[j].DaysRemaining
	})
	return out
}
