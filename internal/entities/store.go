package entities

import "context"

// Store provides snapshot reads of tracked entities. Interface-driven to keep
// the engine testable and to allow swapping in-memory and PostgreSQL
// persistence without rewiring business code.
type Store interface {
	// List returns every tracked entity of the given kind. Snapshot read,
	// no pagination contract.
	List(ctx context.Context, kind Kind) ([]Entity, error)
}
