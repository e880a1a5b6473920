// Package readstate persists which alert IDs an operator has acknowledged.
// The set is independent of whether the underlying condition is resolved;
// the engine only consumes it when partitioning open alerts from unread ones.
package readstate

import "context"

// Store holds per-operator acknowledged alert ID sets.
type Store interface {
	// MarkRead adds an alert ID to the operator's acknowledged set.
	// Idempotent; re-marking is a no-op.
	MarkRead(ctx context.Context, userID, alertID string) error

	// List returns the operator's acknowledged alert IDs as a set.
	List(ctx context.Context, userID string) (map[string]struct{}, error)
}
