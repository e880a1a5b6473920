package entities

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore reads tracked entities from PostgreSQL. Schema:
//
//	tracked_entities(id text primary key, kind text, name text)
//	entity_documents(entity_id text references tracked_entities,
//	                 doc_type text, expires_on date,
//	                 primary key (entity_id, doc_type))
//
// Document rows are optional; an entity with no rows is still listed and
// simply produces no alerts.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore constructs a PostgreSQL-backed entity store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) List(ctx context.Context, kind Kind) ([]Entity, error) {
	const query = `
		SELECT e.id, e.name, d.doc_type, d.expires_on
		FROM tracked_entities e
		LEFT JOIN entity_documents d ON d.entity_id = e.id
		WHERE e.kind = $1
		ORDER BY e.id, d.doc_type`

	rows, err := s.db.QueryContext(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list %s entities: %w", kind, err)
	}
	defer rows.Close()

	var (
		out   []Entity
		index = make(map[string]int)
	)
	for rows.Next() {
		var (
			id, name string
			docType  sql.NullString
			expires  sql.NullTime
		)
		if err := rows.Scan(&id, &name, &docType, &expires); err != nil {
			return nil, fmt.Errorf("scan entity row: %w", err)
		}

		i, ok := index[id]
		if !ok {
			i = len(out)
			index[id] = i
			out = append(out, Entity{
				ID:       id,
				Kind:     kind,
				Name:     name,
				Expiries: make(map[DocumentType]time.Time),
			})
		}
		if docType.Valid && expires.Valid {
			out[i].Expiries[DocumentType(docType.String)] = expires.Time
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entity rows: %w", err)
	}
	return out, nil
}
