package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	updatesTableName      = "petcare.updates"
	contactTableName      = "petcare.contact"
	profilesTableName     = "petcare.profiles"
	applicationsTableName = "petcare.applications"
	customersTableName    = "petcare.customers"
)

// document is a single collection row. Every collection keeps its record as
// jsonb in the doc column, keyed by the record's own id.
type document[T any] struct {
	Doc T `db:"doc"`
}

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func docs[T any](rows []*document[T]) []*T {
	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		doc := row.Doc
		out = append(out, &doc)
	}
	return out
}

// Truncate empties every collection.
func Truncate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s, %s, %s, %s, %s",
		updatesTableName, contactTableName, profilesTableName, applicationsTableName, customersTableName))
	if err != nil {
		return fmt.Errorf("failed to truncate collections: %w", err)
	}

	return nil
}
