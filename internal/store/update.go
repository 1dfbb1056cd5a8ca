package store

import (
	"context"
	"fmt"

	"petcare15/internal/utils"
	"petcare15/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UpdateRepository struct {
	pool *pgxpool.Pool
}

func NewUpdateRepository(pool *pgxpool.Pool) *UpdateRepository {
	return &UpdateRepository{pool: pool}
}

func (r *UpdateRepository) Updates(ctx context.Context) ([]*types.Update, error) {
	query, args, err := psql().Select("doc").From(updatesTableName).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate updates query: %w", err)
	}

	var rows []*document[types.Update]
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch updates: %w", err)
	}

	return docs(rows), nil
}

// ReplaceUpdates swaps the whole set in one transaction, so readers never
// observe an empty list mid-save.
func (r *UpdateRepository) ReplaceUpdates(ctx context.Context, updates []*types.Update) error {

	deleteQuery, deleteArgs, err := psql().Delete(updatesTableName).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete updates query: %w", err)
	}

	insert := psql().Insert(updatesTableName).Columns("id", "doc")
	for _, u := range updates {
		insert = insert.Values(u.ID, utils.MustMarshalJSON(u))
	}

	err = pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, deleteQuery, deleteArgs...); err != nil {
			return fmt.Errorf("failed to delete updates: %w", err)
		}

		if len(updates) == 0 {
			return nil
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate insert updates query: %w", err)
		}

		_, err = tx.Exec(ctx, query, args...)
		return utils.ErrorWrapOrNil(err, "failed to insert updates")
	})

	return utils.ErrorWrapOrNil(err, "failed to replace updates")
}
