package store

import (
	"context"
	"fmt"

	"petcare15/internal/utils"
	"petcare15/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

// the contact table holds at most one row, pinned to this id
const contactRowID = 1

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Contact(ctx context.Context) (*types.Contact, error) {
	query, args, err := psql().Select("doc").From(contactTableName).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate contact query: %w", err)
	}

	var row = new(document[types.Contact])
	err = pgxscan.Get(ctx, r.pool, row, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch contact: %w", err)
	}

	if err != nil {
		return nil, types.ErrContactNotFound
	}

	return &row.Doc, nil
}

func (r *ContactRepository) SaveContact(ctx context.Context, contact *types.Contact) error {
	query, args, err := psql().
		Insert(contactTableName).
		Columns("id", "doc").
		Values(contactRowID, utils.MustMarshalJSON(contact)).
		Suffix("ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert contact query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to save contact")
}

func (r *ContactRepository) DeleteContact(ctx context.Context) error {
	query, args, err := psql().Delete(contactTableName).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete contact query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to delete contact")
}
