package store

import (
	"context"
	"fmt"

	"petcare15/internal/utils"
	"petcare15/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Profiles(ctx context.Context) ([]*types.Profile, error) {
	query, args, err := psql().Select("doc").From(profilesTableName).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profiles query: %w", err)
	}

	var rows []*document[types.Profile]
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profiles: %w", err)
	}

	return docs(rows), nil
}

func (r *ProfileRepository) Profile(ctx context.Context, id string) (*types.Profile, error) {
	return profileByID(ctx, r.pool, id, false)
}

// ModifyProfile loads the profile under a row lock, applies fn and writes the
// document back in the same transaction.
func (r *ProfileRepository) ModifyProfile(ctx context.Context, id string, fn func(profile *types.Profile) error) (*types.Profile, error) {

	var profile *types.Profile

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		profile, err = profileByID(ctx, tx, id, true)
		if err != nil {
			return err
		}

		if err := fn(profile); err != nil {
			return err
		}

		query, args, err := psql().
			Update(profilesTableName).
			Set("doc", utils.MustMarshalJSON(profile)).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate update profile query for profile %s: %w", id, err)
		}

		_, err = tx.Exec(ctx, query, args...)
		return utils.ErrorWrapOrNil(err, "failed to update profile")
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func profileByID(ctx context.Context, q pgxscan.Querier, id string, lock bool) (*types.Profile, error) {
	builder := psql().Select("doc").From(profilesTableName).
		Where(sq.Eq{"id": id}).
		Limit(1)
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile query: %w", err)
	}

	var row = new(document[types.Profile])
	err = pgxscan.Get(ctx, q, row, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", id, err)
	}

	if err != nil {
		return nil, types.ErrProfileNotFound
	}

	return &row.Doc, nil
}

// UpsertProfile replaces the whole document stored under profile.ID.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *types.Profile) error {
	query, args, err := psql().
		Insert(profilesTableName).
		Columns("id", "doc").
		Values(profile.ID, utils.MustMarshalJSON(profile)).
		Suffix("ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert profile query for profile %s: %w", profile.ID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert profile")
}
