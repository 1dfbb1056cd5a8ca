package store

import (
	"context"
	"errors"
	"fmt"

	"petcare15/internal/utils"
	"petcare15/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{pool: pool}
}

func (r *ApplicationRepository) Applications(ctx context.Context) ([]*types.Application, error) {
	query, args, err := psql().Select("doc").From(applicationsTableName).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate applications query: %w", err)
	}

	var rows []*document[types.Application]
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applications: %w", err)
	}

	return docs(rows), nil
}

func (r *ApplicationRepository) Application(ctx context.Context, id string) (*types.Application, error) {
	return applicationByID(ctx, r.pool, id, false)
}

func (r *ApplicationRepository) UpsertApplication(ctx context.Context, app *types.Application) error {
	query, args, err := upsertApplicationQuery(app)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert application")
}

// ModifyApplication locks the application row, hands it to fn and persists the
// result in the same transaction. When fn returns a customer it is inserted
// unless a customer with that id already exists; the stored customer is
// returned either way.
func (r *ApplicationRepository) ModifyApplication(ctx context.Context, id string, fn func(app *types.Application) (*types.Customer, error)) (*types.Customer, error) {

	var stored *types.Customer

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		app, err := applicationByID(ctx, tx, id, true)
		if err != nil {
			return err
		}

		customer, err := fn(app)
		if err != nil {
			return err
		}

		if customer != nil {
			if err := insertCustomerIfAbsent(ctx, tx, customer); err != nil {
				return err
			}

			stored, err = customerByApplicationID(ctx, tx, app.ID)
			if errors.Is(err, types.ErrCustomerNotFound) {
				return fmt.Errorf("customer id %s is held by another application", customer.ID)
			}
			if err != nil {
				return err
			}
		}

		query, args, err := upsertApplicationQuery(app)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, query, args...)
		return utils.ErrorWrapOrNil(err, "failed to save application")
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}

func applicationByID(ctx context.Context, q pgxscan.Querier, id string, lock bool) (*types.Application, error) {
	builder := psql().Select("doc").From(applicationsTableName).
		Where(sq.Eq{"id": id}).
		Limit(1)
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate application query: %w", err)
	}

	var row = new(document[types.Application])
	err = pgxscan.Get(ctx, q, row, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch application %s: %w", id, err)
	}

	if err != nil {
		return nil, types.ErrApplicationNotFound
	}

	return &row.Doc, nil
}

func upsertApplicationQuery(app *types.Application) (string, []any, error) {
	query, args, err := psql().
		Insert(applicationsTableName).
		Columns("id", "status", "doc").
		Values(app.ID, int(app.Status), utils.MustMarshalJSON(app)).
		Suffix("ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate upsert application query for application %s: %w", app.ID, err)
	}

	return query, args, nil
}
