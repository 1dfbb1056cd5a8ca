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

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) Customers(ctx context.Context) ([]*types.Customer, error) {
	query, args, err := psql().Select("doc").From(customersTableName).OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate customers query: %w", err)
	}

	var rows []*document[types.Customer]
	err = pgxscan.Select(ctx, r.pool, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch customers: %w", err)
	}

	return docs(rows), nil
}

func (r *CustomerRepository) Customer(ctx context.Context, id string) (*types.Customer, error) {
	return customerWhere(ctx, r.pool, sq.Eq{"id": id}, false)
}

func (r *CustomerRepository) UpsertCustomer(ctx context.Context, customer *types.Customer) error {
	query, args, err := psql().
		Insert(customersTableName).
		Columns("id", "application_id", "doc").
		Values(customer.ID, customer.ApplicationID, utils.MustMarshalJSON(customer)).
		Suffix("ON CONFLICT (id) DO UPDATE SET application_id = EXCLUDED.application_id, doc = EXCLUDED.doc").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert customer query for customer %s: %w", customer.ID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert customer")
}

// ModifyCustomer loads the customer under a row lock, applies fn and writes
// the whole document back.
func (r *CustomerRepository) ModifyCustomer(ctx context.Context, id string, fn func(customer *types.Customer) error) (*types.Customer, error) {

	var customer *types.Customer

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		customer, err = customerWhere(ctx, tx, sq.Eq{"id": id}, true)
		if err != nil {
			return err
		}

		if err := fn(customer); err != nil {
			return err
		}

		query, args, err := psql().
			Update(customersTableName).
			Set("doc", utils.MustMarshalJSON(customer)).
			Where(sq.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to generate update customer query for customer %s: %w", id, err)
		}

		_, err = tx.Exec(ctx, query, args...)
		return utils.ErrorWrapOrNil(err, "failed to update customer")
	})
	if err != nil {
		return nil, err
	}

	return customer, nil
}

func customerByApplicationID(ctx context.Context, q pgxscan.Querier, applicationID string) (*types.Customer, error) {
	return customerWhere(ctx, q, sq.Eq{"application_id": applicationID}, false)
}

func customerWhere(ctx context.Context, q pgxscan.Querier, where sq.Eq, lock bool) (*types.Customer, error) {
	builder := psql().Select("doc").From(customersTableName).
		Where(where).
		Limit(1)
	if lock {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate customer query: %w", err)
	}

	var row = new(document[types.Customer])
	err = pgxscan.Get(ctx, q, row, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}

	if err != nil {
		return nil, types.ErrCustomerNotFound
	}

	return &row.Doc, nil
}

// insertCustomerIfAbsent is a no-op when the customer id or its application
// id is already taken.
func insertCustomerIfAbsent(ctx context.Context, tx pgx.Tx, customer *types.Customer) error {
	query, args, err := psql().
		Insert(customersTableName).
		Columns("id", "application_id", "doc").
		Values(customer.ID, customer.ApplicationID, utils.MustMarshalJSON(customer)).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert customer query for customer %s: %w", customer.ID, err)
	}

	_, err = tx.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to insert customer")
}
