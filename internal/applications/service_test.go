package applications

import (
	"context"
	"io"
	"sync"
	"testing"

	"petcare15/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo mirrors the transactional contract of the postgres repository:
// the application is only written when fn succeeds, and customers are inserted
// only when neither the id nor the application id is taken.
type memoryRepo struct {
	mu           sync.Mutex
	applications map[string]*types.Application
	customers    map[string]*types.Customer
}

func newMemoryRepo(apps ...*types.Application) *memoryRepo {
	r := &memoryRepo{
		applications: map[string]*types.Application{},
		customers:    map[string]*types.Customer{},
	}
	for _, a := range apps {
		r.applications[a.ID] = a
	}
	return r
}

func (r *memoryRepo) Applications(ctx context.Context) ([]*types.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*types.Application, 0, len(r.applications))
	for _, a := range r.applications {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepo) Application(ctx context.Context, id string) (*types.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.applications[id]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memoryRepo) ModifyApplication(ctx context.Context, id string, fn func(app *types.Application) (*types.Customer, error)) (*types.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.applications[id]
	if !ok {
		return nil, types.ErrApplicationNotFound
	}

	cp := *a
	customer, err := fn(&cp)
	if err != nil {
		return nil, err
	}

	var stored *types.Customer
	if customer != nil {
		for _, c := range r.customers {
			if c.ApplicationID == cp.ID {
				stored = c
			}
		}
		if stored == nil {
			if _, taken := r.customers[customer.ID]; !taken {
				r.customers[customer.ID] = customer
				stored = customer
			}
		}
	}

	r.applications[id] = &cp
	return stored, nil
}

func newTestService(apps ...*types.Application) (*Service, *memoryRepo) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repo := newMemoryRepo(apps...)
	return NewService(logger, repo), repo
}

func pending(id string) *types.Application {
	return &types.Application{
		ID:          id,
		Name:        "Person " + id,
		PhoneNumber: "555-000" + id,
		Email:       "person" + id + "@example.com",
		Status:      types.ApplicationStatusPending,
	}
}

func TestApprove_CreatesCustomer(t *testing.T) {
	svc, repo := newTestService(pending("4"))

	customer, err := svc.Approve(context.Background(), "4")
	require.NoError(t, err)

	assert.Equal(t, "cust-4", customer.ID)
	assert.Equal(t, "4", customer.ApplicationID)
	assert.Equal(t, "Person 4", customer.Name)
	assert.Equal(t, "555-0004", customer.PhoneNumber)
	assert.NotNil(t, customer.Profiles)
	assert.Empty(t, customer.Profiles)

	app, err := repo.Application(context.Background(), "4")
	require.NoError(t, err)
	assert.Equal(t, types.ApplicationStatusApproved, app.Status)
	assert.Len(t, repo.customers, 1)
}

func TestApprove_Idempotent(t *testing.T) {
	svc, repo := newTestService(pending("4"))

	first, err := svc.Approve(context.Background(), "4")
	require.NoError(t, err)

	second, err := svc.Approve(context.Background(), "4")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.customers, 1)
}

func TestApprove_NotFound(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Approve(context.Background(), "missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Empty(t, repo.customers)
}

func TestApprove_MissingID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Approve(context.Background(), "")
	assert.True(t, types.IsValidationError(err))
}

func TestReject(t *testing.T) {
	svc, repo := newTestService(pending("3"))

	require.NoError(t, svc.Reject(context.Background(), "3"))

	app, _ := repo.Application(context.Background(), "3")
	assert.Equal(t, types.ApplicationStatusRejected, app.Status)
	assert.Empty(t, repo.customers)

	assert.ErrorIs(t, svc.Reject(context.Background(), "nope"), types.ErrNotFound)
}

func TestLastDecisionWins(t *testing.T) {
	ctx := context.Background()

	t.Run("reject then approve", func(t *testing.T) {
		svc, repo := newTestService(pending("1"))
		require.NoError(t, svc.Reject(ctx, "1"))
		_, err := svc.Approve(ctx, "1")
		require.NoError(t, err)

		app, _ := repo.Application(ctx, "1")
		assert.Equal(t, types.ApplicationStatusApproved, app.Status)
		assert.Len(t, repo.customers, 1)
	})

	t.Run("approve then reject", func(t *testing.T) {
		svc, repo := newTestService(pending("1"))
		_, err := svc.Approve(ctx, "1")
		require.NoError(t, err)
		require.NoError(t, svc.Reject(ctx, "1"))

		app, _ := repo.Application(ctx, "1")
		assert.Equal(t, types.ApplicationStatusRejected, app.Status)
		// the customer is not cascaded away
		assert.Len(t, repo.customers, 1)
	})
}

func TestUnreject(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		from    types.ApplicationStatus
		wantErr error
		want    types.ApplicationStatus
	}{
		{name: "rejected to pending", from: types.ApplicationStatusRejected, want: types.ApplicationStatusPending},
		{name: "pending refused", from: types.ApplicationStatusPending, wantErr: types.ErrInvalidTransition, want: types.ApplicationStatusPending},
		{name: "approved refused", from: types.ApplicationStatusApproved, wantErr: types.ErrInvalidTransition, want: types.ApplicationStatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := pending("9")
			app.Status = tt.from
			svc, repo := newTestService(app)

			err := svc.Unreject(ctx, "9")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			stored, _ := repo.Application(ctx, "9")
			assert.Equal(t, tt.want, stored.Status)
		})
	}
}
