package store

import (
	"context"
	"io"
	"os"
	"sync"
	"testing"

	"petcare15/internal/db"
	"petcare15/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPool connects to TEST_DATABASE_URL, applies the migrations and empties
// every collection. Tests are skipped when it is unset, and the database is
// truncated, so never point it at real data.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	require.NoError(t, db.Migrate(url, false, logger))

	pool, err := db.Connect(context.Background(), &types.Config{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Truncate(context.Background(), pool))
	return pool
}

func countCustomers(t *testing.T, pool *pgxpool.Pool, applicationID string) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(), "SELECT count(*) FROM "+customersTableName+" WHERE application_id = $1", applicationID).Scan(&n)
	require.NoError(t, err)
	return n
}

func approve(app *types.Application) (*types.Customer, error) {
	app.Status = types.ApplicationStatusApproved
	return types.NewCustomerFromApplication(app), nil
}

func pendingApplication(id string) *types.Application {
	return &types.Application{ID: id, Name: "Person " + id, PhoneNumber: "555-01" + id, Status: types.ApplicationStatusPending}
}

func TestModifyApplication_ApproveTwiceKeepsStoredCustomer(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	apps := NewApplicationRepository(pool)
	customers := NewCustomerRepository(pool)

	require.NoError(t, apps.UpsertApplication(ctx, pendingApplication("1")))

	first, err := apps.ModifyApplication(ctx, "1", approve)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", first.ID)
	assert.Equal(t, "1", first.ApplicationID)
	assert.Empty(t, first.Profiles)

	_, err = customers.ModifyCustomer(ctx, "cust-1", func(c *types.Customer) error {
		c.Profiles = append(c.Profiles, types.CustomerProfile{ProfileID: "fifteen", VisitorCount: 2})
		return nil
	})
	require.NoError(t, err)

	second, err := apps.ModifyApplication(ctx, "1", approve)
	require.NoError(t, err)
	require.Len(t, second.Profiles, 1)
	assert.Equal(t, "fifteen", second.Profiles[0].ProfileID)

	assert.Equal(t, 1, countCustomers(t, pool, "1"))

	app, err := apps.Application(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, types.ApplicationStatusApproved, app.Status)
}

func TestModifyApplication_ConcurrentApprovals(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	apps := NewApplicationRepository(pool)

	require.NoError(t, apps.UpsertApplication(ctx, pendingApplication("2")))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = apps.ModifyApplication(ctx, "2", approve)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, countCustomers(t, pool, "2"))
}

func TestModifyApplication_CustomerIDCollisionRollsBack(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	apps := NewApplicationRepository(pool)
	customers := NewCustomerRepository(pool)

	require.NoError(t, apps.UpsertApplication(ctx, pendingApplication("5")))
	require.NoError(t, customers.UpsertCustomer(ctx, &types.Customer{ID: "cust-5", Name: "Someone else", ApplicationID: "other"}))

	_, err := apps.ModifyApplication(ctx, "5", approve)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "held by another application")

	app, err := apps.Application(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, types.ApplicationStatusPending, app.Status)

	held, err := customers.Customer(ctx, "cust-5")
	require.NoError(t, err)
	assert.Equal(t, "other", held.ApplicationID)
	assert.Equal(t, 0, countCustomers(t, pool, "5"))
}

func TestModifyApplication_ErrorsLeaveRowUntouched(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	apps := NewApplicationRepository(pool)

	require.NoError(t, apps.UpsertApplication(ctx, pendingApplication("3")))

	_, err := apps.ModifyApplication(ctx, "3", func(app *types.Application) (*types.Customer, error) {
		app.Status = types.ApplicationStatusRejected
		return nil, types.ErrInvalidTransition
	})
	assert.ErrorIs(t, err, types.ErrInvalidTransition)

	app, err := apps.Application(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, types.ApplicationStatusPending, app.Status)

	_, err = apps.ModifyApplication(ctx, "missing", approve)
	assert.ErrorIs(t, err, types.ErrApplicationNotFound)
}

func TestModifyCustomer_RewritesOnlyLockedRow(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	customers := NewCustomerRepository(pool)

	for _, id := range []string{"1", "2"} {
		require.NoError(t, customers.UpsertCustomer(ctx, &types.Customer{
			ID:            types.CustomerIDForApplication(id),
			ApplicationID: id,
			Profiles: []types.CustomerProfile{
				{ProfileID: "fifteen", VisitorCount: 1},
				{ProfileID: "misamisa"},
			},
		}))
	}

	updated, err := customers.ModifyCustomer(ctx, "cust-1", func(c *types.Customer) error {
		c.Profile("fifteen").BlackListed = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.Profile("fifteen").BlackListed)

	stored, err := customers.Customer(ctx, "cust-1")
	require.NoError(t, err)
	assert.True(t, stored.Profile("fifteen").BlackListed)
	assert.False(t, stored.Profile("misamisa").BlackListed)
	assert.Equal(t, 1, stored.Profile("fifteen").VisitorCount)

	other, err := customers.Customer(ctx, "cust-2")
	require.NoError(t, err)
	assert.False(t, other.Profile("fifteen").BlackListed)

	_, err = customers.ModifyCustomer(ctx, "cust-2", func(c *types.Customer) error {
		c.Profile("misamisa").BlackListed = true
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	other, err = customers.Customer(ctx, "cust-2")
	require.NoError(t, err)
	assert.False(t, other.Profile("misamisa").BlackListed)

	_, err = customers.ModifyCustomer(ctx, "cust-9", func(c *types.Customer) error { return nil })
	assert.ErrorIs(t, err, types.ErrCustomerNotFound)
}

func TestReplaceUpdates(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	updates := NewUpdateRepository(pool)

	require.NoError(t, updates.ReplaceUpdates(ctx, []*types.Update{
		{ID: 2, Update: "Misa is new."},
		{ID: 1, Update: "Fifteen is fully booked."},
	}))

	got, err := updates.Updates(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(2), got[1].ID)

	err = updates.ReplaceUpdates(ctx, []*types.Update{
		{ID: 7, Update: "a"},
		{ID: 7, Update: "b"},
	})
	require.Error(t, err)

	got, err = updates.Updates(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 2, "a failed replace keeps the previous set")

	require.NoError(t, updates.ReplaceUpdates(ctx, []*types.Update{}))

	got, err = updates.Updates(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestContactSingleton(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	contact := NewContactRepository(pool)

	_, err := contact.Contact(ctx)
	assert.ErrorIs(t, err, types.ErrContactNotFound)

	require.NoError(t, contact.SaveContact(ctx, &types.Contact{PhoneNumbers: []string{"1"}, Email: "a@b.co", GoogleMapsURL: "x"}))
	require.NoError(t, contact.SaveContact(ctx, &types.Contact{PhoneNumbers: []string{"2", "3"}, Email: "c@d.co", GoogleMapsURL: "y"}))

	got, err := contact.Contact(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, got.PhoneNumbers)

	var n int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM "+contactTableName).Scan(&n))
	assert.Equal(t, 1, n)

	require.NoError(t, contact.DeleteContact(ctx))
	_, err = contact.Contact(ctx)
	assert.ErrorIs(t, err, types.ErrContactNotFound)
}

func TestModifyProfile(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	profiles := NewProfileRepository(pool)

	require.NoError(t, profiles.UpsertProfile(ctx, &types.Profile{ID: "fifteen", Name: "Fifteen", Gallery: []string{"a.jpg"}}))

	updated, err := profiles.ModifyProfile(ctx, "fifteen", func(p *types.Profile) error {
		p.MergeUploads([]string{"a.jpg", "b.jpg"}, nil)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, updated.Gallery)

	stored, err := profiles.Profile(ctx, "fifteen")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, stored.Gallery)

	_, err = profiles.ModifyProfile(ctx, "nobody", func(p *types.Profile) error { return nil })
	assert.ErrorIs(t, err, types.ErrProfileNotFound)
}
