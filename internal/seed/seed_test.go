package seed

import (
	"context"
	"errors"
	"io"
	"testing"

	"petcare15/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	updates      []*types.Update
	contact      *types.Contact
	profiles     map[string]*types.Profile
	applications map[string]*types.Application
	customers    map[string]*types.Customer
	failProfile  error
}

func newRecorder() *recorder {
	return &recorder{
		profiles:     map[string]*types.Profile{},
		applications: map[string]*types.Application{},
		customers:    map[string]*types.Customer{},
	}
}

func (r *recorder) ReplaceUpdates(ctx context.Context, updates []*types.Update) error {
	r.updates = updates
	return nil
}

func (r *recorder) SaveContact(ctx context.Context, contact *types.Contact) error {
	r.contact = contact
	return nil
}

func (r *recorder) UpsertProfile(ctx context.Context, profile *types.Profile) error {
	if r.failProfile != nil {
		return r.failProfile
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *recorder) UpsertApplication(ctx context.Context, app *types.Application) error {
	r.applications[app.ID] = app
	return nil
}

func (r *recorder) UpsertCustomer(ctx context.Context, customer *types.Customer) error {
	r.customers[customer.ID] = customer
	return nil
}

func (r *recorder) repos() Repositories {
	return Repositories{Updates: r, Contact: r, Profiles: r, Applications: r, Customers: r}
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRun(t *testing.T) {
	rec := newRecorder()
	data := Sample()

	require.NoError(t, Run(context.Background(), quietLogger(), rec.repos(), data))
	require.NoError(t, Run(context.Background(), quietLogger(), rec.repos(), data))

	assert.Len(t, rec.updates, 2)
	assert.Equal(t, "info@petcare15.com", rec.contact.Email)
	assert.Len(t, rec.profiles, 3)
	assert.Len(t, rec.applications, 4)
	assert.Len(t, rec.customers, 2)
}

func TestRunStopsOnError(t *testing.T) {
	rec := newRecorder()
	rec.failProfile = errors.New("boom")

	err := Run(context.Background(), quietLogger(), rec.repos(), Sample())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed profile fifteen")
	assert.Empty(t, rec.applications)
}

func TestSampleIsConsistent(t *testing.T) {
	data := Sample()

	assert.LessOrEqual(t, len(data.Contact.PhoneNumbers), types.MaxContactPhoneNumbers)

	apps := map[string]*types.Application{}
	for _, app := range data.Applications {
		assert.True(t, app.Status.Valid(), app.ID)
		apps[app.ID] = app
	}

	profiles := map[string]bool{}
	for _, p := range data.Profiles {
		profiles[p.ID] = true
	}

	seenApps := map[string]bool{}
	for _, c := range data.Customers {
		app, ok := apps[c.ApplicationID]
		require.True(t, ok, "customer %s points at a missing application", c.ID)
		assert.Equal(t, types.ApplicationStatusApproved, app.Status)
		assert.Equal(t, types.CustomerIDForApplication(app.ID), c.ID)
		assert.False(t, seenApps[c.ApplicationID], "application %s has two customers", c.ApplicationID)
		seenApps[c.ApplicationID] = true

		for _, entry := range c.Profiles {
			assert.True(t, profiles[entry.ProfileID], "customer %s references unknown profile %s", c.ID, entry.ProfileID)
		}
	}
}
