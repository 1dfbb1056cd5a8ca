// Package seed loads a fixed sample data set into every collection.
package seed

import (
	"context"
	"fmt"

	"petcare15/pkg/types"

	"github.com/sirupsen/logrus"
)

type UpdateWriter interface {
	ReplaceUpdates(ctx context.Context, updates []*types.Update) error
}

type ContactWriter interface {
	SaveContact(ctx context.Context, contact *types.Contact) error
}

type ProfileWriter interface {
	UpsertProfile(ctx context.Context, profile *types.Profile) error
}

type ApplicationWriter interface {
	UpsertApplication(ctx context.Context, app *types.Application) error
}

type CustomerWriter interface {
	UpsertCustomer(ctx context.Context, customer *types.Customer) error
}

type Repositories struct {
	Updates      UpdateWriter
	Contact      ContactWriter
	Profiles     ProfileWriter
	Applications ApplicationWriter
	Customers    CustomerWriter
}

// Dataset is everything Run writes.
type Dataset struct {
	Updates      []*types.Update
	Contact      *types.Contact
	Profiles     []*types.Profile
	Applications []*types.Application
	Customers    []*types.Customer
}

// Run syncs the sample records into the store. Records are upserted by id,
// so running it twice leaves the same state. Updates are replaced as a whole.
func Run(ctx context.Context, logger *logrus.Logger, repos Repositories, data *Dataset) error {
	if err := repos.Updates.ReplaceUpdates(ctx, data.Updates); err != nil {
		return fmt.Errorf("failed to seed updates: %w", err)
	}
	logger.WithField("count", len(data.Updates)).Info("updates seeded")

	if data.Contact != nil {
		if err := repos.Contact.SaveContact(ctx, data.Contact); err != nil {
			return fmt.Errorf("failed to seed contact: %w", err)
		}
		logger.Info("contact seeded")
	}

	for _, p := range data.Profiles {
		if err := repos.Profiles.UpsertProfile(ctx, p); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", p.ID, err)
		}
	}
	logger.WithField("count", len(data.Profiles)).Info("profiles seeded")

	for _, app := range data.Applications {
		if err := repos.Applications.UpsertApplication(ctx, app); err != nil {
			return fmt.Errorf("failed to seed application %s: %w", app.ID, err)
		}
	}
	logger.WithField("count", len(data.Applications)).Info("applications seeded")

	for _, c := range data.Customers {
		if err := repos.Customers.UpsertCustomer(ctx, c); err != nil {
			return fmt.Errorf("failed to seed customer %s: %w", c.ID, err)
		}
	}
	logger.WithField("count", len(data.Customers)).Info("customers seeded")

	return nil
}
