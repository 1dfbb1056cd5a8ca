// Package customers holds moderation actions on customer records.
package customers

import (
	"context"
	"fmt"

	"petcare15/pkg/types"

	"github.com/sirupsen/logrus"
)

var ErrCustomerProfileNotFound = fmt.Errorf("customer profile %w", types.ErrNotFound)

type Repository interface {
	Customers(ctx context.Context) ([]*types.Customer, error)
	Customer(ctx context.Context, id string) (*types.Customer, error)
	ModifyCustomer(ctx context.Context, id string, fn func(customer *types.Customer) error) (*types.Customer, error)
}

type Service struct {
	logger *logrus.Logger
	repo   Repository
}

func NewService(logger *logrus.Logger, repo Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

func (s *Service) Customers(ctx context.Context) ([]*types.Customer, error) {
	return s.repo.Customers(ctx)
}

func (s *Service) Customer(ctx context.Context, id string) (*types.Customer, error) {
	return s.repo.Customer(ctx, id)
}

// Blacklist bars the customer from the given profile. The flag is never
// cleared again; blacklisting twice is a no-op.
func (s *Service) Blacklist(ctx context.Context, customerID, profileID string) (*types.Customer, error) {
	if profileID == "" {
		return nil, types.NewValidationError("Missing profileId")
	}

	customer, err := s.repo.ModifyCustomer(ctx, customerID, func(c *types.Customer) error {
		entry := c.Profile(profileID)
		if entry == nil {
			return ErrCustomerProfileNotFound
		}
		entry.BlackListed = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to blacklist customer %s for profile %s: %w", customerID, profileID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": customerID,
		"profile_id":  profileID,
	}).Info("customer blacklisted")

	return customer, nil
}
