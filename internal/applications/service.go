// Package applications moves applicant records through review and promotes
// approved applicants to customers.
package applications

import (
	"context"
	"fmt"

	"petcare15/pkg/types"

	"github.com/sirupsen/logrus"
)

type Repository interface {
	Applications(ctx context.Context) ([]*types.Application, error)
	Application(ctx context.Context, id string) (*types.Application, error)
	ModifyApplication(ctx context.Context, id string, fn func(app *types.Application) (*types.Customer, error)) (*types.Customer, error)
}

type Service struct {
	logger *logrus.Logger
	repo   Repository
}

func NewService(logger *logrus.Logger, repo Repository) *Service {
	return &Service{logger: logger, repo: repo}
}

func (s *Service) Applications(ctx context.Context) ([]*types.Application, error) {
	return s.repo.Applications(ctx)
}

// Approve marks the application approved and makes sure exactly one customer
// exists for it. Approving again returns the existing customer.
func (s *Service) Approve(ctx context.Context, applicationID string) (*types.Customer, error) {
	if applicationID == "" {
		return nil, types.NewValidationError("Missing applicationId")
	}

	var previous types.ApplicationStatus
	customer, err := s.repo.ModifyApplication(ctx, applicationID, func(app *types.Application) (*types.Customer, error) {
		previous = app.Status
		app.Status = types.ApplicationStatusApproved
		return types.NewCustomerFromApplication(app), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to approve application %s: %w", applicationID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": applicationID,
		"customer_id":    customer.ID,
		"from":           previous.String(),
	}).Info("application approved")

	return customer, nil
}

// Reject marks the application rejected. A customer created by an earlier
// approval is left in place.
func (s *Service) Reject(ctx context.Context, applicationID string) error {
	return s.transition(ctx, applicationID, types.ApplicationStatusRejected, func(types.ApplicationStatus) bool {
		return true
	})
}

// Unreject returns a rejected application to pending.
func (s *Service) Unreject(ctx context.Context, applicationID string) error {
	return s.transition(ctx, applicationID, types.ApplicationStatusPending, func(from types.ApplicationStatus) bool {
		return from == types.ApplicationStatusRejected
	})
}

func (s *Service) transition(ctx context.Context, applicationID string, to types.ApplicationStatus, allowed func(from types.ApplicationStatus) bool) error {
	if applicationID == "" {
		return types.NewValidationError("Missing applicationId")
	}

	var previous types.ApplicationStatus
	_, err := s.repo.ModifyApplication(ctx, applicationID, func(app *types.Application) (*types.Customer, error) {
		previous = app.Status
		if !allowed(app.Status) {
			return nil, fmt.Errorf("%w: %s to %s", types.ErrInvalidTransition, app.Status, to)
		}
		app.Status = to
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to move application %s to %s: %w", applicationID, to, err)
	}

	s.logger.WithFields(logrus.Fields{
		"application_id": applicationID,
		"from":           previous.String(),
		"to":             to.String(),
	}).Info("application status changed")

	return nil
}
