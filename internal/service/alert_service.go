package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

// AlertService lists alerts and moves them through their lifecycle.
type AlertService interface {
	List(ctx context.Context, user *domain.User, status domain.AlertStatus) ([]domain.Alert, error)
	Acknowledge(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Alert, error)
	Resolve(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Alert, error)
}

type alertService struct {
	repos     Repositories
	publisher port.AlertPublisher
	logger    *zap.Logger
}

// NewAlertService creates a new AlertService implementation.
func NewAlertService(repos Repositories, publisher port.AlertPublisher, logger *zap.Logger) AlertService {
	return &alertService{repos: repos, publisher: publisher, logger: logger}
}

// List returns the alerts visible to user, optionally only those in status.
func (s *alertService) List(ctx context.Context, user *domain.User, status domain.AlertStatus) ([]domain.Alert, error) {
	if status != "" && !status.Valid() {
		return nil, &domain.ValidationError{Invalid: []string{"status"}}
	}
	data, err := s.repos.loadScoped(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("alert.List: %w", err)
	}
	if status == "" {
		return data.Alerts, nil
	}
	return domain.FilterAlertsByStatus(data.Alerts, status), nil
}

func (s *alertService) Acknowledge(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Alert, error) {
	return s.advance(ctx, user, id, domain.AlertAcknowledged)
}

func (s *alertService) Resolve(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Alert, error) {
	return s.advance(ctx, user, id, domain.AlertResolved)
}

func (s *alertService) advance(ctx context.Context, user *domain.User, id uuid.UUID, to domain.AlertStatus) (*domain.Alert, error) {
	caps, err := capabilities(user)
	if err != nil {
		return nil, err
	}
	if !caps.AcknowledgeAlerts {
		return nil, domain.ErrForbidden
	}

	alert, err := s.repos.Alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleDistrictOfficer && user.District != "" && alert.District != user.District {
		return nil, domain.ErrForbidden
	}

	from := alert.Status
	if err := alert.Advance(to); err != nil {
		return nil, err
	}
	if err := s.repos.Alerts.UpdateStatus(ctx, id, from, to); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("alert.advance: %w", err)
	}

	s.logger.Info("alert status changed",
		zap.String("alert_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("by", user.ID.String()),
	)
	s.publisher.Publish(*alert)
	return alert, nil
}
