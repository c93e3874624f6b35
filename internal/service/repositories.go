package service

import (
	"context"
	"fmt"

	"healthmon/internal/dashboard"
	"healthmon/internal/domain"
	"healthmon/internal/port"
)

// Repositories bundles the stores the services read and write.
type Repositories struct {
	Users         port.UserRepository
	Villages      port.VillageRepository
	HealthReports port.HealthReportRepository
	WaterReports  port.WaterReportRepository
	Alerts        port.AlertRepository
}

// load reads every record set into a dashboard.Data.
func (r Repositories) load(ctx context.Context) (dashboard.Data, error) {
	var (
		data dashboard.Data
		err  error
	)
	if data.Users, err = r.Users.List(ctx); err != nil {
		return data, fmt.Errorf("loading users: %w", err)
	}
	if data.Villages, err = r.Villages.List(ctx); err != nil {
		return data, fmt.Errorf("loading villages: %w", err)
	}
	if data.HealthReports, err = r.HealthReports.List(ctx); err != nil {
		return data, fmt.Errorf("loading health reports: %w", err)
	}
	if data.WaterReports, err = r.WaterReports.List(ctx); err != nil {
		return data, fmt.Errorf("loading water reports: %w", err)
	}
	if data.Alerts, err = r.Alerts.List(ctx); err != nil {
		return data, fmt.Errorf("loading alerts: %w", err)
	}
	return data, nil
}

// loadScoped loads the records user may see.
func (r Repositories) loadScoped(ctx context.Context, user *domain.User) (dashboard.Data, error) {
	data, err := r.load(ctx)
	if err != nil {
		return data, err
	}
	return dashboard.Scope(user, data), nil
}

// capabilities resolves the user's capability set; unknown roles are forbidden.
func capabilities(user *domain.User) (dashboard.Capabilities, error) {
	caps, err := dashboard.CapabilitiesFor(user.Role)
	if err != nil {
		return caps, domain.ErrForbidden
	}
	return caps, nil
}
