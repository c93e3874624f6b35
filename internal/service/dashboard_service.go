package service

import (
	"context"
	"fmt"
	"time"

	"healthmon/internal/dashboard"
	"healthmon/internal/domain"
	"healthmon/internal/i18n"
)

// dashboardLabels are the catalog keys the dashboard chrome needs.
var dashboardLabels = []string{
	"nav.dashboard", "nav.reports", "nav.alerts", "nav.analytics", "nav.settings",
	"dashboard.overview", "dashboard.active_alerts", "dashboard.water_quality", "dashboard.health_reports",
	"auth.logout",
}

// DashboardView is the role specific dashboard with its localized labels.
type DashboardView struct {
	Role         domain.UserRole        `json:"role"`
	RoleLabel    string                 `json:"role_label"`
	Greeting     string                 `json:"greeting"`
	Language     i18n.Language          `json:"language"`
	Capabilities dashboard.Capabilities `json:"capabilities"`
	Panel        dashboard.Panel        `json:"panel"`
	Labels       map[string]string      `json:"labels"`
}

// DashboardService composes dashboards.
type DashboardService interface {
	Get(ctx context.Context, user *domain.User, lang i18n.Language) (*DashboardView, error)
}

type dashboardService struct {
	repos Repositories
	now   func() time.Time
}

// NewDashboardService creates a new DashboardService implementation.
func NewDashboardService(repos Repositories) DashboardService {
	return &dashboardService{repos: repos, now: time.Now}
}

func (s *dashboardService) Get(ctx context.Context, user *domain.User, lang i18n.Language) (*DashboardView, error) {
	caps, err := capabilities(user)
	if err != nil {
		return nil, err
	}
	data, err := s.repos.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard.Get: %w", err)
	}
	panel, err := dashboard.For(user, data, s.now())
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(dashboardLabels))
	for _, key := range dashboardLabels {
		labels[key] = i18n.Translate(lang, key)
	}
	return &DashboardView{
		Role:         user.Role,
		RoleLabel:    i18n.Translate(lang, i18n.RoleKey(user.Role)),
		Greeting:     fmt.Sprintf("%s, %s", i18n.Translate(lang, "dashboard.welcome"), user.Name),
		Language:     lang,
		Capabilities: caps,
		Panel:        panel,
		Labels:       labels,
	}, nil
}
