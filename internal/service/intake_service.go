package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/intake"
	"healthmon/internal/port"
)

// HealthSubmission is the outcome of filing a symptom report.
type HealthSubmission struct {
	Report *domain.HealthReport `json:"report"`
	Result *intake.Result       `json:"result"`
	Alert  *domain.Alert        `json:"alert,omitempty"`
}

// WaterSubmission is the outcome of filing a water test.
type WaterSubmission struct {
	Report *domain.WaterQualityReport `json:"report"`
	Result *intake.Result             `json:"result"`
	Alert  *domain.Alert              `json:"alert,omitempty"`
}

// IntakeService files field reports and raises alerts for flagged ones.
type IntakeService interface {
	SubmitHealthReport(ctx context.Context, reporter *domain.User, fields intake.SymptomFields) (*HealthSubmission, error)
	SubmitWaterReport(ctx context.Context, reporter *domain.User, fields intake.WaterFields) (*WaterSubmission, error)
	ListHealthReports(ctx context.Context, user *domain.User) ([]domain.HealthReport, error)
	ListWaterReports(ctx context.Context, user *domain.User) ([]domain.WaterQualityReport, error)
}

type intakeService struct {
	repos     Repositories
	publisher port.AlertPublisher
	email     port.EmailSender
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

// NewIntakeService creates a new IntakeService implementation.
func NewIntakeService(
	repos Repositories,
	publisher port.AlertPublisher,
	email port.EmailSender,
	cfg config.IntakeConfig,
	logger *zap.Logger,
) IntakeService {
	return &intakeService{
		repos:     repos,
		publisher: publisher,
		email:     email,
		timeout:   cfg.SubmitTimeout,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *intakeService) SubmitHealthReport(ctx context.Context, reporter *domain.User, fields intake.SymptomFields) (*HealthSubmission, error) {
	caps, err := capabilities(reporter)
	if err != nil {
		return nil, err
	}
	if !caps.SubmitReports {
		return nil, domain.ErrForbidden
	}

	form := intake.NewSymptomForm(s.timeout)
	if err := form.Update(func(f *intake.SymptomFields) { *f = fields }); err != nil {
		return nil, err
	}

	var report *domain.HealthReport
	result, err := form.Submit(ctx, func(ctx context.Context, f intake.SymptomFields) error {
		report = f.HealthReport(reporter, s.now())
		report.ID = uuid.New()
		if err := s.repos.HealthReports.Create(ctx, report); err != nil {
			return fmt.Errorf("intake.SubmitHealthReport: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &HealthSubmission{Report: report, Result: result}
	if result.Flagged {
		s.logger.Info("priority health report",
			zap.String("report_id", report.ID.String()),
			zap.String("village", report.Village),
			zap.String("severity", string(report.Severity)),
		)
		district := s.resolveDistrict(ctx, reporter, report.Village)
		out.Alert = s.raise(ctx, healthAlert(report, district))
	}
	return out, nil
}

func (s *intakeService) SubmitWaterReport(ctx context.Context, reporter *domain.User, fields intake.WaterFields) (*WaterSubmission, error) {
	caps, err := capabilities(reporter)
	if err != nil {
		return nil, err
	}
	if !caps.SubmitReports {
		return nil, domain.ErrForbidden
	}

	form := intake.NewWaterForm(s.timeout, s.now())
	if err := form.Update(func(f *intake.WaterFields) {
		// Blank date and time keep the form defaults.
		date, clock := f.TestDate, f.TestTime
		*f = fields
		if strings.TrimSpace(f.TestDate) == "" {
			f.TestDate = date
		}
		if strings.TrimSpace(f.TestTime) == "" {
			f.TestTime = clock
		}
	}); err != nil {
		return nil, err
	}

	var report *domain.WaterQualityReport
	result, err := form.Submit(ctx, func(ctx context.Context, f intake.WaterFields) error {
		report = f.WaterReport(reporter)
		report.ID = uuid.New()
		if err := s.repos.WaterReports.Create(ctx, report); err != nil {
			return fmt.Errorf("intake.SubmitWaterReport: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &WaterSubmission{Report: report, Result: result}
	if result.Flagged {
		s.logger.Info("poor water quality report",
			zap.String("report_id", report.ID.String()),
			zap.String("location", report.Location),
			zap.Strings("breaches", domain.WaterQualityBreaches(report.Reading())),
		)
		village := s.matchVillage(ctx, report.Location)
		name, district := reporter.Village, reporter.District
		if village != nil {
			name, district = village.Name, village.District
		}
		if name == "" {
			name = report.Location
		}
		out.Alert = s.raise(ctx, waterAlert(report, name, district))
	}
	return out, nil
}

func (s *intakeService) ListHealthReports(ctx context.Context, user *domain.User) ([]domain.HealthReport, error) {
	if user.Role == domain.RoleFieldWorker {
		return s.repos.HealthReports.ListByReporter(ctx, user.ID)
	}
	data, err := s.repos.loadScoped(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("intake.ListHealthReports: %w", err)
	}
	return data.HealthReports, nil
}

func (s *intakeService) ListWaterReports(ctx context.Context, user *domain.User) ([]domain.WaterQualityReport, error) {
	if user.Role == domain.RoleFieldWorker {
		return s.repos.WaterReports.ListByReporter(ctx, user.ID)
	}
	data, err := s.repos.loadScoped(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("intake.ListWaterReports: %w", err)
	}
	return data.WaterReports, nil
}

// resolveDistrict finds the district of the named village, falling back to
// the reporter's district.
func (s *intakeService) resolveDistrict(ctx context.Context, reporter *domain.User, village string) string {
	villages, err := s.repos.Villages.List(ctx)
	if err != nil {
		s.logger.Warn("resolving alert district", zap.Error(err))
		return reporter.District
	}
	for _, v := range villages {
		if strings.EqualFold(v.Name, village) {
			return v.District
		}
	}
	return reporter.District
}

// matchVillage returns the first village whose name appears in location.
func (s *intakeService) matchVillage(ctx context.Context, location string) *domain.Village {
	villages, err := s.repos.Villages.List(ctx)
	if err != nil {
		s.logger.Warn("matching water test location", zap.Error(err))
		return nil
	}
	lower := strings.ToLower(location)
	for i := range villages {
		if strings.Contains(lower, strings.ToLower(villages[i].Name)) {
			return &villages[i]
		}
	}
	return nil
}

// raise stores, publishes and emails a new alert. The report is already
// persisted, so failures here are logged instead of failing the submission.
func (s *intakeService) raise(ctx context.Context, alert domain.Alert) *domain.Alert {
	alert.ID = uuid.New()
	alert.CreatedAt = s.now().UTC()
	alert.Status = domain.AlertActive

	if err := s.repos.Alerts.Create(ctx, &alert); err != nil {
		s.logger.Error("storing alert", zap.String("title", alert.Title), zap.Error(err))
		return nil
	}
	s.logger.Info("alert raised",
		zap.String("alert_id", alert.ID.String()),
		zap.String("type", string(alert.Type)),
		zap.String("severity", string(alert.Severity)),
		zap.String("district", alert.District),
	)
	s.publisher.Publish(alert)
	s.notifyOfficers(ctx, &alert)
	return &alert
}

func (s *intakeService) notifyOfficers(ctx context.Context, alert *domain.Alert) {
	officers, err := s.repos.Users.ListByRole(ctx, domain.RoleDistrictOfficer)
	if err != nil {
		s.logger.Error("listing officers for alert email", zap.Error(err))
		return
	}
	for _, o := range officers {
		if o.District != "" && o.District != alert.District {
			continue
		}
		if err := s.email.SendAlertEmail(ctx, o.Email, o.Name, alert); err != nil {
			s.logger.Error("sending alert email",
				zap.String("alert_id", alert.ID.String()),
				zap.String("to", o.Email),
				zap.Error(err),
			)
		}
	}
}

func healthAlert(r *domain.HealthReport, district string) domain.Alert {
	severity := domain.AlertSeverityHigh
	if r.Severity == domain.SeveritySevere {
		severity = domain.AlertSeverityCritical
	}
	var labels []string
	for _, id := range domain.CriticalSymptoms(r.Symptoms) {
		s, _ := domain.LookupSymptom(id)
		labels = append(labels, s.Label)
	}
	return domain.Alert{
		Type:     domain.AlertOutbreakRisk,
		Severity: severity,
		Title:    "Critical Symptoms Reported in " + r.Village,
		Description: fmt.Sprintf("%s (%d) reported %s with %s severity. Reported by %s.",
			r.PatientName, r.Age, strings.Join(labels, ", "), r.Severity, r.ReporterName),
		Village:  r.Village,
		District: district,
	}
}

func waterAlert(r *domain.WaterQualityReport, village, district string) domain.Alert {
	severity := domain.AlertSeverityHigh
	title := "Poor Water Quality at " + r.Location
	if r.EColi == domain.EColiDetected {
		severity = domain.AlertSeverityCritical
		title = "E. coli Detected at " + r.Location
	}
	return domain.Alert{
		Type:     domain.AlertWaterContamination,
		Severity: severity,
		Title:    title,
		Description: fmt.Sprintf("Water test by %s breached limits for %s.",
			r.ReporterName, strings.Join(domain.WaterQualityBreaches(r.Reading()), ", ")),
		Village:  village,
		District: district,
	}
}
