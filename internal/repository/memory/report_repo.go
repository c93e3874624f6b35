package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

type healthReportRepository struct {
	mu      sync.RWMutex
	reports []domain.HealthReport
}

// NewHealthReportRepo creates a HealthReportRepository holding reports.
func NewHealthReportRepo(reports ...domain.HealthReport) port.HealthReportRepository {
	return &healthReportRepository{reports: append([]domain.HealthReport(nil), reports...)}
}

func (r *healthReportRepository) Create(_ context.Context, report *domain.HealthReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	r.reports = append(r.reports, *report)
	return nil
}

func (r *healthReportRepository) List(_ context.Context) ([]domain.HealthReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.HealthReport{}, r.reports...), nil
}

func (r *healthReportRepository) ListByReporter(_ context.Context, reporterID uuid.UUID) ([]domain.HealthReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.HealthReport{}
	for i := range r.reports {
		if r.reports[i].ReporterID == reporterID {
			out = append(out, r.reports[i])
		}
	}
	return out, nil
}

type waterReportRepository struct {
	mu      sync.RWMutex
	reports []domain.WaterQualityReport
}

// NewWaterReportRepo creates a WaterReportRepository holding reports.
func NewWaterReportRepo(reports ...domain.WaterQualityReport) port.WaterReportRepository {
	return &waterReportRepository{reports: append([]domain.WaterQualityReport(nil), reports...)}
}

func (r *waterReportRepository) Create(_ context.Context, report *domain.WaterQualityReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	r.reports = append(r.reports, *report)
	return nil
}

func (r *waterReportRepository) List(_ context.Context) ([]domain.WaterQualityReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.WaterQualityReport{}, r.reports...), nil
}

func (r *waterReportRepository) ListByReporter(_ context.Context, reporterID uuid.UUID) ([]domain.WaterQualityReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.WaterQualityReport{}
	for i := range r.reports {
		if r.reports[i].ReporterID == reporterID {
			out = append(out, r.reports[i])
		}
	}
	return out, nil
}
