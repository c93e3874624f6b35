package port

import (
	"context"

	"github.com/google/uuid"

	"healthmon/internal/domain"
)

// HealthReportRepository stores symptom reports, newest last.
type HealthReportRepository interface {
	Create(ctx context.Context, report *domain.HealthReport) error
	List(ctx context.Context) ([]domain.HealthReport, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]domain.HealthReport, error)
}

// WaterReportRepository stores water quality reports, newest last.
type WaterReportRepository interface {
	Create(ctx context.Context, report *domain.WaterQualityReport) error
	List(ctx context.Context) ([]domain.WaterQualityReport, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]domain.WaterQualityReport, error)
}
