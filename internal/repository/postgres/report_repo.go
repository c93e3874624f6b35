package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

const healthReportColumns = `id, patient_name, age, gender, phone, address, village, symptoms, severity,
	onset_date, temperature, notes, water_source, reported_at, reporter_id, reporter_name, priority`

const waterReportColumns = `id, location, source_type, ph, turbidity, tds, temperature, chlorine, ecoli,
	tested_at, reporter_id, reporter_name, latitude, longitude, notes, poor_quality`

type healthReportRepo struct {
	db *sqlx.DB
}

// NewHealthReportRepo creates a new PostgreSQL-backed HealthReportRepository.
func NewHealthReportRepo(db *sqlx.DB) port.HealthReportRepository {
	return &healthReportRepo{db: db}
}

func (r *healthReportRepo) Create(ctx context.Context, report *domain.HealthReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	query := `INSERT INTO health_reports (` + healthReportColumns + `)
		VALUES (:id, :patient_name, :age, :gender, :phone, :address, :village, :symptoms, :severity,
			:onset_date, :temperature, :notes, :water_source, :reported_at, :reporter_id, :reporter_name, :priority)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("healthReportRepo.Create: %w", err)
	}
	return nil
}

func (r *healthReportRepo) List(ctx context.Context) ([]domain.HealthReport, error) {
	reports := []domain.HealthReport{}
	if err := r.db.SelectContext(ctx, &reports,
		"SELECT "+healthReportColumns+" FROM health_reports ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("healthReportRepo.List: %w", err)
	}
	return reports, nil
}

func (r *healthReportRepo) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]domain.HealthReport, error) {
	reports := []domain.HealthReport{}
	if err := r.db.SelectContext(ctx, &reports,
		"SELECT "+healthReportColumns+" FROM health_reports WHERE reporter_id = $1 ORDER BY seq",
		reporterID); err != nil {
		return nil, fmt.Errorf("healthReportRepo.ListByReporter: %w", err)
	}
	return reports, nil
}

type waterReportRepo struct {
	db *sqlx.DB
}

// NewWaterReportRepo creates a new PostgreSQL-backed WaterReportRepository.
func NewWaterReportRepo(db *sqlx.DB) port.WaterReportRepository {
	return &waterReportRepo{db: db}
}

func (r *waterReportRepo) Create(ctx context.Context, report *domain.WaterQualityReport) error {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	query := `INSERT INTO water_reports (` + waterReportColumns + `)
		VALUES (:id, :location, :source_type, :ph, :turbidity, :tds, :temperature, :chlorine, :ecoli,
			:tested_at, :reporter_id, :reporter_name, :latitude, :longitude, :notes, :poor_quality)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("waterReportRepo.Create: %w", err)
	}
	return nil
}

func (r *waterReportRepo) List(ctx context.Context) ([]domain.WaterQualityReport, error) {
	reports := []domain.WaterQualityReport{}
	if err := r.db.SelectContext(ctx, &reports,
		"SELECT "+waterReportColumns+" FROM water_reports ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("waterReportRepo.List: %w", err)
	}
	return reports, nil
}

func (r *waterReportRepo) ListByReporter(ctx context.Context, reporterID uuid.UUID) ([]domain.WaterQualityReport, error) {
	reports := []domain.WaterQualityReport{}
	if err := r.db.SelectContext(ctx, &reports,
		"SELECT "+waterReportColumns+" FROM water_reports WHERE reporter_id = $1 ORDER BY seq",
		reporterID); err != nil {
		return nil, fmt.Errorf("waterReportRepo.ListByReporter: %w", err)
	}
	return reports, nil
}
