package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

const villageColumns = `id, name, district, latitude, longitude, population, risk_level,
	water_sources, recent_cases, asha_worker`

type villageRepo struct {
	db *sqlx.DB
}

// NewVillageRepo creates a new PostgreSQL-backed VillageRepository.
func NewVillageRepo(db *sqlx.DB) port.VillageRepository {
	return &villageRepo{db: db}
}

func (r *villageRepo) List(ctx context.Context) ([]domain.Village, error) {
	villages := []domain.Village{}
	if err := r.db.SelectContext(ctx, &villages,
		"SELECT "+villageColumns+" FROM villages ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("villageRepo.List: %w", err)
	}
	return villages, nil
}

func (r *villageRepo) ListByDistrict(ctx context.Context, district string) ([]domain.Village, error) {
	villages := []domain.Village{}
	if err := r.db.SelectContext(ctx, &villages,
		"SELECT "+villageColumns+" FROM villages WHERE district = $1 ORDER BY seq", district); err != nil {
		return nil, fmt.Errorf("villageRepo.ListByDistrict: %w", err)
	}
	return villages, nil
}

func (r *villageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Village, error) {
	var v domain.Village
	err := r.db.GetContext(ctx, &v,
		"SELECT "+villageColumns+" FROM villages WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("villageRepo.GetByID: %w", err)
	}
	return &v, nil
}

// Upsert inserts the village or replaces the record with the same name.
// The stored id is written back to village.
func (r *villageRepo) Upsert(ctx context.Context, village *domain.Village) error {
	if village.ID == uuid.Nil {
		village.ID = uuid.New()
	}
	query := `INSERT INTO villages (` + villageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (name) DO UPDATE SET
			district = EXCLUDED.district,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			population = EXCLUDED.population,
			risk_level = EXCLUDED.risk_level,
			water_sources = EXCLUDED.water_sources,
			recent_cases = EXCLUDED.recent_cases,
			asha_worker = EXCLUDED.asha_worker
		RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		village.ID, village.Name, village.District, village.Latitude, village.Longitude,
		village.Population, village.RiskLevel, village.WaterSources, village.RecentCases,
		village.AshaWorker).Scan(&village.ID)
	if err != nil {
		return fmt.Errorf("villageRepo.Upsert: %w", err)
	}
	return nil
}
