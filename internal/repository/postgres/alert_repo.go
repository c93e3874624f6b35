package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

const alertColumns = `id, type, severity, title, description, village, district, created_at, status`

type alertRepo struct {
	db *sqlx.DB
}

// NewAlertRepo creates a new PostgreSQL-backed AlertRepository.
func NewAlertRepo(db *sqlx.DB) port.AlertRepository {
	return &alertRepo{db: db}
}

func (r *alertRepo) Create(ctx context.Context, alert *domain.Alert) error {
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		alert.ID, alert.Type, alert.Severity, alert.Title, alert.Description,
		alert.Village, alert.District, alert.CreatedAt, alert.Status)
	if err != nil {
		return fmt.Errorf("alertRepo.Create: %w", err)
	}
	return nil
}

func (r *alertRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	var alert domain.Alert
	err := r.db.GetContext(ctx, &alert,
		"SELECT "+alertColumns+" FROM alerts WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("alertRepo.GetByID: %w", err)
	}
	return &alert, nil
}

func (r *alertRepo) List(ctx context.Context) ([]domain.Alert, error) {
	alerts := []domain.Alert{}
	if err := r.db.SelectContext(ctx, &alerts,
		"SELECT "+alertColumns+" FROM alerts ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("alertRepo.List: %w", err)
	}
	return alerts, nil
}

func (r *alertRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.AlertStatus) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE alerts SET status = $1 WHERE id = $2 AND status = $3", to, id, from)
	if err != nil {
		return fmt.Errorf("alertRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows > 0 {
		return nil
	}

	// Nothing matched: either the alert is gone or another writer moved it.
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM alerts WHERE id = $1)", id); err != nil {
		return fmt.Errorf("alertRepo.UpdateStatus: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrInvalidTransition
}
