package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/export"
	"healthmon/internal/port"
)

// ExportResult is an encoded export, plus its archive URL when archived.
type ExportResult struct {
	Artifact *export.Artifact
	Location string
}

// ExportService produces dashboard data exports.
type ExportService interface {
	Export(ctx context.Context, user *domain.User, format string) (*ExportResult, error)
}

type exportService struct {
	repos   Repositories
	storage port.ObjectStorage
	cfg     config.ExportConfig
	now     func() time.Time
	logger  *zap.Logger
}

// NewExportService creates a new ExportService implementation. storage may
// be nil, in which case exports are never archived.
func NewExportService(repos Repositories, storage port.ObjectStorage, cfg config.ExportConfig, logger *zap.Logger) ExportService {
	return &exportService{repos: repos, storage: storage, cfg: cfg, now: time.Now, logger: logger}
}

func (s *exportService) Export(ctx context.Context, user *domain.User, format string) (*ExportResult, error) {
	caps, err := capabilities(user)
	if err != nil {
		return nil, err
	}
	if !caps.ExportData {
		return nil, domain.ErrForbidden
	}

	data, err := s.repos.loadScoped(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("export.Export: %w", err)
	}
	now := s.now()
	artifact, err := export.Encode(export.Build(data, now), format)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{Artifact: artifact}
	if s.storage != nil && s.cfg.ArchiveEnabled {
		result.Location = s.archive(ctx, user, artifact, now)
	}
	return result, nil
}

// archive uploads the artifact and returns a presigned download URL. A
// failed upload only costs the archive copy, so it is logged and skipped.
func (s *exportService) archive(ctx context.Context, user *domain.User, a *export.Artifact, now time.Time) string {
	key := fmt.Sprintf("exports/%s/%s/%s-%s-%s",
		now.UTC().Format("2006/01/02"), user.ID, now.UTC().Format("150405"), uuid.NewString(), a.Filename)
	if _, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(a.Body),
		ContentType: a.ContentType,
		Size:        int64(len(a.Body)),
	}); err != nil {
		s.logger.Warn("archiving export", zap.String("key", key), zap.Error(err))
		return ""
	}
	url, err := s.storage.GetPresignedURL(ctx, s.cfg.Bucket, key, s.cfg.PresignExpiry)
	if err != nil {
		s.logger.Warn("presigning export", zap.String("key", key), zap.Error(err))
		return ""
	}
	s.logger.Info("export archived", zap.String("key", key), zap.String("user_id", user.ID.String()))
	return url
}
