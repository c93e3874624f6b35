package noop

import (
	"context"

	"go.uber.org/zap"

	"healthmon/internal/domain"
	"healthmon/internal/port"
)

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates an EmailSender that only logs what it would have sent.
func NewNoopSender(logger *zap.Logger) port.EmailSender {
	return &noopSender{logger: logger}
}

func (s *noopSender) SendAlertEmail(_ context.Context, toEmail, toName string, alert *domain.Alert) error {
	s.logger.Info("noop alert email",
		zap.String("to", toEmail),
		zap.String("name", toName),
		zap.String("alert_id", alert.ID.String()),
		zap.String("severity", string(alert.Severity)),
		zap.String("title", alert.Title),
	)
	return nil
}
