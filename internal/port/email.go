package port

import (
	"context"

	"healthmon/internal/domain"
)

// EmailSender defines the contract for sending alert emails to officers.
type EmailSender interface {
	SendAlertEmail(ctx context.Context, toEmail, toName string, alert *domain.Alert) error
}
