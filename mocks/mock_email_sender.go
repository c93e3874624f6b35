package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendAlertEmail(ctx context.Context, toEmail, toName string, alert *domain.Alert) error {
	args := m.Called(ctx, toEmail, toName, alert)
	return args.Error(0)
}
