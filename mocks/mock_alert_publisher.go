package mocks

import (
	"github.com/stretchr/testify/mock"

	"healthmon/internal/domain"
)

// MockAlertPublisher is a mock implementation of port.AlertPublisher.
type MockAlertPublisher struct {
	mock.Mock
}

func (m *MockAlertPublisher) Publish(alert domain.Alert) {
	m.Called(alert)
}
