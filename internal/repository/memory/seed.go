package memory

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"healthmon/internal/fixtures"
	"healthmon/internal/port"
)

// Repositories groups the in-memory repositories.
type Repositories struct {
	Users        port.UserRepository
	Villages     port.VillageRepository
	HealthReport port.HealthReportRepository
	WaterReport  port.WaterReportRepository
	Alerts       port.AlertRepository
}

// NewEmpty returns repositories with no records.
func NewEmpty() *Repositories {
	return &Repositories{
		Users:        NewUserRepo(),
		Villages:     NewVillageRepo(),
		HealthReport: NewHealthReportRepo(),
		WaterReport:  NewWaterReportRepo(),
		Alerts:       NewAlertRepo(),
	}
}

// NewSeeded returns repositories loaded with the demo fixtures.
func NewSeeded() (*Repositories, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(fixtures.DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}
	return &Repositories{
		Users:        NewUserRepo(fixtures.Users(string(hash))...),
		Villages:     NewVillageRepo(fixtures.Villages()...),
		HealthReport: NewHealthReportRepo(fixtures.HealthReports()...),
		WaterReport:  NewWaterReportRepo(fixtures.WaterReports()...),
		Alerts:       NewAlertRepo(fixtures.Alerts()...),
	}, nil
}
