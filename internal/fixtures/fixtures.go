// Package fixtures holds the demo registry and sample records the service
// ships with. The same data seeds the in-memory store and the seed command.
package fixtures

import (
	"time"

	"github.com/google/uuid"

	"healthmon/internal/domain"
)

// DemoPassword is the password of every demo account.
const DemoPassword = "demo123"

var namespace = uuid.MustParse("9b1f6c4e-4a57-4c1e-9d8b-2f2c6a1e5d10")

// ID derives a stable identifier for a fixture record.
func ID(kind, key string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(kind+"/"+key))
}

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func f(v float64) *float64 { return &v }

var created = ts("2024-01-01T00:00:00Z")

// Users returns the demo accounts. passwordHash is stored on each record.
func Users(passwordHash string) []domain.User {
	return []domain.User{
		{
			ID:           ID("user", "1"),
			Name:         "Priya Sharma",
			Email:        "asha@example.com",
			PasswordHash: passwordHash,
			Role:         domain.RoleFieldWorker,
			Village:      "Jorhat",
			District:     "Jorhat",
			Phone:        "+91 9876543210",
			CreatedAt:    created,
		},
		{
			ID:           ID("user", "2"),
			Name:         "Dr. Rajesh Kumar",
			Email:        "officer@example.com",
			PasswordHash: passwordHash,
			Role:         domain.RoleDistrictOfficer,
			District:     "Jorhat",
			Phone:        "+91 9876543211",
			CreatedAt:    created,
		},
		{
			ID:           ID("user", "3"),
			Name:         "Admin User",
			Email:        "admin@example.com",
			PasswordHash: passwordHash,
			Role:         domain.RoleAdmin,
			Phone:        "+91 9876543212",
			CreatedAt:    created,
		},
	}
}

// Villages returns the sample villages.
func Villages() []domain.Village {
	return []domain.Village{
		{ID: ID("village", "1"), Name: "Majuli Island", District: "Majuli", Latitude: 26.9584, Longitude: 94.2075,
			Population: 1200, RiskLevel: domain.RiskHigh, WaterSources: 3, RecentCases: 12, AshaWorker: "Sunita Devi"},
		{ID: ID("village", "2"), Name: "Jorhat Town", District: "Jorhat", Latitude: 26.7509, Longitude: 94.2037,
			Population: 2500, RiskLevel: domain.RiskMedium, WaterSources: 5, RecentCases: 3, AshaWorker: "Priya Sharma"},
		{ID: ID("village", "3"), Name: "Dibrugarh Central", District: "Dibrugarh", Latitude: 27.4728, Longitude: 94.9120,
			Population: 3200, RiskLevel: domain.RiskLow, WaterSources: 8, RecentCases: 1, AshaWorker: "Meera Gogoi"},
		{ID: ID("village", "4"), Name: "Sivasagar Village", District: "Sivasagar", Latitude: 26.9854, Longitude: 94.6300,
			Population: 1800, RiskLevel: domain.RiskMedium, WaterSources: 4, RecentCases: 5, AshaWorker: "Rina Borah"},
		{ID: ID("village", "5"), Name: "Golaghat Market", District: "Golaghat", Latitude: 26.5264, Longitude: 93.9596,
			Population: 1500, RiskLevel: domain.RiskLow, WaterSources: 6, RecentCases: 0, AshaWorker: "Kavita Das"},
	}
}

// HealthReports returns the sample symptom reports.
func HealthReports() []domain.HealthReport {
	return []domain.HealthReport{
		{
			ID:           ID("health", "1"),
			PatientName:  "Ramesh Kumar",
			Age:          35,
			Village:      "Majuli Island",
			Symptoms:     domain.SymptomSet{"fever", "diarrhea", "vomiting"},
			Severity:     domain.SeveritySevere,
			WaterSource:  domain.SourceRiver,
			ReportedAt:   ts("2024-01-15T14:30:00Z"),
			ReporterID:   ID("worker", "Sunita Devi"),
			ReporterName: "Sunita Devi",
			Priority:     true,
		},
		{
			ID:           ID("health", "2"),
			PatientName:  "Anjali Borah",
			Age:          28,
			Village:      "Jorhat Town",
			Symptoms:     domain.SymptomSet{"stomach_pain", "nausea"},
			Severity:     domain.SeverityMild,
			WaterSource:  domain.SourceVillageWell,
			ReportedAt:   ts("2024-01-15T10:15:00Z"),
			ReporterID:   ID("user", "1"),
			ReporterName: "Priya Sharma",
		},
	}
}

// WaterReports returns the sample water tests.
func WaterReports() []domain.WaterQualityReport {
	return []domain.WaterQualityReport{
		{
			ID:           ID("water", "1"),
			Location:     "Majuli River Point A",
			SourceType:   domain.SourceRiver,
			PH:           f(5.8),
			Turbidity:    f(8.5),
			TDS:          f(850),
			Temperature:  f(28.5),
			Chlorine:     f(0.0),
			EColi:        domain.EColiDetected,
			TestedAt:     ts("2024-01-15T09:00:00Z"),
			ReporterID:   ID("worker", "Sunita Devi"),
			ReporterName: "Sunita Devi",
			Latitude:     f(26.9584),
			Longitude:    f(94.2075),
			PoorQuality:  true,
		},
		{
			ID:           ID("water", "2"),
			Location:     "Jorhat Village Well #1",
			SourceType:   domain.SourceVillageWell,
			PH:           f(7.2),
			Turbidity:    f(2.1),
			TDS:          f(450),
			Temperature:  f(26.0),
			Chlorine:     f(0.3),
			EColi:        domain.EColiNotDetected,
			TestedAt:     ts("2024-01-15T08:30:00Z"),
			ReporterID:   ID("user", "1"),
			ReporterName: "Priya Sharma",
			Latitude:     f(26.7509),
			Longitude:    f(94.2037),
		},
	}
}

// Alerts returns the sample alerts.
func Alerts() []domain.Alert {
	return []domain.Alert{
		{
			ID:          ID("alert", "1"),
			Type:        domain.AlertOutbreakRisk,
			Severity:    domain.AlertSeverityCritical,
			Title:       "Potential Cholera Outbreak",
			Description: "Multiple cases of severe diarrhea and vomiting reported in Majuli Island. Water contamination suspected.",
			Village:     "Majuli Island",
			District:    "Majuli",
			CreatedAt:   ts("2024-01-15T14:45:00Z"),
			Status:      domain.AlertActive,
		},
		{
			ID:          ID("alert", "2"),
			Type:        domain.AlertWaterContamination,
			Severity:    domain.AlertSeverityHigh,
			Title:       "E. coli Detected in Water Source",
			Description: "E. coli bacteria detected in main river water source used by community.",
			Village:     "Majuli Island",
			District:    "Majuli",
			CreatedAt:   ts("2024-01-15T09:15:00Z"),
			Status:      domain.AlertActive,
		},
		{
			ID:          ID("alert", "3"),
			Type:        domain.AlertSystem,
			Severity:    domain.AlertSeverityMedium,
			Title:       "Water Quality Below Standards",
			Description: "pH levels and turbidity readings indicate poor water quality.",
			Village:     "Jorhat Town",
			District:    "Jorhat",
			CreatedAt:   ts("2024-01-15T11:20:00Z"),
			Status:      domain.AlertAcknowledged,
		},
	}
}
