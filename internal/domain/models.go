package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is an identity record. Email is the login key.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         UserRole  `db:"role" json:"role"`
	Village      string    `db:"village" json:"village,omitempty"`
	District     string    `db:"district" json:"district,omitempty"`
	Phone        string    `db:"phone" json:"phone,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Valid reports whether the record is complete enough to back a session.
func (u *User) Valid() bool {
	return u != nil && u.ID != uuid.Nil && u.Email != "" && u.Role.Valid()
}

// Village is a geolocated settlement tracked on the risk map.
type Village struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	District     string    `db:"district" json:"district"`
	Latitude     float64   `db:"latitude" json:"latitude"`
	Longitude    float64   `db:"longitude" json:"longitude"`
	Population   int       `db:"population" json:"population"`
	RiskLevel    RiskLevel `db:"risk_level" json:"risk_level"`
	WaterSources int       `db:"water_sources" json:"water_sources"`
	RecentCases  int       `db:"recent_cases" json:"recent_cases"`
	AshaWorker   string    `db:"asha_worker" json:"asha_worker,omitempty"`
}

// SymptomSet is a list of symptom identifiers stored as a JSON array.
type SymptomSet []string

// Value implements driver.Valuer.
func (s SymptomSet) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner.
func (s *SymptomSet) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = SymptomSet{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("SymptomSet.Scan: unsupported type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("SymptomSet.Scan: %w", err)
	}
	*s = out
	return nil
}

// Contains reports whether id is in the set.
func (s SymptomSet) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// HealthReport is a symptom observation logged by a field worker.
type HealthReport struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	PatientName  string          `db:"patient_name" json:"patient_name"`
	Age          int             `db:"age" json:"age"`
	Gender       Gender          `db:"gender" json:"gender,omitempty"`
	Phone        string          `db:"phone" json:"phone,omitempty"`
	Address      string          `db:"address" json:"address,omitempty"`
	Village      string          `db:"village" json:"village"`
	Symptoms     SymptomSet      `db:"symptoms" json:"symptoms"`
	Severity     Severity        `db:"severity" json:"severity"`
	OnsetDate    string          `db:"onset_date" json:"onset_date,omitempty"`
	Temperature  *float64        `db:"temperature" json:"temperature,omitempty"`
	Notes        string          `db:"notes" json:"notes,omitempty"`
	WaterSource  WaterSourceType `db:"water_source" json:"water_source"`
	ReportedAt   time.Time       `db:"reported_at" json:"reported_at"`
	ReporterID   uuid.UUID       `db:"reporter_id" json:"reporter_id"`
	ReporterName string          `db:"reporter_name" json:"asha_worker"`
	Priority     bool            `db:"priority" json:"priority"`
}

// WaterQualityReport is a field water test.
type WaterQualityReport struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	Location     string          `db:"location" json:"location"`
	SourceType   WaterSourceType `db:"source_type" json:"source_type"`
	PH           *float64        `db:"ph" json:"ph,omitempty"`
	Turbidity    *float64        `db:"turbidity" json:"turbidity,omitempty"`
	TDS          *float64        `db:"tds" json:"tds,omitempty"`
	Temperature  *float64        `db:"temperature" json:"temperature,omitempty"`
	Chlorine     *float64        `db:"chlorine" json:"chlorine,omitempty"`
	EColi        EColiResult     `db:"ecoli" json:"ecoli"`
	TestedAt     time.Time       `db:"tested_at" json:"tested_at"`
	ReporterID   uuid.UUID       `db:"reporter_id" json:"reporter_id"`
	ReporterName string          `db:"reporter_name" json:"asha_worker"`
	Latitude     *float64        `db:"latitude" json:"latitude,omitempty"`
	Longitude    *float64        `db:"longitude" json:"longitude,omitempty"`
	Notes        string          `db:"notes" json:"notes,omitempty"`
	PoorQuality  bool            `db:"poor_quality" json:"poor_quality"`
}

// Reading returns the numeric readings as a classification input.
func (r *WaterQualityReport) Reading() WaterReading {
	return WaterReading{PH: r.PH, Turbidity: r.Turbidity, TDS: r.TDS, EColi: r.EColi}
}

// Alert is raised when a report crosses a priority or poor-quality threshold.
type Alert struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	Type        AlertType     `db:"type" json:"type"`
	Severity    AlertSeverity `db:"severity" json:"severity"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Village     string        `db:"village" json:"village"`
	District    string        `db:"district" json:"district"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	Status      AlertStatus   `db:"status" json:"status"`
}

// Advance moves the alert forward in its lifecycle.
// active -> acknowledged -> resolved; there is no way back.
func (a *Alert) Advance(to AlertStatus) error {
	if !to.Valid() || to.rank() <= a.Status.rank() {
		return fmt.Errorf("alert %s: %s -> %s: %w", a.ID, a.Status, to, ErrInvalidTransition)
	}
	a.Status = to
	return nil
}
