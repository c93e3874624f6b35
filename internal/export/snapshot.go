// Package export serializes dashboard snapshots for download and reads
// village sheets for import.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"healthmon/internal/dashboard"
	"healthmon/internal/domain"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// BaseName is the suggested download name without extension.
const BaseName = "health-monitoring-data"

// Stats are the aggregate counters carried in a snapshot.
type Stats struct {
	TotalVillages    int     `json:"totalVillages"`
	HighRiskVillages int     `json:"highRiskVillages"`
	AverageRiskScore float64 `json:"averageRiskScore"`
	ActiveAlerts     int     `json:"activeAlerts"`
	CriticalAlerts   int     `json:"criticalAlerts"`
	HealthReports    int     `json:"healthReports"`
	PriorityReports  int     `json:"priorityReports"`
	WaterReports     int     `json:"waterReports"`
	PoorWaterTests   int     `json:"poorWaterTests"`
	FieldWorkers     int     `json:"ashaWorkers"`
}

// Snapshot is the exported dashboard state.
type Snapshot struct {
	Districts      []dashboard.DistrictSummary `json:"districts"`
	Stats          Stats                       `json:"stats"`
	CriticalAlerts []domain.Alert              `json:"criticalAlerts"`
	RecentReports  []dashboard.ReportEntry     `json:"recentReports"`
	ExportedAt     string                      `json:"exportedAt"`
}

// Build assembles a snapshot of data taken at now.
func Build(data dashboard.Data, now time.Time) Snapshot {
	s := Snapshot{
		Districts:      dashboard.Summarize(data),
		CriticalAlerts: []domain.Alert{},
		RecentReports:  dashboard.Recent(data.HealthReports, data.WaterReports, dashboard.RecentLimit),
		ExportedAt:     now.UTC().Format(time.RFC3339),
	}
	s.Stats.TotalVillages = len(data.Villages)
	s.Stats.AverageRiskScore = domain.AverageRiskScore(data.Villages)
	for _, v := range data.Villages {
		if v.RiskLevel.Rank() >= domain.RiskHigh.Rank() {
			s.Stats.HighRiskVillages++
		}
	}
	for _, a := range domain.FilterActiveAlerts(data.Alerts) {
		s.Stats.ActiveAlerts++
		if a.Severity == domain.AlertSeverityCritical || a.Severity == domain.AlertSeverityHigh {
			s.CriticalAlerts = append(s.CriticalAlerts, a)
		}
		if a.Severity == domain.AlertSeverityCritical {
			s.Stats.CriticalAlerts++
		}
	}
	s.Stats.HealthReports = len(data.HealthReports)
	for _, r := range data.HealthReports {
		if r.Priority || domain.IsPriorityHealthReport(r) {
			s.Stats.PriorityReports++
		}
	}
	s.Stats.WaterReports = len(data.WaterReports)
	for _, r := range data.WaterReports {
		if r.PoorQuality || domain.IsPoorWaterQuality(r.Reading()) {
			s.Stats.PoorWaterTests++
		}
	}
	for _, u := range data.Users {
		if u.Role == domain.RoleFieldWorker {
			s.Stats.FieldWorkers++
		}
	}
	return s
}

// Artifact is an encoded snapshot ready for download.
type Artifact struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Encode renders s in format.
func Encode(s Snapshot, format string) (*Artifact, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		body, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("export.Encode: %w", err)
		}
		return &Artifact{Filename: BaseName + ".json", ContentType: ContentTypeJSON, Body: body}, nil
	case FormatXLSX:
		body, err := Workbook(s)
		if err != nil {
			return nil, err
		}
		return &Artifact{Filename: BaseName + ".xlsx", ContentType: ContentTypeXLSX, Body: body}, nil
	}
	return nil, fmt.Errorf("%q: %w", format, domain.ErrUnsupportedFormat)
}
