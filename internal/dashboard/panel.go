// Package dashboard composes the role specific dashboard panels from the
// current records. Composition is pure; callers load the data.
package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"healthmon/internal/domain"
)

// RecentLimit caps the recent report lists on every panel.
const RecentLimit = 10

// Capabilities are the actions a role may take from its dashboard.
type Capabilities struct {
	SubmitReports     bool `json:"submit_reports"`
	AcknowledgeAlerts bool `json:"acknowledge_alerts"`
	ViewAnalytics     bool `json:"view_analytics"`
	ManageUsers       bool `json:"manage_users"`
	ExportData        bool `json:"export_data"`
}

// CapabilitiesFor returns the capability set of role.
func CapabilitiesFor(role domain.UserRole) (Capabilities, error) {
	switch role {
	case domain.RoleFieldWorker:
		return Capabilities{SubmitReports: true}, nil
	case domain.RoleDistrictOfficer:
		return Capabilities{AcknowledgeAlerts: true, ViewAnalytics: true, ExportData: true}, nil
	case domain.RoleAdmin:
		return Capabilities{SubmitReports: true, AcknowledgeAlerts: true, ViewAnalytics: true, ManageUsers: true, ExportData: true}, nil
	}
	return Capabilities{}, fmt.Errorf("%q: %w", role, domain.ErrUnknownRole)
}

// Panel is one of FieldWorkerPanel, DistrictOfficerPanel or AdminPanel.
type Panel interface {
	Role() domain.UserRole
	isPanel()
}

// Data is the record set a panel is composed from.
type Data struct {
	Users         []domain.User
	Villages      []domain.Village
	HealthReports []domain.HealthReport
	WaterReports  []domain.WaterQualityReport
	Alerts        []domain.Alert
}

// For composes the panel for the user's role.
func For(user *domain.User, data Data, now time.Time) (Panel, error) {
	switch user.Role {
	case domain.RoleFieldWorker:
		return fieldWorkerPanel(user, data, now), nil
	case domain.RoleDistrictOfficer:
		return districtOfficerPanel(user, data, now), nil
	case domain.RoleAdmin:
		return adminPanel(data), nil
	}
	return nil, fmt.Errorf("%q: %w", user.Role, domain.ErrUnknownRole)
}

// QuickAction opens a report intake form.
type QuickAction struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ReportEntry is a row in a recent reports list.
type ReportEntry struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Subject  string    `json:"subject"`
	Village  string    `json:"village,omitempty"`
	Reporter string    `json:"asha_worker"`
	At       time.Time `json:"at"`
	Flagged  bool      `json:"flagged"`
}

// FieldWorkerStats are the counters on a field worker's panel.
type FieldWorkerStats struct {
	ReportsSubmitted int `json:"reports_submitted"`
	PriorityReports  int `json:"priority_reports"`
	WaterTestsLogged int `json:"water_tests_logged"`
	AlertsReceived   int `json:"alerts_received"`
}

// FieldWorkerPanel shows a worker their own activity and local alerts.
type FieldWorkerPanel struct {
	Stats         FieldWorkerStats `json:"stats"`
	Alerts        []domain.Alert   `json:"alerts"`
	RecentReports []ReportEntry    `json:"recent_reports"`
	QuickActions  []QuickAction    `json:"quick_actions"`
}

func (FieldWorkerPanel) Role() domain.UserRole { return domain.RoleFieldWorker }
func (FieldWorkerPanel) isPanel()              {}

// DistrictStats are the counters on a district officer's panel.
type DistrictStats struct {
	TotalVillages  int     `json:"total_villages"`
	ActiveAlerts   int     `json:"active_alerts"`
	CriticalAlerts int     `json:"critical_alerts"`
	ReportsToday   int     `json:"reports_today"`
	FieldWorkers   int     `json:"asha_workers"`
	RiskScore      float64 `json:"risk_score"`
}

// DistrictOfficerPanel shows an officer the state of their district.
type DistrictOfficerPanel struct {
	District       string           `json:"district"`
	Stats          DistrictStats    `json:"stats"`
	CriticalAlerts []domain.Alert   `json:"critical_alerts"`
	RecentReports  []ReportEntry    `json:"recent_reports"`
	Villages       []domain.Village `json:"villages"`
}

func (DistrictOfficerPanel) Role() domain.UserRole { return domain.RoleDistrictOfficer }
func (DistrictOfficerPanel) isPanel()              {}

// SystemStats are the counters on the administrator's panel.
type SystemStats struct {
	TotalUsers       int `json:"total_users"`
	FieldWorkers     int `json:"asha_workers"`
	DistrictOfficers int `json:"health_officers"`
	TotalReports     int `json:"total_reports"`
	Villages         int `json:"villages"`
	ActiveAlerts     int `json:"active_alerts"`
}

// DistrictSummary is one district's row on the administrator's panel.
type DistrictSummary struct {
	Name      string           `json:"name"`
	Villages  int              `json:"villages"`
	Workers   int              `json:"workers"`
	Alerts    int              `json:"alerts"`
	RiskLevel domain.RiskLevel `json:"risk_level"`
}

// AdminPanel shows system wide totals and per district summaries.
type AdminPanel struct {
	Stats         SystemStats       `json:"stats"`
	Districts     []DistrictSummary `json:"districts"`
	RecentReports []ReportEntry     `json:"recent_reports"`
}

func (AdminPanel) Role() domain.UserRole { return domain.RoleAdmin }
func (AdminPanel) isPanel()              {}

func fieldWorkerPanel(user *domain.User, data Data, _ time.Time) FieldWorkerPanel {
	var health []domain.HealthReport
	for _, r := range data.HealthReports {
		if r.ReporterID == user.ID {
			health = append(health, r)
		}
	}
	var water []domain.WaterQualityReport
	for _, r := range data.WaterReports {
		if r.ReporterID == user.ID {
			water = append(water, r)
		}
	}

	alerts := []domain.Alert{}
	for _, a := range data.Alerts {
		if a.Status != domain.AlertResolved && workerSees(user, a) {
			alerts = append(alerts, a)
		}
	}

	p := FieldWorkerPanel{
		Stats: FieldWorkerStats{
			ReportsSubmitted: len(health),
			WaterTestsLogged: len(water),
			AlertsReceived:   len(alerts),
		},
		Alerts:        alerts,
		RecentReports: Recent(health, water, RecentLimit),
		QuickActions: []QuickAction{
			{ID: "symptoms", Label: "Report Symptoms"},
			{ID: "water", Label: "Water Quality Test"},
		},
	}
	for _, r := range health {
		if r.Priority || domain.IsPriorityHealthReport(r) {
			p.Stats.PriorityReports++
		}
	}
	return p
}

func districtOfficerPanel(user *domain.User, data Data, now time.Time) DistrictOfficerPanel {
	scope := newDistrictScope(user.District, data)

	p := DistrictOfficerPanel{
		District:       user.District,
		Villages:       scope.villages,
		CriticalAlerts: []domain.Alert{},
	}
	p.Stats.TotalVillages = len(scope.villages)
	p.Stats.RiskScore = domain.AverageRiskScore(scope.villages)
	p.Stats.FieldWorkers = len(scope.workers)

	for _, a := range data.Alerts {
		if !scope.hasAlert(a) || a.Status != domain.AlertActive {
			continue
		}
		p.Stats.ActiveAlerts++
		if a.Severity == domain.AlertSeverityCritical || a.Severity == domain.AlertSeverityHigh {
			p.CriticalAlerts = append(p.CriticalAlerts, a)
		}
		if a.Severity == domain.AlertSeverityCritical {
			p.Stats.CriticalAlerts++
		}
	}

	health, water := scope.reports(data)
	y, m, d := now.UTC().Date()
	for _, r := range health {
		if ry, rm, rd := r.ReportedAt.UTC().Date(); ry == y && rm == m && rd == d {
			p.Stats.ReportsToday++
		}
	}
	for _, r := range water {
		if ry, rm, rd := r.TestedAt.UTC().Date(); ry == y && rm == m && rd == d {
			p.Stats.ReportsToday++
		}
	}
	p.RecentReports = Recent(health, water, RecentLimit)
	return p
}

func adminPanel(data Data) AdminPanel {
	p := AdminPanel{
		Stats: SystemStats{
			TotalUsers:   len(data.Users),
			TotalReports: len(data.HealthReports) + len(data.WaterReports),
			Villages:     len(data.Villages),
			ActiveAlerts: len(domain.FilterActiveAlerts(data.Alerts)),
		},
		Districts:     Summarize(data),
		RecentReports: Recent(data.HealthReports, data.WaterReports, RecentLimit),
	}
	for _, u := range data.Users {
		switch u.Role {
		case domain.RoleFieldWorker:
			p.Stats.FieldWorkers++
		case domain.RoleDistrictOfficer:
			p.Stats.DistrictOfficers++
		}
	}
	return p
}

// Summarize groups villages by district in first seen order.
func Summarize(data Data) []DistrictSummary {
	out := []DistrictSummary{}
	index := map[string]int{}
	for _, v := range data.Villages {
		i, ok := index[v.District]
		if !ok {
			i = len(out)
			index[v.District] = i
			out = append(out, DistrictSummary{Name: v.District, RiskLevel: domain.RiskLow})
		}
		out[i].Villages++
		if v.RiskLevel.Rank() > out[i].RiskLevel.Rank() {
			out[i].RiskLevel = v.RiskLevel
		}
	}
	for i := range out {
		scope := newDistrictScope(out[i].Name, data)
		out[i].Workers = len(scope.workers)
		for _, a := range data.Alerts {
			if a.Status == domain.AlertActive && scope.hasAlert(a) {
				out[i].Alerts++
			}
		}
	}
	return out
}

// Recent merges health and water reports newest first, up to limit.
func Recent(health []domain.HealthReport, water []domain.WaterQualityReport, limit int) []ReportEntry {
	out := make([]ReportEntry, 0, len(health)+len(water))
	for _, r := range health {
		out = append(out, ReportEntry{
			ID:       r.ID.String(),
			Type:     "symptom",
			Subject:  r.PatientName,
			Village:  r.Village,
			Reporter: r.ReporterName,
			At:       r.ReportedAt,
			Flagged:  r.Priority || domain.IsPriorityHealthReport(r),
		})
	}
	for _, r := range water {
		out = append(out, ReportEntry{
			ID:       r.ID.String(),
			Type:     "water",
			Subject:  r.Location,
			Reporter: r.ReporterName,
			At:       r.TestedAt,
			Flagged:  r.PoorQuality || domain.IsPoorWaterQuality(r.Reading()),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].At.After(out[j].At) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// districtScope resolves which records belong to a district. An empty
// district name covers everything.
type districtScope struct {
	district string
	villages []domain.Village
	names    map[string]bool
	workers  map[string]bool
}

func newDistrictScope(district string, data Data) districtScope {
	s := districtScope{district: district, names: map[string]bool{}, workers: map[string]bool{}}
	for _, v := range data.Villages {
		if district == "" || v.District == district {
			s.villages = append(s.villages, v)
			s.names[v.Name] = true
		}
	}
	if s.villages == nil {
		s.villages = []domain.Village{}
	}
	for _, u := range data.Users {
		if u.Role == domain.RoleFieldWorker && (district == "" || u.District == district) {
			s.workers[u.ID.String()] = true
		}
	}
	return s
}

func (s districtScope) hasAlert(a domain.Alert) bool {
	return s.district == "" || a.District == s.district || s.names[a.Village]
}

func (s districtScope) reports(data Data) ([]domain.HealthReport, []domain.WaterQualityReport) {
	var health []domain.HealthReport
	for _, r := range data.HealthReports {
		if s.district == "" || s.names[r.Village] || r.Village == s.district || s.workers[r.ReporterID.String()] {
			health = append(health, r)
		}
	}
	var water []domain.WaterQualityReport
	for _, r := range data.WaterReports {
		if s.district == "" || s.workers[r.ReporterID.String()] || s.mentions(r.Location) {
			water = append(water, r)
		}
	}
	return health, water
}

func (s districtScope) mentions(location string) bool {
	if strings.Contains(location, s.district) {
		return true
	}
	for name := range s.names {
		if strings.Contains(location, name) {
			return true
		}
	}
	return false
}
