package domain

import (
	"strconv"
	"strings"
)

// Water quality thresholds.
const (
	MinSafePH        = 6.5
	MaxSafePH        = 8.5
	MaxSafeTurbidity = 5.0
	MaxSafeTDS       = 1000.0
)

var riskScores = map[RiskLevel]float64{
	RiskLow:      0.2,
	RiskMedium:   0.5,
	RiskHigh:     0.8,
	RiskCritical: 1.0,
}

// VillageRiskScore maps the village's risk level onto [0,1].
// Unknown levels score 0.
func VillageRiskScore(v Village) float64 {
	return RiskScore(v.RiskLevel)
}

// RiskScore maps a risk level onto [0,1].
func RiskScore(l RiskLevel) float64 {
	return riskScores[l]
}

// AverageRiskScore is the mean score over villages, 0 when empty.
func AverageRiskScore(villages []Village) float64 {
	if len(villages) == 0 {
		return 0
	}
	var sum float64
	for _, v := range villages {
		sum += VillageRiskScore(v)
	}
	return sum / float64(len(villages))
}

// MaxRiskLevel returns the highest level among villages, low when empty.
func MaxRiskLevel(villages []Village) RiskLevel {
	out := RiskLow
	for _, v := range villages {
		if v.RiskLevel.Rank() > out.Rank() {
			out = v.RiskLevel
		}
	}
	return out
}

// IsPriorityHealthReport reports whether any symptom on the report is critical.
func IsPriorityHealthReport(r HealthReport) bool {
	return HasCriticalSymptom(r.Symptoms)
}

// HasCriticalSymptom reports whether ids intersects the critical catalog subset.
func HasCriticalSymptom(ids []string) bool {
	for _, id := range ids {
		if IsCriticalSymptom(id) {
			return true
		}
	}
	return false
}

// WaterReading is the classification input for a water test.
// Nil fields were not measured.
type WaterReading struct {
	PH        *float64
	Turbidity *float64
	TDS       *float64
	EColi     EColiResult
}

// ParseReading builds a reading from raw form values. Blank or
// non-numeric values are treated as not measured.
func ParseReading(ph, turbidity, tds string, ecoli EColiResult) WaterReading {
	return WaterReading{
		PH:        ParseOptionalFloat(ph),
		Turbidity: ParseOptionalFloat(turbidity),
		TDS:       ParseOptionalFloat(tds),
		EColi:     ecoli,
	}
}

// ParseOptionalFloat returns nil for blank or unparseable input.
func ParseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// IsPoorWaterQuality reports whether any measured value breaches its
// threshold or E. coli was detected.
func IsPoorWaterQuality(r WaterReading) bool {
	return len(WaterQualityBreaches(r)) > 0
}

// WaterQualityBreaches names each breached condition, in a fixed order.
func WaterQualityBreaches(r WaterReading) []string {
	var out []string
	if r.PH != nil && (*r.PH < MinSafePH || *r.PH > MaxSafePH) {
		out = append(out, "ph")
	}
	if r.Turbidity != nil && *r.Turbidity > MaxSafeTurbidity {
		out = append(out, "turbidity")
	}
	if r.TDS != nil && *r.TDS > MaxSafeTDS {
		out = append(out, "tds")
	}
	if r.EColi == EColiDetected {
		out = append(out, "ecoli")
	}
	return out
}

// FilterVillagesByRisk keeps villages at exactly level, preserving order.
func FilterVillagesByRisk(villages []Village, level RiskLevel) []Village {
	out := make([]Village, 0, len(villages))
	for _, v := range villages {
		if v.RiskLevel == level {
			out = append(out, v)
		}
	}
	return out
}

// FilterActiveAlerts keeps alerts whose status is active, preserving order.
func FilterActiveAlerts(alerts []Alert) []Alert {
	return FilterAlertsByStatus(alerts, AlertActive)
}

// FilterAlertsByStatus keeps alerts in status, preserving order.
func FilterAlertsByStatus(alerts []Alert, status AlertStatus) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// ReportsForVillage selects health reports filed for the village by name and
// water reports whose location mentions it.
func ReportsForVillage(name string, health []HealthReport, water []WaterQualityReport) ([]HealthReport, []WaterQualityReport) {
	hr := make([]HealthReport, 0)
	for _, r := range health {
		if r.Village == name {
			hr = append(hr, r)
		}
	}
	wr := make([]WaterQualityReport, 0)
	for _, r := range water {
		if name != "" && strings.Contains(r.Location, name) {
			wr = append(wr, r)
		}
	}
	return hr, wr
}

// RiskColor is the map marker color for a risk level.
func RiskColor(l RiskLevel) string {
	switch l {
	case RiskCritical:
		return "#dc2626"
	case RiskHigh:
		return "#ea580c"
	case RiskMedium:
		return "#ca8a04"
	case RiskLow:
		return "#16a34a"
	default:
		return "#6b7280"
	}
}
