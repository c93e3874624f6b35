package domain

// UserRole is the closed set of roles a user can hold.
type UserRole string

const (
	RoleFieldWorker     UserRole = "asha_worker"
	RoleDistrictOfficer UserRole = "health_officer"
	RoleAdmin           UserRole = "admin"
)

// Roles lists every valid role.
var Roles = []UserRole{RoleFieldWorker, RoleDistrictOfficer, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleFieldWorker, RoleDistrictOfficer, RoleAdmin:
		return true
	}
	return false
}

// RiskLevel is the ordered village risk classification.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskLevels lists the levels from lowest to highest.
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

// Rank returns the position of the level in the total order, or -1 if unknown.
func (l RiskLevel) Rank() int {
	for i, lvl := range RiskLevels {
		if lvl == l {
			return i
		}
	}
	return -1
}

// Valid reports whether l is a known risk level.
func (l RiskLevel) Valid() bool {
	return l.Rank() >= 0
}

// Severity is the clinical severity recorded on a health report.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Gender recorded on a symptom report.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Valid reports whether g is a known gender value.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// WaterSourceType identifies the kind of water source.
type WaterSourceType string

const (
	SourceVillageWell  WaterSourceType = "village_well"
	SourceTubeWell     WaterSourceType = "tube_well"
	SourceHandPump     WaterSourceType = "hand_pump"
	SourceRiver        WaterSourceType = "river"
	SourcePond         WaterSourceType = "pond"
	SourceTapWater     WaterSourceType = "tap_water"
	SourceSpring       WaterSourceType = "spring"
	SourceBottledWater WaterSourceType = "bottled_water"
	SourceOther        WaterSourceType = "other"
)

// Valid reports whether t is a known source type.
func (t WaterSourceType) Valid() bool {
	switch t {
	case SourceVillageWell, SourceTubeWell, SourceHandPump, SourceRiver, SourcePond,
		SourceTapWater, SourceSpring, SourceBottledWater, SourceOther:
		return true
	}
	return false
}

// EColiResult is the outcome of an E. coli field test.
type EColiResult string

const (
	EColiDetected    EColiResult = "detected"
	EColiNotDetected EColiResult = "not_detected"
	EColiNotTested   EColiResult = "not_tested"
)

// Valid reports whether e is a known result.
func (e EColiResult) Valid() bool {
	switch e {
	case EColiDetected, EColiNotDetected, EColiNotTested:
		return true
	}
	return false
}

// AlertType classifies the origin of an alert.
type AlertType string

const (
	AlertOutbreakRisk       AlertType = "outbreak_risk"
	AlertWaterContamination AlertType = "water_contamination"
	AlertSystem             AlertType = "system_alert"
)

// AlertSeverity is the urgency of an alert.
type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// AlertStatus is the lifecycle state of an alert.
type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

func (s AlertStatus) rank() int {
	switch s {
	case AlertActive:
		return 0
	case AlertAcknowledged:
		return 1
	case AlertResolved:
		return 2
	}
	return -1
}

// Valid reports whether s is a known alert status.
func (s AlertStatus) Valid() bool {
	return s.rank() >= 0
}
