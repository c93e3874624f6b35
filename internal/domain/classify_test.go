package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"healthmon/internal/domain"
)

func f(v float64) *float64 { return &v }

func TestVillageRiskScore(t *testing.T) {
	assert.Equal(t, 0.2, domain.VillageRiskScore(domain.Village{RiskLevel: domain.RiskLow}))
	assert.Equal(t, 0.5, domain.VillageRiskScore(domain.Village{RiskLevel: domain.RiskMedium}))
	assert.Equal(t, 0.8, domain.VillageRiskScore(domain.Village{RiskLevel: domain.RiskHigh}))
	assert.Equal(t, 1.0, domain.VillageRiskScore(domain.Village{RiskLevel: domain.RiskCritical}))
	assert.Equal(t, 0.0, domain.VillageRiskScore(domain.Village{RiskLevel: "unknown"}))
}

func TestVillageRiskScore_MonotonicOverOrder(t *testing.T) {
	prev := -1.0
	for _, lvl := range domain.RiskLevels {
		score := domain.RiskScore(lvl)
		assert.GreaterOrEqual(t, score, prev, string(lvl))
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
		prev = score
	}
}

func TestIsPriorityHealthReport(t *testing.T) {
	assert.False(t, domain.IsPriorityHealthReport(domain.HealthReport{Symptoms: domain.SymptomSet{"headache"}}))
	assert.True(t, domain.IsPriorityHealthReport(domain.HealthReport{Symptoms: domain.SymptomSet{"headache", "fever"}}))
	assert.False(t, domain.IsPriorityHealthReport(domain.HealthReport{}))
	assert.False(t, domain.IsPriorityHealthReport(domain.HealthReport{Symptoms: domain.SymptomSet{"not_in_catalog"}}))
}

func TestIsPriorityHealthReport_EveryCatalogSymptom(t *testing.T) {
	for _, s := range domain.SymptomCatalog {
		got := domain.IsPriorityHealthReport(domain.HealthReport{Symptoms: domain.SymptomSet{s.ID}})
		assert.Equal(t, s.Critical, got, s.ID)
	}
}

func TestSymptomCatalog_CriticalSubset(t *testing.T) {
	var critical []string
	for _, s := range domain.SymptomCatalog {
		if s.Critical {
			critical = append(critical, s.ID)
		}
	}
	assert.Len(t, domain.SymptomCatalog, 10)
	assert.ElementsMatch(t, []string{"fever", "diarrhea", "vomiting", "dehydration", "jaundice"}, critical)
}

func TestIsPoorWaterQuality(t *testing.T) {
	good := domain.WaterReading{PH: f(7.2), Turbidity: f(2.1), TDS: f(450), EColi: domain.EColiNotDetected}
	bad := domain.WaterReading{PH: f(5.8), Turbidity: f(8.5), TDS: f(850), EColi: domain.EColiDetected}

	assert.False(t, domain.IsPoorWaterQuality(good))
	assert.True(t, domain.IsPoorWaterQuality(bad))
	assert.Equal(t, []string{"ph", "turbidity", "ecoli"}, domain.WaterQualityBreaches(bad))
}

func TestIsPoorWaterQuality_SingleConditions(t *testing.T) {
	cases := []struct {
		name    string
		reading domain.WaterReading
		want    bool
	}{
		{"ph low", domain.WaterReading{PH: f(6.4)}, true},
		{"ph high", domain.WaterReading{PH: f(8.6)}, true},
		{"ph lower bound", domain.WaterReading{PH: f(6.5)}, false},
		{"ph upper bound", domain.WaterReading{PH: f(8.5)}, false},
		{"ph zero is measured", domain.WaterReading{PH: f(0)}, true},
		{"turbidity over", domain.WaterReading{Turbidity: f(5.01)}, true},
		{"turbidity at limit", domain.WaterReading{Turbidity: f(5)}, false},
		{"tds over", domain.WaterReading{TDS: f(1000.5)}, true},
		{"tds at limit", domain.WaterReading{TDS: f(1000)}, false},
		{"ecoli detected", domain.WaterReading{EColi: domain.EColiDetected}, true},
		{"ecoli not tested", domain.WaterReading{EColi: domain.EColiNotTested}, false},
		{"nothing measured", domain.WaterReading{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.IsPoorWaterQuality(tc.reading))
		})
	}
}

func TestParseReading_IgnoresBlankAndGarbage(t *testing.T) {
	r := domain.ParseReading("", "abc", " 1200 ", domain.EColiNotDetected)
	assert.Nil(t, r.PH)
	assert.Nil(t, r.Turbidity)
	if assert.NotNil(t, r.TDS) {
		assert.Equal(t, 1200.0, *r.TDS)
	}
	assert.True(t, domain.IsPoorWaterQuality(r))

	assert.False(t, domain.IsPoorWaterQuality(domain.ParseReading("x", "y", "z", "")))
}

func TestFilterVillagesByRisk_StableOrder(t *testing.T) {
	villages := []domain.Village{
		{Name: "a", RiskLevel: domain.RiskHigh},
		{Name: "b", RiskLevel: domain.RiskLow},
		{Name: "c", RiskLevel: domain.RiskHigh},
	}
	got := domain.FilterVillagesByRisk(villages, domain.RiskHigh)
	assert.Equal(t, []string{"a", "c"}, []string{got[0].Name, got[1].Name})
	assert.Empty(t, domain.FilterVillagesByRisk(villages, domain.RiskCritical))
	assert.Empty(t, domain.FilterVillagesByRisk(nil, domain.RiskLow))
}

func TestFilterActiveAlerts_StableOrder(t *testing.T) {
	alerts := []domain.Alert{
		{Title: "1", Status: domain.AlertActive},
		{Title: "2", Status: domain.AlertAcknowledged},
		{Title: "3", Status: domain.AlertActive},
		{Title: "4", Status: domain.AlertResolved},
	}
	got := domain.FilterActiveAlerts(alerts)
	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].Title)
	assert.Equal(t, "3", got[1].Title)
}

func TestReportsForVillage(t *testing.T) {
	health := []domain.HealthReport{{Village: "Majuli Island"}, {Village: "Jorhat Town"}}
	water := []domain.WaterQualityReport{{Location: "Jorhat Town Well #1"}, {Location: "Majuli River Point A"}}

	hr, wr := domain.ReportsForVillage("Jorhat Town", health, water)
	assert.Len(t, hr, 1)
	assert.Len(t, wr, 1)
	assert.Equal(t, "Jorhat Town Well #1", wr[0].Location)
}

func TestRiskHelpers(t *testing.T) {
	villages := []domain.Village{{RiskLevel: domain.RiskLow}, {RiskLevel: domain.RiskHigh}}
	assert.InDelta(t, 0.5, domain.AverageRiskScore(villages), 1e-9)
	assert.Equal(t, 0.0, domain.AverageRiskScore(nil))
	assert.Equal(t, domain.RiskHigh, domain.MaxRiskLevel(villages))
	assert.Equal(t, domain.RiskLow, domain.MaxRiskLevel(nil))
	assert.Equal(t, "#dc2626", domain.RiskColor(domain.RiskCritical))
	assert.Equal(t, "#6b7280", domain.RiskColor("?"))
}

func TestAlert_Advance(t *testing.T) {
	a := domain.Alert{ID: uuid.New(), Status: domain.AlertActive}
	assert.NoError(t, a.Advance(domain.AlertAcknowledged))
	assert.ErrorIs(t, a.Advance(domain.AlertActive), domain.ErrInvalidTransition)
	assert.ErrorIs(t, a.Advance(domain.AlertAcknowledged), domain.ErrInvalidTransition)
	assert.NoError(t, a.Advance(domain.AlertResolved))
	assert.ErrorIs(t, a.Advance(domain.AlertResolved), domain.ErrInvalidTransition)
	assert.Equal(t, domain.AlertResolved, a.Status)

	b := domain.Alert{Status: domain.AlertActive}
	assert.NoError(t, b.Advance(domain.AlertResolved))
	assert.ErrorIs(t, b.Advance("bogus"), domain.ErrInvalidTransition)
}

func TestSymptomSet_ScanValue(t *testing.T) {
	var s domain.SymptomSet
	assert.NoError(t, s.Scan([]byte(`["fever","nausea"]`)))
	assert.True(t, s.Contains("fever"))
	assert.NoError(t, s.Scan(nil))
	assert.Empty(t, s)
	assert.Error(t, s.Scan(42))

	v, err := domain.SymptomSet(nil).Value()
	assert.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

func TestValidationError_Is(t *testing.T) {
	err := &domain.ValidationError{Fields: []string{"age", "symptoms"}}
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "missing required fields: age, symptoms", err.Error())
}

func TestUser_Valid(t *testing.T) {
	assert.False(t, (*domain.User)(nil).Valid())
	assert.False(t, (&domain.User{Email: "a@b.c", Role: domain.RoleAdmin}).Valid())
	assert.False(t, (&domain.User{ID: uuid.New(), Email: "a@b.c", Role: "nurse"}).Valid())
	assert.True(t, (&domain.User{ID: uuid.New(), Email: "a@b.c", Role: domain.RoleAdmin}).Valid())
}

func TestValidationError_Invalid(t *testing.T) {
	err := &domain.ValidationError{Fields: []string{"age"}, Invalid: []string{"severity"}}
	assert.Equal(t, "missing required fields: age; invalid fields: severity", err.Error())
	assert.Equal(t, "invalid fields: gender", (&domain.ValidationError{Invalid: []string{"gender"}}).Error())
}
