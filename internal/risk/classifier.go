// Package risk decides the effective risk level shown for a village.
package risk

import (
	"fmt"

	"healthmon/internal/config"
	"healthmon/internal/domain"
)

// Classifier derives a village's risk level from its record and the water
// tests taken there.
type Classifier interface {
	Classify(v domain.Village, water []domain.WaterQualityReport) domain.RiskLevel
	Name() string
}

// New builds the classifier named in cfg.
func New(cfg config.RiskConfig) (Classifier, error) {
	switch cfg.Classifier {
	case "", "stored":
		return Stored{}, nil
	case "case_rate":
		if !(cfg.MediumCaseRate < cfg.HighCaseRate && cfg.HighCaseRate < cfg.CriticalCaseRate) {
			return nil, fmt.Errorf("risk: case rate thresholds must increase: %v, %v, %v",
				cfg.MediumCaseRate, cfg.HighCaseRate, cfg.CriticalCaseRate)
		}
		return CaseRate{Medium: cfg.MediumCaseRate, High: cfg.HighCaseRate, Critical: cfg.CriticalCaseRate}, nil
	default:
		return nil, fmt.Errorf("risk: unknown classifier %q", cfg.Classifier)
	}
}

// Stored returns the level recorded on the village.
type Stored struct{}

func (Stored) Classify(v domain.Village, _ []domain.WaterQualityReport) domain.RiskLevel {
	return v.RiskLevel
}

func (Stored) Name() string { return "stored" }

// CaseRate grades recent cases per 1000 residents against thresholds and
// raises the grade one step when any water test there was poor. Villages
// without a population keep their recorded level.
type CaseRate struct {
	Medium   float64
	High     float64
	Critical float64
}

func (c CaseRate) Classify(v domain.Village, water []domain.WaterQualityReport) domain.RiskLevel {
	if v.Population <= 0 {
		return v.RiskLevel
	}
	rate := float64(v.RecentCases) * 1000 / float64(v.Population)

	rank := 0
	switch {
	case rate >= c.Critical:
		rank = 3
	case rate >= c.High:
		rank = 2
	case rate >= c.Medium:
		rank = 1
	}
	for i := range water {
		if water[i].PoorQuality || domain.IsPoorWaterQuality(water[i].Reading()) {
			rank++
			break
		}
	}
	if rank >= len(domain.RiskLevels) {
		rank = len(domain.RiskLevels) - 1
	}
	return domain.RiskLevels[rank]
}

func (CaseRate) Name() string { return "case_rate" }
