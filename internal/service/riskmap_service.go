package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"healthmon/internal/domain"
	"healthmon/internal/i18n"
	"healthmon/internal/risk"
)

// markerLabels are the catalog keys used in marker popups.
var markerLabels = []string{"common.village", "common.district"}

// VillageFilter narrows a village listing. Zero values match everything.
type VillageFilter struct {
	District string
	Risk     domain.RiskLevel
}

// Marker is one village pin on the risk map.
type Marker struct {
	Village   domain.Village   `json:"village"`
	RiskLevel domain.RiskLevel `json:"risk_level"`
	RiskLabel string           `json:"risk_label"`
	Color     string           `json:"color"`
	Score     float64          `json:"score"`
}

// MarkerSet is the full map payload.
type MarkerSet struct {
	Classifier string            `json:"classifier"`
	Markers    []Marker          `json:"markers"`
	Labels     map[string]string `json:"labels"`
}

// VillageDetail is what the map shows when a village is selected.
type VillageDetail struct {
	Village       domain.Village              `json:"village"`
	RiskLevel     domain.RiskLevel            `json:"risk_level"`
	HealthReports []domain.HealthReport       `json:"health_reports"`
	WaterReports  []domain.WaterQualityReport `json:"water_reports"`
}

// RiskMapService serves the village risk map.
type RiskMapService interface {
	ListVillages(ctx context.Context, filter VillageFilter) ([]domain.Village, error)
	Markers(ctx context.Context, filter VillageFilter, lang i18n.Language) (*MarkerSet, error)
	SelectVillage(ctx context.Context, id uuid.UUID) (*VillageDetail, error)
}

type riskMapService struct {
	repos      Repositories
	classifier risk.Classifier
}

// NewRiskMapService creates a new RiskMapService implementation.
func NewRiskMapService(repos Repositories, classifier risk.Classifier) RiskMapService {
	return &riskMapService{repos: repos, classifier: classifier}
}

// ListVillages filters on the recorded risk level.
func (s *riskMapService) ListVillages(ctx context.Context, filter VillageFilter) ([]domain.Village, error) {
	if filter.Risk != "" && !filter.Risk.Valid() {
		return nil, &domain.ValidationError{Invalid: []string{"risk"}}
	}

	var (
		villages []domain.Village
		err      error
	)
	if filter.District != "" {
		villages, err = s.repos.Villages.ListByDistrict(ctx, filter.District)
	} else {
		villages, err = s.repos.Villages.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("riskmap.ListVillages: %w", err)
	}
	if filter.Risk != "" {
		villages = domain.FilterVillagesByRisk(villages, filter.Risk)
	}
	return villages, nil
}

// Markers filters on the effective risk level computed by the classifier.
func (s *riskMapService) Markers(ctx context.Context, filter VillageFilter, lang i18n.Language) (*MarkerSet, error) {
	if filter.Risk != "" && !filter.Risk.Valid() {
		return nil, &domain.ValidationError{Invalid: []string{"risk"}}
	}
	villages, err := s.ListVillages(ctx, VillageFilter{District: filter.District})
	if err != nil {
		return nil, err
	}
	water, err := s.repos.WaterReports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("riskmap.Markers: %w", err)
	}

	set := &MarkerSet{
		Classifier: s.classifier.Name(),
		Markers:    make([]Marker, 0, len(villages)),
		Labels:     make(map[string]string, len(markerLabels)),
	}
	for _, key := range markerLabels {
		set.Labels[key] = i18n.Translate(lang, key)
	}
	for _, v := range villages {
		_, tests := domain.ReportsForVillage(v.Name, nil, water)
		level := s.classifier.Classify(v, tests)
		if filter.Risk != "" && level != filter.Risk {
			continue
		}
		set.Markers = append(set.Markers, Marker{
			Village:   v,
			RiskLevel: level,
			RiskLabel: i18n.Translate(lang, i18n.RiskKey(level)),
			Color:     domain.RiskColor(level),
			Score:     domain.RiskScore(level),
		})
	}
	return set, nil
}

func (s *riskMapService) SelectVillage(ctx context.Context, id uuid.UUID) (*VillageDetail, error) {
	village, err := s.repos.Villages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	health, err := s.repos.HealthReports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("riskmap.SelectVillage: %w", err)
	}
	water, err := s.repos.WaterReports.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("riskmap.SelectVillage: %w", err)
	}

	hr, wr := domain.ReportsForVillage(village.Name, health, water)
	return &VillageDetail{
		Village:       *village,
		RiskLevel:     s.classifier.Classify(*village, wr),
		HealthReports: hr,
		WaterReports:  wr,
	}, nil
}
