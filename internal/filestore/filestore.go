// Package filestore serves rate desk data from a YAML fixture, for offline
// quoting without a database.
package filestore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/seeksy/rate-desk/internal/models"
	"gopkg.in/yaml.v3"
)

type fixtureScenario struct {
	ID                 string   `yaml:"id"`
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description"`
	BaselineCPMMidroll *float64 `yaml:"baseline_cpm_midroll"`
	CreatorRevShare    *float64 `yaml:"creator_rev_share"`
}

func (sc fixtureScenario) assumptions() (models.ScenarioAssumptions, bool) {
	if sc.BaselineCPMMidroll == nil || sc.CreatorRevShare == nil {
		return models.ScenarioAssumptions{}, false
	}
	return models.ScenarioAssumptions{
		ScenarioID:         sc.ID,
		BaselineCPMMidroll: *sc.BaselineCPMMidroll,
		CreatorRevShare:    *sc.CreatorRevShare,
	}, true
}

// fixtureUnit mirrors models.InventoryUnit. A missing seasonality_factor
// means 1.0; an explicit one is kept as written.
type fixtureUnit struct {
	ID                         string               `yaml:"id"`
	Name                       string               `yaml:"name"`
	Slug                       string               `yaml:"slug"`
	Type                       models.InventoryType `yaml:"type"`
	Placement                  string               `yaml:"placement"`
	TargetCPM                  float64              `yaml:"target_cpm"`
	FloorCPM                   float64              `yaml:"floor_cpm"`
	CeilingCPM                 float64              `yaml:"ceiling_cpm"`
	ExpectedMonthlyImpressions int64                `yaml:"expected_monthly_impressions"`
	SeasonalityFactor          *float64             `yaml:"seasonality_factor"`
	IsActive                   bool                 `yaml:"is_active"`
}

func (u fixtureUnit) unit() models.InventoryUnit {
	seasonality := 1.0
	if u.SeasonalityFactor != nil {
		seasonality = *u.SeasonalityFactor
	}
	return models.InventoryUnit{
		ID:                         u.ID,
		Name:                       u.Name,
		Slug:                       u.Slug,
		Type:                       u.Type,
		Placement:                  u.Placement,
		TargetCPM:                  u.TargetCPM,
		FloorCPM:                   u.FloorCPM,
		CeilingCPM:                 u.CeilingCPM,
		ExpectedMonthlyImpressions: u.ExpectedMonthlyImpressions,
		SeasonalityFactor:          seasonality,
		IsActive:                   u.IsActive,
	}
}

type fixture struct {
	Scenarios []fixtureScenario `yaml:"scenarios"`
	Inventory []fixtureUnit     `yaml:"inventory"`
}

// Store is an in-memory store loaded from YAML
type Store struct {
	scenarios []fixtureScenario
	inventory []models.InventoryUnit
}

// Load reads a fixture file
func Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(raw)
}

// Parse decodes fixture YAML. Unknown fields are rejected.
func Parse(raw []byte) (*Store, error) {
	var f fixture
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	store := &Store{scenarios: f.Scenarios}
	for i, entry := range f.Inventory {
		u := entry.unit()
		if err := u.Validate(); err != nil {
			return nil, fmt.Errorf("invalid inventory entry %d: %w", i, err)
		}
		store.inventory = append(store.inventory, u)
	}
	for _, sc := range f.Scenarios {
		if a, ok := sc.assumptions(); ok {
			if err := a.Validate(); err != nil {
				return nil, fmt.Errorf("invalid scenario %s: %w", sc.ID, err)
			}
		}
	}
	return store, nil
}

func (s *Store) FindScenarioByName(_ context.Context, name string) (*models.Scenario, error) {
	for _, sc := range s.scenarios {
		if sc.Name == name {
			return &models.Scenario{ID: sc.ID, Name: sc.Name, Description: sc.Description}, nil
		}
	}
	return nil, nil
}

func (s *Store) FindAssumptions(_ context.Context, scenarioID string) (*models.ScenarioAssumptions, error) {
	for _, sc := range s.scenarios {
		if sc.ID != scenarioID {
			continue
		}
		if a, ok := sc.assumptions(); ok {
			return &a, nil
		}
	}
	return nil, nil
}

func (s *Store) ListActiveInventory(_ context.Context) ([]models.InventoryUnit, error) {
	units := []models.InventoryUnit{}
	for _, u := range s.inventory {
		if u.IsActive {
			units = append(units, u)
		}
	}
	sort.SliceStable(units, func(i, j int) bool { return units[i].Type < units[j].Type })
	return units, nil
}
