package models

import "fmt"

// Scenario is a named planning assumption set (conservative, base, aggressive)
type Scenario struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ScenarioAssumptions holds the financial assumptions tied to a scenario
type ScenarioAssumptions struct {
	ScenarioID         string  `json:"scenario_id"`
	BaselineCPMMidroll float64 `json:"baseline_cpm_midroll"`
	CreatorRevShare    float64 `json:"creator_rev_share"` // platform keeps 1 - share
}

// PlatformShare is the fraction of gross spend retained by Seeksy
func (a ScenarioAssumptions) PlatformShare() float64 {
	return 1 - a.CreatorRevShare
}

// ScenarioDescriptor is the scenario as it appears in a Rate Desk View
type ScenarioDescriptor struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks the creator share is a fraction
func (a ScenarioAssumptions) Validate() error {
	if a.CreatorRevShare < 0 || a.CreatorRevShare > 1 {
		return fmt.Errorf("assumptions for scenario %s have creator share %v outside [0, 1]", a.ScenarioID, a.CreatorRevShare)
	}
	return nil
}
