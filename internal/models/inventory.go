package models

import (
	"errors"
	"fmt"
)

// InventoryType is the kind of ad placement a unit sells
type InventoryType string

const (
	InventoryPodcast     InventoryType = "podcast"
	InventoryLivestream  InventoryType = "livestream"
	InventoryEvent       InventoryType = "event"
	InventoryCreatorPage InventoryType = "creator_page"
	InventoryNewsletter  InventoryType = "newsletter"
	InventoryOther       InventoryType = "other"
)

// InventoryUnit is a sellable ad placement as stored by platform admins
type InventoryUnit struct {
	ID                         string        `json:"id"`
	Name                       string        `json:"name"`
	Slug                       string        `json:"slug"`
	Type                       InventoryType `json:"type"`
	Placement                  string        `json:"placement"`
	TargetCPM                  float64       `json:"target_cpm"`
	FloorCPM                   float64       `json:"floor_cpm"`
	CeilingCPM                 float64       `json:"ceiling_cpm"`
	ExpectedMonthlyImpressions int64         `json:"expected_monthly_impressions"`
	SeasonalityFactor          float64       `json:"seasonality_factor"`
	IsActive                   bool          `json:"is_active"`
}

// PricedInventoryUnit is an inventory unit with its computed pricing.
// It is derived on every request and never stored.
type PricedInventoryUnit struct {
	InventoryUnit
	RecommendedCPM      float64 `json:"recommended_cpm"`
	AdjustedFloorCPM    float64 `json:"adjusted_floor_cpm"`
	AdjustedCeilingCPM  float64 `json:"adjusted_ceiling_cpm"`
	PotentialRevenue30d float64 `json:"potential_revenue_30d"`
	PotentialRevenue90d float64 `json:"potential_revenue_90d"`
	PotentialRevenue12m float64 `json:"potential_revenue_12m"`
	HealthStatus        string  `json:"health_status"`
}

// Validate checks the unit has the shape the pricing engine relies on
func (u InventoryUnit) Validate() error {
	switch {
	case u.ID == "":
		return errors.New("inventory unit missing id")
	case u.ExpectedMonthlyImpressions < 0:
		return fmt.Errorf("inventory unit %s has negative impressions", u.ID)
	case u.TargetCPM < 0 || u.FloorCPM < 0 || u.CeilingCPM < 0:
		return fmt.Errorf("inventory unit %s has negative cpm", u.ID)
	case u.SeasonalityFactor < 0:
		return fmt.Errorf("inventory unit %s has negative seasonality factor", u.ID)
	}
	return nil
}
