package pricing

import (
	"github.com/seeksy/rate-desk/internal/models"
	"github.com/shopspring/decimal"
)

// Health status labels
const (
	HealthUnderpriced = "Underpriced"
	HealthHealthy     = "Healthy"
	HealthPremium     = "Premium"
)

const (
	underpricedRatio = 0.9
	premiumRatio     = 1.2
)

var typeMultipliers = map[models.InventoryType]float64{
	models.InventoryPodcast:     1.0,
	models.InventoryLivestream:  1.2,
	models.InventoryEvent:       1.4,
	models.InventoryCreatorPage: 0.8,
	models.InventoryNewsletter:  0.9,
	models.InventoryOther:       1.0,
}

// TypeMultiplier returns the CPM weight for an inventory type. Unknown types
// are priced like "other".
func TypeMultiplier(t models.InventoryType) float64 {
	if m, ok := typeMultipliers[t]; ok {
		return m
	}
	return 1.0
}

// Clamp bounds x to [floor, ceiling]. When floor > ceiling the floor wins.
func Clamp(x, floor, ceiling float64) float64 {
	if x > ceiling {
		x = ceiling
	}
	if x < floor {
		x = floor
	}
	return x
}

// Health classifies a recommended CPM against the unit's target. Both bounds
// are strict, so exactly 0.9x and 1.2x of target are Healthy.
func Health(recommended, target float64) string {
	switch {
	case recommended < target*underpricedRatio:
		return HealthUnderpriced
	case recommended > target*premiumRatio:
		return HealthPremium
	default:
		return HealthHealthy
	}
}

// Round2 rounds a currency amount to cents, halves away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// PriceUnit computes the recommended CPM, scenario-adjusted bounds, revenue
// projections and health for a single unit.
//
// The adjusted floor and ceiling only carry the scenario multiplier; the
// type multiplier and seasonality apply to the recommended CPM alone.
func PriceUnit(unit models.InventoryUnit, scenarioMultiplier float64) models.PricedInventoryUnit {
	raw := unit.TargetCPM * TypeMultiplier(unit.Type) * scenarioMultiplier * unit.SeasonalityFactor
	recommended := Round2(Clamp(raw, unit.FloorCPM, unit.CeilingCPM))

	priced := models.PricedInventoryUnit{
		InventoryUnit:      unit,
		RecommendedCPM:     recommended,
		AdjustedFloorCPM:   Round2(unit.FloorCPM * scenarioMultiplier),
		AdjustedCeilingCPM: Round2(unit.CeilingCPM * scenarioMultiplier),
		HealthStatus:       Health(recommended, unit.TargetCPM),
	}
	project(&priced)
	return priced
}

// PriceInventory prices every unit under the same scenario multiplier,
// preserving input order.
func PriceInventory(units []models.InventoryUnit, scenarioMultiplier float64) []models.PricedInventoryUnit {
	priced := make([]models.PricedInventoryUnit, 0, len(units))
	for _, u := range units {
		priced = append(priced, PriceUnit(u, scenarioMultiplier))
	}
	return priced
}
