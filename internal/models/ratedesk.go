package models

// RateDeskSummary aggregates totals across all priced units
type RateDeskSummary struct {
	TotalSellableImpressions30d int64   `json:"total_sellable_impressions_30d"`
	TotalSellableImpressions90d int64   `json:"total_sellable_impressions_90d"`
	TotalSellableImpressions12m int64   `json:"total_sellable_impressions_12m"`
	PotentialGrossSpend30d      float64 `json:"potential_gross_spend_30d"`
	PotentialGrossSpend90d      float64 `json:"potential_gross_spend_90d"`
	PotentialGrossSpend12m      float64 `json:"potential_gross_spend_12m"`
	SeeksyRevenue30d            float64 `json:"seeksy_revenue_30d"`
	SeeksyRevenue90d            float64 `json:"seeksy_revenue_90d"`
	SeeksyRevenue12m            float64 `json:"seeksy_revenue_12m"`
	AverageRecommendedCPM       float64 `json:"average_recommended_cpm"`
}

// RateDeskView is the root response returned to the rate desk UI
type RateDeskView struct {
	Scenario  ScenarioDescriptor    `json:"scenario"`
	Summary   RateDeskSummary       `json:"summary"`
	Inventory []PricedInventoryUnit `json:"inventory"`
}
