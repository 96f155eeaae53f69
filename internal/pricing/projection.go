package pricing

import "github.com/seeksy/rate-desk/internal/models"

// Horizon multiples relative to the 30-day projection
const (
	quarterMultiple = 3
	yearMultiple    = 12
)

// project fills the 30d/90d/12m revenue fields from the recommended CPM.
// The longer horizons are straight multiples of the 30-day figure.
func project(p *models.PricedInventoryUnit) {
	rev30 := Round2(float64(p.ExpectedMonthlyImpressions) / 1000 * p.RecommendedCPM)
	p.PotentialRevenue30d = rev30
	p.PotentialRevenue90d = Round2(rev30 * quarterMultiple)
	p.PotentialRevenue12m = Round2(rev30 * yearMultiple)
}

// Summarize aggregates priced units into the portfolio summary. Platform
// revenue uses the scenario-level creator share for every unit, and the
// average CPM is an unweighted mean over units.
func Summarize(units []models.PricedInventoryUnit, assumptions models.ScenarioAssumptions) models.RateDeskSummary {
	var (
		s            models.RateDeskSummary
		recommendSum float64
	)
	for _, u := range units {
		s.TotalSellableImpressions30d += u.ExpectedMonthlyImpressions
		s.TotalSellableImpressions90d += u.ExpectedMonthlyImpressions * quarterMultiple
		s.TotalSellableImpressions12m += u.ExpectedMonthlyImpressions * yearMultiple
		s.PotentialGrossSpend30d += u.PotentialRevenue30d
		s.PotentialGrossSpend90d += u.PotentialRevenue90d
		s.PotentialGrossSpend12m += u.PotentialRevenue12m
		recommendSum += u.RecommendedCPM
	}

	share := assumptions.PlatformShare()
	s.SeeksyRevenue30d = Round2(s.PotentialGrossSpend30d * share)
	s.SeeksyRevenue90d = Round2(s.PotentialGrossSpend90d * share)
	s.SeeksyRevenue12m = Round2(s.PotentialGrossSpend12m * share)
	s.PotentialGrossSpend30d = Round2(s.PotentialGrossSpend30d)
	s.PotentialGrossSpend90d = Round2(s.PotentialGrossSpend90d)
	s.PotentialGrossSpend12m = Round2(s.PotentialGrossSpend12m)

	if len(units) > 0 {
		s.AverageRecommendedCPM = Round2(recommendSum / float64(len(units)))
	}
	return s
}
