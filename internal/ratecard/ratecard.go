package ratecard

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/seeksy/rate-desk/internal/models"
)

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Build renders a rate desk view as an XML rate card for partner sales feeds.
func Build(view *models.RateDeskView) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	card := doc.CreateElement("RateCard")
	card.CreateAttr("currency", "USD")

	scenario := card.CreateElement("Scenario")
	scenario.CreateAttr("slug", view.Scenario.Slug)
	scenario.CreateElement("Name").SetText(view.Scenario.Name)
	scenario.CreateElement("Description").SetText(view.Scenario.Description)

	summary := card.CreateElement("Summary")
	for _, h := range []struct {
		period      string
		impressions int64
		gross       float64
		seeksy      float64
	}{
		{"30d", view.Summary.TotalSellableImpressions30d, view.Summary.PotentialGrossSpend30d, view.Summary.SeeksyRevenue30d},
		{"90d", view.Summary.TotalSellableImpressions90d, view.Summary.PotentialGrossSpend90d, view.Summary.SeeksyRevenue90d},
		{"12m", view.Summary.TotalSellableImpressions12m, view.Summary.PotentialGrossSpend12m, view.Summary.SeeksyRevenue12m},
	} {
		horizon := summary.CreateElement("Horizon")
		horizon.CreateAttr("period", h.period)
		horizon.CreateElement("SellableImpressions").SetText(strconv.FormatInt(h.impressions, 10))
		horizon.CreateElement("GrossSpend").SetText(money(h.gross))
		horizon.CreateElement("SeeksyRevenue").SetText(money(h.seeksy))
	}
	summary.CreateElement("AverageRecommendedCPM").SetText(money(view.Summary.AverageRecommendedCPM))

	units := card.CreateElement("Units")
	for _, u := range view.Inventory {
		unit := units.CreateElement("Unit")
		unit.CreateAttr("id", u.ID)
		unit.CreateAttr("type", string(u.Type))
		unit.CreateAttr("health", u.HealthStatus)
		unit.CreateElement("Name").SetText(u.Name)
		if u.Placement != "" {
			unit.CreateElement("Placement").SetText(u.Placement)
		}
		cpm := unit.CreateElement("CPM")
		cpm.CreateAttr("recommended", money(u.RecommendedCPM))
		cpm.CreateAttr("floor", money(u.AdjustedFloorCPM))
		cpm.CreateAttr("ceiling", money(u.AdjustedCeilingCPM))
		unit.CreateElement("MonthlyImpressions").SetText(strconv.FormatInt(u.ExpectedMonthlyImpressions, 10))
		unit.CreateElement("Revenue30d").SetText(money(u.PotentialRevenue30d))
	}

	doc.Indent(2)
	return doc
}

// Render returns the rate card as XML bytes.
func Render(view *models.RateDeskView) ([]byte, error) {
	out, err := Build(view).WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render rate card: %w", err)
	}
	return out, nil
}
