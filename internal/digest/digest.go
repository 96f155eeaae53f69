package digest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/seeksy/rate-desk/internal/models"
	"github.com/seeksy/rate-desk/internal/pricing"
	"github.com/seeksy/rate-desk/internal/service"
	"github.com/sirupsen/logrus"
)

const runTimeout = 2 * time.Minute

// ViewProvider computes rate desk views
type ViewProvider interface {
	GetRateDeskView(ctx context.Context, opts service.Options) (*models.RateDeskView, error)
}

// Job prices the inventory under every scenario and reports the totals to
// the sales team.
type Job struct {
	views  ViewProvider
	mailer Mailer
	log    *logrus.Logger
	now    func() time.Time
}

// NewJob creates a digest job. mailer may be nil, in which case the digest
// is only logged.
func NewJob(views ViewProvider, mailer Mailer, log *logrus.Logger) *Job {
	return &Job{views: views, mailer: mailer, log: log, now: time.Now}
}

// Run builds the digest once. A scenario that fails to price aborts the run.
func (j *Job) Run(ctx context.Context) error {
	views := make([]*models.RateDeskView, 0, len(pricing.Scenarios()))
	for _, s := range pricing.Scenarios() {
		view, err := j.views.GetRateDeskView(ctx, service.Options{ScenarioSlug: s.Slug})
		if err != nil {
			return fmt.Errorf("failed to price %s scenario: %w", s.Slug, err)
		}
		j.log.WithFields(logrus.Fields{
			"scenario":         s.Slug,
			"units":            len(view.Inventory),
			"gross_spend_30d":  view.Summary.PotentialGrossSpend30d,
			"seeksy_rev_30d":   view.Summary.SeeksyRevenue30d,
			"average_cpm":      view.Summary.AverageRecommendedCPM,
			"underpriced_unit": countHealth(view, pricing.HealthUnderpriced),
		}).Info("Rate desk digest")
		views = append(views, view)
	}

	if j.mailer == nil {
		return nil
	}
	subject := fmt.Sprintf("Rate desk digest for %s", j.now().Format("2006-01-02"))
	return j.mailer.Send(subject, Render(views))
}

// Schedule registers the job on a new cron scheduler and starts it. The
// caller stops the returned scheduler on shutdown.
func (j *Job) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := j.Run(ctx); err != nil {
			j.log.WithError(err).Error("Rate desk digest failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	c.Start()
	j.log.Infof("Rate desk digest scheduled: %s", spec)
	return c, nil
}

// Render formats one block per scenario view as plain text.
func Render(views []*models.RateDeskView) string {
	var b strings.Builder
	b.WriteString("Seeksy Rate Desk\n")
	for _, v := range views {
		fmt.Fprintf(&b, "\n%s (%s)\n", v.Scenario.Name, v.Scenario.Slug)
		fmt.Fprintf(&b, "  Sellable impressions: %s / %s / %s\n",
			pricing.FormatCompact(float64(v.Summary.TotalSellableImpressions30d)),
			pricing.FormatCompact(float64(v.Summary.TotalSellableImpressions90d)),
			pricing.FormatCompact(float64(v.Summary.TotalSellableImpressions12m)))
		fmt.Fprintf(&b, "  Gross spend:          %s / %s / %s\n",
			pricing.FormatCurrency(v.Summary.PotentialGrossSpend30d),
			pricing.FormatCurrency(v.Summary.PotentialGrossSpend90d),
			pricing.FormatCurrency(v.Summary.PotentialGrossSpend12m))
		fmt.Fprintf(&b, "  Seeksy revenue:       %s / %s / %s\n",
			pricing.FormatCurrency(v.Summary.SeeksyRevenue30d),
			pricing.FormatCurrency(v.Summary.SeeksyRevenue90d),
			pricing.FormatCurrency(v.Summary.SeeksyRevenue12m))
		fmt.Fprintf(&b, "  Average CPM:          $%.2f\n", v.Summary.AverageRecommendedCPM)
		fmt.Fprintf(&b, "  Underpriced units:    %d of %d\n", countHealth(v, pricing.HealthUnderpriced), len(v.Inventory))
	}
	return b.String()
}

func countHealth(v *models.RateDeskView, status string) int {
	n := 0
	for _, u := range v.Inventory {
		if u.HealthStatus == status {
			n++
		}
	}
	return n
}
