package digest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/seeksy/rate-desk/internal/models"
	"github.com/seeksy/rate-desk/internal/pricing"
	"github.com/seeksy/rate-desk/internal/service"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type fakeViews struct {
	slugs []string
	err   error
}

func (f *fakeViews) GetRateDeskView(_ context.Context, opts service.Options) (*models.RateDeskView, error) {
	f.slugs = append(f.slugs, opts.ScenarioSlug)
	if f.err != nil {
		return nil, f.err
	}
	return &models.RateDeskView{
		Scenario: models.ScenarioDescriptor{Slug: opts.ScenarioSlug, Name: pricing.DisplayName(opts.ScenarioSlug)},
		Summary: models.RateDeskSummary{
			TotalSellableImpressions30d: 1_500_000,
			TotalSellableImpressions90d: 4_500_000,
			TotalSellableImpressions12m: 18_000_000,
			PotentialGrossSpend30d:      30000,
			SeeksyRevenue30d:            9000,
			AverageRecommendedCPM:       20,
		},
		Inventory: []models.PricedInventoryUnit{
			{HealthStatus: pricing.HealthUnderpriced},
			{HealthStatus: pricing.HealthHealthy},
		},
	}, nil
}

type fakeMailer struct {
	subject, body string
	calls         int
}

func (m *fakeMailer) Send(subject, body string) error {
	m.calls++
	m.subject, m.body = subject, body
	return nil
}

func TestRunMailsEveryScenario(t *testing.T) {
	require := require.New(t)
	log, hook := logtest.NewNullLogger()
	views := &fakeViews{}
	mailer := &fakeMailer{}

	job := NewJob(views, mailer, log)
	job.now = func() time.Time { return time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC) }

	require.NoError(job.Run(context.Background()))
	require.Equal([]string{"conservative", "base", "aggressive"}, views.slugs)
	require.Len(hook.AllEntries(), 3)

	require.Equal(1, mailer.calls)
	require.Equal("Rate desk digest for 2026-03-02", mailer.subject)
	require.Contains(mailer.body, "Aggressive (aggressive)")
	require.Contains(mailer.body, "1.5M / 4.5M / 18.0M")
	require.Contains(mailer.body, "$30,000")
	require.Contains(mailer.body, "Underpriced units:    1 of 2")
}

func TestRunWithoutMailerOnlyLogs(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	require.NoError(t, NewJob(&fakeViews{}, nil, log).Run(context.Background()))
	require.Len(t, hook.AllEntries(), 3)
}

func TestRunStopsOnFailure(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	views := &fakeViews{err: errors.New("db down")}
	mailer := &fakeMailer{}

	err := NewJob(views, mailer, log).Run(context.Background())
	require.Error(t, err)
	require.Equal(t, []string{"conservative"}, views.slugs)
	require.Zero(t, mailer.calls)
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	_, err := NewJob(&fakeViews{}, nil, log).Schedule("not a schedule")
	require.Error(t, err)
}

func TestScheduleStarts(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	c, err := NewJob(&fakeViews{}, nil, log).Schedule("0 7 * * 1")
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
	<-c.Stop().Done()
}
