package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/seeksy/rate-desk/internal/metrics"
	"github.com/seeksy/rate-desk/internal/models"
	"github.com/seeksy/rate-desk/internal/pricing"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Defaults used when no scenario or assumptions record is stored
const (
	DefaultScenarioID          = "default"
	DefaultScenarioName        = "Base"
	DefaultScenarioDescription = "Base scenario"
	DefaultBaselineCPM         = 25.0
	DefaultCreatorRevShare     = 0.7
)

// Store is the read side of the rate desk tables
type Store interface {
	FindScenarioByName(ctx context.Context, name string) (*models.Scenario, error)
	FindAssumptions(ctx context.Context, scenarioID string) (*models.ScenarioAssumptions, error)
	ListActiveInventory(ctx context.Context) ([]models.InventoryUnit, error)
}

// Options selects the scenario a view is priced under
type Options struct {
	ScenarioSlug string
	// Months is accepted from callers but does not change any projection.
	Months int
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.ScenarioSlug) == "" {
		o.ScenarioSlug = pricing.ScenarioBase
	}
	if o.Months == 0 {
		o.Months = 1
	}
	return o
}

// Service handles rate desk business logic
type Service struct {
	store   Store
	log     *logrus.Logger
	metrics *metrics.Metrics
}

// NewService initializes a new service. m may be nil.
func NewService(store Store, log *logrus.Logger, m *metrics.Metrics) *Service {
	return &Service{store: store, log: log, metrics: m}
}

// ResolveScenario finds the scenario named after the slug and its financial
// assumptions, substituting defaults for whichever is not stored.
func (s *Service) ResolveScenario(ctx context.Context, opts Options) (models.Scenario, models.ScenarioAssumptions, error) {
	opts = opts.withDefaults()

	scenario, err := s.store.FindScenarioByName(ctx, pricing.DisplayName(opts.ScenarioSlug))
	if err != nil {
		return models.Scenario{}, models.ScenarioAssumptions{}, fmt.Errorf("failed to resolve scenario: %w", err)
	}
	if scenario == nil {
		scenario = &models.Scenario{
			ID:          DefaultScenarioID,
			Name:        DefaultScenarioName,
			Description: DefaultScenarioDescription,
		}
	}
	scenario.Slug = opts.ScenarioSlug

	// The synthesized default has no stored row; its id is not a valid key.
	var assumptions *models.ScenarioAssumptions
	if scenario.ID != DefaultScenarioID {
		assumptions, err = s.store.FindAssumptions(ctx, scenario.ID)
		if err != nil {
			return models.Scenario{}, models.ScenarioAssumptions{}, fmt.Errorf("failed to load assumptions: %w", err)
		}
	}
	if assumptions == nil {
		s.log.WithFields(logrus.Fields{
			"scenario_id":   scenario.ID,
			"scenario_slug": scenario.Slug,
		}).Warn("No assumptions stored for scenario, using defaults")
		if s.metrics != nil {
			s.metrics.AssumptionFallbacks.Inc()
		}
		assumptions = &models.ScenarioAssumptions{
			ScenarioID:         scenario.ID,
			BaselineCPMMidroll: DefaultBaselineCPM,
			CreatorRevShare:    DefaultCreatorRevShare,
		}
	}

	return *scenario, *assumptions, nil
}

// LoadInventory returns the active inventory units, ordered by type.
func (s *Service) LoadInventory(ctx context.Context) ([]models.InventoryUnit, error) {
	units, err := s.store.ListActiveInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}
	return units, nil
}

// GetRateDeskView prices the active inventory under the requested scenario
// and assembles the summary and per-unit records.
func (s *Service) GetRateDeskView(ctx context.Context, opts Options) (*models.RateDeskView, error) {
	start := time.Now()
	opts = opts.withDefaults()

	var (
		scenario    models.Scenario
		assumptions models.ScenarioAssumptions
		units       []models.InventoryUnit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scenario, assumptions, err = s.ResolveScenario(gctx, opts)
		// Fetches cut short by cancellation are not counted as failures.
		if err != nil && gctx.Err() == nil {
			s.recordFailure("scenario")
		}
		return err
	})
	g.Go(func() error {
		var err error
		units, err = s.LoadInventory(gctx)
		if err != nil && gctx.Err() == nil {
			s.recordFailure("inventory")
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	priced := pricing.PriceInventory(units, pricing.MultiplierFor(opts.ScenarioSlug))
	view := &models.RateDeskView{
		Scenario: models.ScenarioDescriptor{
			Slug:        scenario.Slug,
			Name:        scenario.Name,
			Description: scenario.Description,
		},
		Summary:   pricing.Summarize(priced, assumptions),
		Inventory: priced,
	}

	if s.metrics != nil {
		label := opts.ScenarioSlug
		if !pricing.IsKnown(label) {
			label = "other"
		}
		s.metrics.ViewsComputed.WithLabelValues(label).Inc()
		s.metrics.InventoryUnits.Set(float64(len(priced)))
		s.metrics.ViewDuration.Observe(time.Since(start).Seconds())
	}
	s.log.WithFields(logrus.Fields{
		"scenario": opts.ScenarioSlug,
		"units":    len(priced),
		"gross30d": view.Summary.PotentialGrossSpend30d,
	}).Debug("Rate desk view assembled")

	return view, nil
}

func (s *Service) recordFailure(stage string) {
	if s.metrics != nil {
		s.metrics.ViewFailures.WithLabelValues(stage).Inc()
	}
}
