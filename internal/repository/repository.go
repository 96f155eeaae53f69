package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/seeksy/rate-desk/internal/models"
)

// Repository provides read access to the rate desk tables
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindScenarioByName returns the first scenario whose name matches exactly,
// or nil when none does.
func (r *Repository) FindScenarioByName(ctx context.Context, name string) (*models.Scenario, error) {
	query := `
		SELECT id, name, description
		FROM scenarios
		WHERE name = $1
		ORDER BY id
		LIMIT 1`
	var (
		id, scenarioName sql.NullString
		description      sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, name).Scan(&id, &scenarioName, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find scenario %q: %w", name, err)
	}
	if !id.Valid || !scenarioName.Valid {
		return nil, fmt.Errorf("%w: scenario row missing id or name", ErrInvalidRow)
	}
	return &models.Scenario{
		ID:          id.String,
		Name:        scenarioName.String,
		Description: description.String,
	}, nil
}

// FindAssumptions returns the assumptions record for a scenario, or nil when
// the scenario has none.
func (r *Repository) FindAssumptions(ctx context.Context, scenarioID string) (*models.ScenarioAssumptions, error) {
	query := `
		SELECT scenario_id, baseline_cpm_midroll, creator_rev_share
		FROM scenario_assumptions
		WHERE scenario_id = $1
		LIMIT 1`
	var (
		sid              string
		baseline, shares sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, query, scenarioID).Scan(&sid, &baseline, &shares)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find assumptions for scenario %s: %w", scenarioID, err)
	}
	return decodeAssumptions(sid, baseline, shares)
}

// ListActiveInventory returns every active inventory unit ordered by type.
func (r *Repository) ListActiveInventory(ctx context.Context) ([]models.InventoryUnit, error) {
	query := `
		SELECT id, name, slug, type, placement, target_cpm, floor_cpm, ceiling_cpm,
		       expected_monthly_impressions, seasonality_factor, is_active
		FROM ad_inventory_units
		WHERE is_active = true
		ORDER BY type ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	units := []models.InventoryUnit{}
	for rows.Next() {
		var row inventoryRow
		if err := rows.Scan(
			&row.id, &row.name, &row.slug, &row.typ, &row.placement,
			&row.target, &row.floor, &row.ceiling,
			&row.impressions, &row.seasonality, &row.active,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory unit: %w", err)
		}
		unit, err := row.decode()
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory: %w", err)
	}
	return units, nil
}
