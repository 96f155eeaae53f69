package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/seeksy/rate-desk/internal/models"
)

// ErrInvalidRow is returned when a stored row does not have the shape the
// pricing engine relies on.
var ErrInvalidRow = errors.New("invalid row")

type inventoryRow struct {
	id, name, slug, typ sql.NullString
	placement           sql.NullString
	target, floor       sql.NullFloat64
	ceiling             sql.NullFloat64
	impressions         sql.NullInt64
	seasonality         sql.NullFloat64
	active              sql.NullBool
}

func (r inventoryRow) decode() (models.InventoryUnit, error) {
	if !r.id.Valid {
		return models.InventoryUnit{}, fmt.Errorf("%w: inventory unit missing id", ErrInvalidRow)
	}
	id := r.id.String

	switch {
	case !r.name.Valid, !r.typ.Valid:
		return models.InventoryUnit{}, fmt.Errorf("%w: inventory unit %s missing name or type", ErrInvalidRow, id)
	case !r.target.Valid, !r.floor.Valid, !r.ceiling.Valid:
		return models.InventoryUnit{}, fmt.Errorf("%w: inventory unit %s missing cpm bounds", ErrInvalidRow, id)
	case !r.impressions.Valid:
		return models.InventoryUnit{}, fmt.Errorf("%w: inventory unit %s missing expected impressions", ErrInvalidRow, id)
	}

	seasonality := 1.0
	if r.seasonality.Valid {
		seasonality = r.seasonality.Float64
	}

	unit := models.InventoryUnit{
		ID:                         id,
		Name:                       r.name.String,
		Slug:                       r.slug.String,
		Type:                       models.InventoryType(r.typ.String),
		Placement:                  r.placement.String,
		TargetCPM:                  r.target.Float64,
		FloorCPM:                   r.floor.Float64,
		CeilingCPM:                 r.ceiling.Float64,
		ExpectedMonthlyImpressions: r.impressions.Int64,
		SeasonalityFactor:          seasonality,
		IsActive:                   r.active.Valid && r.active.Bool,
	}
	if err := unit.Validate(); err != nil {
		return models.InventoryUnit{}, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}
	return unit, nil
}

func decodeAssumptions(scenarioID string, baseline, share sql.NullFloat64) (*models.ScenarioAssumptions, error) {
	if !baseline.Valid || !share.Valid {
		return nil, fmt.Errorf("%w: assumptions for scenario %s missing baseline cpm or creator share", ErrInvalidRow, scenarioID)
	}
	a := &models.ScenarioAssumptions{
		ScenarioID:         scenarioID,
		BaselineCPMMidroll: baseline.Float64,
		CreatorRevShare:    share.Float64,
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRow, err)
	}
	return a, nil
}
