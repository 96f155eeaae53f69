package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/seeksy/rate-desk/internal/models"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE scenarios (id TEXT PRIMARY KEY, name TEXT, description TEXT)`,
	`CREATE TABLE scenario_assumptions (scenario_id TEXT, baseline_cpm_midroll REAL, creator_rev_share REAL)`,
	`CREATE TABLE ad_inventory_units (
	id TEXT PRIMARY KEY,
	name TEXT,
	slug TEXT,
	type TEXT,
	placement TEXT,
	target_cpm REAL,
	floor_cpm REAL,
	ceiling_cpm REAL,
	expected_monthly_impressions INTEGER,
	seasonality_factor REAL,
	is_active INTEGER
)`,
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "ratedesk.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range schema {
		_, err = db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

func exec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	_, err := db.Exec(query, args...)
	require.NoError(t, err)
}

func TestFindScenarioByName(t *testing.T) {
	require := require.New(t)
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	exec(t, db, `INSERT INTO scenarios VALUES ('s-2', 'Aggressive', 'Push rates'), ('s-1', 'Aggressive', 'Older copy')`)

	s, err := repo.FindScenarioByName(ctx, "Aggressive")
	require.NoError(err)
	require.NotNil(s)
	require.Equal("s-1", s.ID)
	require.Equal("Older copy", s.Description)

	s, err = repo.FindScenarioByName(ctx, "aggressive")
	require.NoError(err)
	require.Nil(s)
}

func TestFindAssumptions(t *testing.T) {
	require := require.New(t)
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	exec(t, db, `INSERT INTO scenario_assumptions VALUES ('s-1', 30.0, 0.65)`)
	exec(t, db, `INSERT INTO scenario_assumptions VALUES ('s-bad', NULL, 0.65)`)
	exec(t, db, `INSERT INTO scenario_assumptions VALUES ('s-over', 25.0, 1.5)`)
	exec(t, db, `INSERT INTO scenario_assumptions VALUES ('s-under', 25.0, -0.1)`)

	a, err := repo.FindAssumptions(ctx, "s-1")
	require.NoError(err)
	require.Equal(&models.ScenarioAssumptions{ScenarioID: "s-1", BaselineCPMMidroll: 30, CreatorRevShare: 0.65}, a)

	a, err = repo.FindAssumptions(ctx, "missing")
	require.NoError(err)
	require.Nil(a)

	_, err = repo.FindAssumptions(ctx, "s-bad")
	require.ErrorIs(err, ErrInvalidRow)

	_, err = repo.FindAssumptions(ctx, "s-over")
	require.ErrorIs(err, ErrInvalidRow)

	_, err = repo.FindAssumptions(ctx, "s-under")
	require.ErrorIs(err, ErrInvalidRow)
}

func TestListActiveInventory(t *testing.T) {
	require := require.New(t)
	db := openTestDB(t)
	repo := NewRepository(db)

	exec(t, db, `INSERT INTO ad_inventory_units VALUES
		('u-1', 'Morning Show', 'morning-show', 'podcast', 'mid-roll', 20, 15, 30, 100000, 1.0, 1),
		('u-2', 'Summit Stage', 'summit-stage', 'event', NULL, 40, 30, 60, 5000, NULL, 1),
		('u-3', 'Retired Slot', 'retired', 'newsletter', 'header', 10, 5, 15, 1000, 1.0, 0)`)

	units, err := repo.ListActiveInventory(context.Background())
	require.NoError(err)
	require.Len(units, 2)

	require.Equal("u-2", units[0].ID)
	require.Equal(models.InventoryEvent, units[0].Type)
	require.Equal("", units[0].Placement)
	require.Equal(1.0, units[0].SeasonalityFactor)
	require.True(units[0].IsActive)

	require.Equal("u-1", units[1].ID)
	require.Equal(int64(100000), units[1].ExpectedMonthlyImpressions)
	require.Equal(20.0, units[1].TargetCPM)
}

func TestListActiveInventoryEmpty(t *testing.T) {
	units, err := NewRepository(openTestDB(t)).ListActiveInventory(context.Background())
	require.NoError(t, err)
	require.NotNil(t, units)
	require.Empty(t, units)
}

func TestListActiveInventoryRejectsMalformedRows(t *testing.T) {
	tests := map[string]string{
		"null target":          `('u-1', 'A', 'a', 'podcast', NULL, NULL, 15, 30, 1000, 1.0, 1)`,
		"negative impressions": `('u-1', 'A', 'a', 'podcast', NULL, 20, 15, 30, -5, 1.0, 1)`,
		"null type":            `('u-1', 'A', 'a', NULL, NULL, 20, 15, 30, 1000, 1.0, 1)`,
		"negative floor":       `('u-1', 'A', 'a', 'podcast', NULL, 20, -5, 30, 1000, 1.0, 1)`,
		"negative seasonality": `('u-1', 'A', 'a', 'podcast', NULL, 20, 15, 30, 1000, -1.0, 1)`,
	}
	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			db := openTestDB(t)
			exec(t, db, `INSERT INTO ad_inventory_units VALUES `+values)

			_, err := NewRepository(db).ListActiveInventory(context.Background())
			require.ErrorIs(t, err, ErrInvalidRow)
		})
	}
}

func TestRepositoryPropagatesDatabaseErrors(t *testing.T) {
	db := openTestDB(t)
	exec(t, db, `DROP TABLE ad_inventory_units`)
	exec(t, db, `DROP TABLE scenarios`)
	exec(t, db, `DROP TABLE scenario_assumptions`)
	repo := NewRepository(db)

	_, err := repo.ListActiveInventory(context.Background())
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidRow)

	_, err = repo.FindScenarioByName(context.Background(), "Base")
	require.Error(t, err)

	_, err = repo.FindAssumptions(context.Background(), "s-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidRow)
}
