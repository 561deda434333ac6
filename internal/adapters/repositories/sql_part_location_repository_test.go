package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanPartLocations(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedFromJSON(db, SQLite, writeSeed(t, seedJSON)))

	rows, err := db.Query(`
	SELECT order_number, part_id, part_name, location, weight_kg
	FROM part_locations
	ORDER BY part_id DESC;
	`)
	require.NoError(t, err)

	parts, err := scanPartLocations(rows)
	require.NoError(t, err)
	require.Len(t, parts, 4)

	assert.Equal(t, int64(4), parts[0].PartID)
	assert.Equal(t, "ORD-3", parts[0].OrderNumber)
	assert.Equal(t, "Shaft", parts[0].PartName)
	assert.Equal(t, "E39-4", parts[0].Location)
	assert.InDelta(t, 7.5, parts[0].WeightKg, 1e-9)
	assert.Equal(t, int64(1), parts[3].PartID)
}

func TestScanPartLocations_ColumnMismatch(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, SeedFromJSON(db, SQLite, writeSeed(t, seedJSON)))

	rows, err := db.Query(`SELECT order_number, part_id FROM part_locations;`)
	require.NoError(t, err)

	_, err = scanPartLocations(rows)
	assert.ErrorContains(t, err, "scan row")
}

func TestUniqueOrders(t *testing.T) {
	got := uniqueOrders([]string{" ORD-2", "ORD-1", "", "ORD-2 ", "  ", "ORD-1"})
	assert.Equal(t, []string{"ORD-2", "ORD-1"}, got)
	assert.Empty(t, uniqueOrders(nil))
}

func TestSQLRepository_GuardsBeforeQuerying(t *testing.T) {
	_, err := NewSQLPartLocationRepository(nil).ListPartLocations(context.Background(), []string{"ORD-1"})
	assert.ErrorContains(t, err, "db is nil")

	db := openTestDB(t)
	_, err = NewSQLPartLocationRepository(db).ListPartLocations(context.Background(), []string{" "})
	assert.ErrorContains(t, err, "must not be empty")
}
