package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"pick-route-service/internal/domain"
)

// Dialect selects placeholder syntax for the SQL adapters.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// placeholder returns the n-th (1-based) bind parameter.
func (d Dialect) placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Initialize the part-location schema. The DDL is valid for SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPartLocationsQuery := `
	CREATE TABLE IF NOT EXISTS part_locations (
		order_number TEXT NOT NULL,
		part_id BIGINT NOT NULL,
		part_name TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		weight_kg DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (order_number, part_id)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_part_locations_location
	ON part_locations(location);
	`

	statements := []string{
		createPartLocationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PartLocationSeed struct {
	OrderNumber string  `json:"order_number"`
	PartID      int64   `json:"part_id"`
	PartName    string  `json:"part_name"`
	Location    string  `json:"location"`
	WeightKg    float64 `json:"weight_kg"`
}

// Read and validate part locations from a JSON seed file.
// Locations are checked with domain.Parse so bad data fails at load time.
func ReadSeedFile(jsonPath string) ([]domain.PartLocation, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read seed: read %q: %w", jsonPath, err)
	}

	var data []PartLocationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("read seed: parse json: %w", err)
	}

	parts := make([]domain.PartLocation, 0, len(data))
	for i, item := range data {
		if item.PartID <= 0 {
			return nil, fmt.Errorf("read seed: invalid part_id at index %d: %d", i+1, item.PartID)
		}

		order := strings.TrimSpace(item.OrderNumber)
		if order == "" {
			return nil, fmt.Errorf("read seed: item at index %d: order_number cannot be empty", i+1)
		}

		if _, err := domain.Parse(item.Location); err != nil {
			return nil, fmt.Errorf("read seed: item at index %d: %w", i+1, err)
		}

		if item.WeightKg < 0 {
			return nil, fmt.Errorf("read seed: item at index %d: negative weight %v", i+1, item.WeightKg)
		}

		parts = append(parts, domain.PartLocation{
			OrderNumber: order,
			PartID:      item.PartID,
			PartName:    strings.TrimSpace(item.PartName),
			Location:    strings.TrimSpace(item.Location),
			WeightKg:    item.WeightKg,
		})
	}

	return parts, nil
}

// Populate the database with part locations from a JSON file.
func SeedFromJSON(db *sql.DB, dialect Dialect, jsonPath string) error {
	if db == nil {
		return errors.New("seed part locations: DB is nil")
	}

	rows, err := ReadSeedFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed part locations: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed part locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	p := dialect.placeholder
	query := fmt.Sprintf(`
	INSERT INTO part_locations (
		order_number,
		part_id,
		part_name,
		location,
		weight_kg
	)
	VALUES (%s, %s, %s, %s, %s)
	ON CONFLICT (order_number, part_id) DO UPDATE
	SET part_name = excluded.part_name,
		location = excluded.location,
		weight_kg = excluded.weight_kg;
	`, p(1), p(2), p(3), p(4), p(5))

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed part locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(r.OrderNumber, r.PartID, r.PartName, r.Location, r.WeightKg); err != nil {
			return fmt.Errorf("seed part locations: insert order=%s part_id=%d: %w", r.OrderNumber, r.PartID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed part locations: commit tx: %w", err)
	}

	return nil
}
