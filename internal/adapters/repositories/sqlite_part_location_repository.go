package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pick-route-service/internal/domain"
	"pick-route-service/internal/platform/obs"
)

// SQLite-backed implementation of the PartLocationSource port.
type SqlitePartLocationRepository struct{ DB *sql.DB }

func NewSqlitePartLocationRepository(db *sql.DB) *SqlitePartLocationRepository {
	return &SqlitePartLocationRepository{DB: db}
}

// Return the part locations of the given orders.
func (s *SqlitePartLocationRepository) ListPartLocations(
	ctx context.Context,
	orderNumbers []string,
) (_ []domain.PartLocation, err error) {
	defer obs.Time(ctx, "parts.sqlite.ListPartLocations")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite part location repository: DB is nil")
	}

	orders := uniqueOrders(orderNumbers)
	if len(orders) == 0 {
		return nil, errors.New("list part locations: order numbers must not be empty")
	}

	marks := strings.TrimSuffix(strings.Repeat("?,", len(orders)), ",")
	query := fmt.Sprintf(`
	SELECT
		order_number,
		part_id,
		part_name,
		location,
		weight_kg
	FROM part_locations
	WHERE order_number IN (%s)
	ORDER BY order_number, part_id;
	`, marks)

	args := make([]any, len(orders))
	for i, o := range orders {
		args[i] = o
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list part locations: query part_locations table: %w", err)
	}

	return scanPartLocations(rows)
}
