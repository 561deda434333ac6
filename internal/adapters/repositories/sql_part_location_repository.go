package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"pick-route-service/internal/domain"
	"pick-route-service/internal/platform/obs"
)

// SQLPartLocationRepository is the Postgres (pgx) implementation of the
// PartLocationSource port.
type SQLPartLocationRepository struct {
	DB *sql.DB
}

func NewSQLPartLocationRepository(db *sql.DB) *SQLPartLocationRepository {
	return &SQLPartLocationRepository{DB: db}
}

// Return the part locations of the given orders.
func (s *SQLPartLocationRepository) ListPartLocations(
	ctx context.Context,
	orderNumbers []string,
) (_ []domain.PartLocation, err error) {
	defer obs.Time(ctx, "parts.sql.ListPartLocations")(&err)

	if s.DB == nil {
		return nil, errors.New("part location repository: db is nil")
	}

	orders := uniqueOrders(orderNumbers)
	if len(orders) == 0 {
		return nil, errors.New("list part locations: order numbers must not be empty")
	}

	q := `
	SELECT order_number, part_id, part_name, location, weight_kg
    FROM part_locations
    WHERE order_number = ANY($1::text[])
	ORDER BY order_number, part_id;
	`

	rows, err := s.DB.QueryContext(ctx, q, orders)
	if err != nil {
		return nil, fmt.Errorf("list part locations: query part_locations table: %w", err)
	}

	return scanPartLocations(rows)
}

func scanPartLocations(rows *sql.Rows) ([]domain.PartLocation, error) {
	defer rows.Close()

	out := make([]domain.PartLocation, 0, 64)
	for rows.Next() {
		var p domain.PartLocation
		if err := rows.Scan(&p.OrderNumber, &p.PartID, &p.PartName, &p.Location, &p.WeightKg); err != nil {
			return nil, fmt.Errorf("list part locations: scan row: %w", err)
		}
		out = append(out, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list part locations: row iteration: %w", err)
	}

	return out, nil
}

func uniqueOrders(orderNumbers []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(orderNumbers, func(o string, _ int) string {
		return strings.TrimSpace(o)
	})))
}
