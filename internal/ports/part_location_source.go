package ports

import (
	"context"

	"pick-route-service/internal/domain"
)

// Port: a boundary for retrieving the part locations of one or more orders.
type PartLocationSource interface {
	// Return every ordered item with its shelf location, in a stable order.
	ListPartLocations(ctx context.Context, orderNumbers []string) ([]domain.PartLocation, error)
}
