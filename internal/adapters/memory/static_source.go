package memory

import (
	"context"
	"errors"

	"github.com/samber/lo"

	"pick-route-service/internal/domain"
)

// StaticSource serves part locations from memory, keyed by order number.
type StaticSource struct {
	byOrder map[string][]domain.PartLocation
}

func NewStaticSource(parts []domain.PartLocation) *StaticSource {
	m := make(map[string][]domain.PartLocation)
	for _, p := range parts {
		m[p.OrderNumber] = append(m[p.OrderNumber], p)
	}
	return &StaticSource{byOrder: m}
}

// Return the parts of the given orders, grouped in request order.
func (s *StaticSource) ListPartLocations(ctx context.Context, orderNumbers []string) ([]domain.PartLocation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(orderNumbers) == 0 {
		return nil, errors.New("static source: order numbers must not be empty")
	}

	return lo.FlatMap(lo.Uniq(orderNumbers), func(o string, _ int) []domain.PartLocation {
		return s.byOrder[o]
	}), nil
}
