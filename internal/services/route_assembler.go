package services

import (
	"fmt"

	"pick-route-service/internal/domain"
)

// PickItem is a part location with its parsed position.
type PickItem struct {
	Position domain.Position
	Part     domain.PartLocation
}

// ParseItems parses every part's location. One malformed location fails the
// whole batch since the route would be incomplete without it.
func ParseItems(parts []domain.PartLocation) ([]PickItem, error) {
	items := make([]PickItem, 0, len(parts))
	for _, p := range parts {
		pos, err := domain.Parse(p.Location)
		if err != nil {
			return nil, fmt.Errorf("parse items: part_id=%d order=%s: %w", p.PartID, p.OrderNumber, err)
		}
		if pos.IsSentinel() {
			return nil, fmt.Errorf("parse items: part_id=%d location %q: %w", p.PartID, p.Location, ErrSentinelStop)
		}
		items = append(items, PickItem{Position: pos, Part: p})
	}
	return items, nil
}

// AssembleRoute turns an ordered position list into a reportable route.
//
// Distances are accumulated in one forward scan. Each non-sentinel step is
// joined to the items stored at its position; the first matching item
// supplies the step's description, order number and part id.
// Estimated time = distance × SecondsPerUnit + picks × SecondsPerPick + BufferSeconds,
// where picks counts one per stop, or one per item when several share a stop.
func AssembleRoute(path []domain.Position, items []PickItem, layout domain.Layout, tm TimeModel) *domain.Route {
	byPosition := make(map[domain.Position][]domain.PartLocation, len(items))
	for _, it := range items {
		byPosition[it.Position] = append(byPosition[it.Position], it.Part)
	}

	route := &domain.Route{Steps: make([]domain.RouteStep, 0, len(path))}
	cumulative, picks := 0, 0

	for i, pos := range path {
		step := domain.RouteStep{Sequence: i, Position: pos}
		if i > 0 {
			step.DistanceFromPrevious = layout.Distance(path[i-1], pos)
			cumulative += step.DistanceFromPrevious
		}
		step.CumulativeDistance = cumulative

		switch {
		case pos.IsEntry:
			step.Description = "Entry"
		case pos.IsExit:
			step.Description = "Exit"
		default:
			step.Items = byPosition[pos]
			if len(step.Items) > 0 {
				first := step.Items[0]
				id := first.PartID
				step.Description = first.PartName
				step.OrderNumber = first.OrderNumber
				step.PartID = &id
			}
			picks += max(1, len(step.Items))
		}

		route.Steps = append(route.Steps, step)
	}

	route.TotalDistance = cumulative
	route.WalkingSeconds = int(float64(cumulative) * tm.SecondsPerUnit)
	route.PickingSeconds = picks * tm.SecondsPerPick
	route.BufferSeconds = tm.BufferSeconds
	route.EstimatedSeconds = route.WalkingSeconds + route.PickingSeconds + route.BufferSeconds

	return route
}
