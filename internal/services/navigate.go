package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/lo"

	"pick-route-service/internal/domain"
	"pick-route-service/internal/platform/obs"
	"pick-route-service/internal/ports"
)

type NavigateRequest struct {
	OrderNumbers []string
	// Algorithm overrides the selector when set.
	Algorithm Algorithm
	// Weighted routes by carried weight × distance using part weights.
	Weighted bool
}

// Navigate computes the pick route for the parts of the requested orders.
//
// Part locations are fetched from source, parsed, deduplicated by position
// and solved with the selected (or requested) strategy. Items sharing a
// position are fanned back out onto that route step.
func (o *Optimizer) Navigate(
	ctx context.Context,
	req NavigateRequest,
	source ports.PartLocationSource,
) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "navigate")(&err)

	items, err := o.loadItems(ctx, req.OrderNumbers, source)
	if err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}
	stops := uniqueStops(items)
	entry, exit := domain.Entry(), domain.Exit()

	var (
		info AlgorithmInfo
		path []domain.Position
	)

	start := time.Now()
	if req.Weighted {
		info, path, err = o.solveWeighted(req.Algorithm, entry, exit, stops, weightsByPosition(items))
	} else {
		info, path, err = o.solvePlain(req.Algorithm, entry, exit, stops)
	}
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("navigate: %w", err)
	}

	route := AssembleRoute(path, items, o.opts.Layout, o.opts.Time)
	route.Algorithm = info.Name
	route.ExecutionTime = elapsed

	log.Printf(
		"req_id=%s op=navigate algorithm=%s items=%d stops=%d distance=%d walking=%ds picking=%ds buffer=%ds total=%ds exec=%dms",
		obs.RequestID(ctx), info.Algorithm, len(items), len(stops), route.TotalDistance,
		route.WalkingSeconds, route.PickingSeconds, route.BufferSeconds, route.EstimatedSeconds, elapsed.Milliseconds(),
	)

	return route, nil
}

// CompareOrders runs Compare on the deduplicated stops of the requested orders.
func (o *Optimizer) CompareOrders(
	ctx context.Context,
	orderNumbers []string,
	source ports.PartLocationSource,
) (_ *domain.Comparison, err error) {
	defer obs.Time(ctx, "compare_orders")(&err)

	items, err := o.loadItems(ctx, orderNumbers, source)
	if err != nil {
		return nil, fmt.Errorf("compare orders: %w", err)
	}
	stops := uniqueStops(items)
	log.Printf("req_id=%s op=dedupe items=%d stops=%d", obs.RequestID(ctx), len(items), len(stops))

	return o.Compare(ctx, domain.Entry(), domain.Exit(), stops), nil
}

func (o *Optimizer) loadItems(ctx context.Context, orderNumbers []string, source ports.PartLocationSource) ([]PickItem, error) {
	orders := lo.Uniq(lo.Compact(lo.Map(orderNumbers, func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))
	if len(orders) == 0 {
		return nil, errors.New("at least one order number is required")
	}
	if source == nil {
		return nil, errors.New("part location source is nil")
	}

	parts, err := source.ListPartLocations(ctx, orders)
	if err != nil {
		return nil, fmt.Errorf("list part locations: %w", err)
	}

	return ParseItems(parts)
}

func (o *Optimizer) solvePlain(alg Algorithm, entry, exit domain.Position, stops []domain.Position) (AlgorithmInfo, []domain.Position, error) {
	var s PathSolver
	if alg == "" {
		s = o.Select(len(stops))
	} else {
		var err error
		if s, err = o.Solver(alg); err != nil {
			return AlgorithmInfo{}, nil, err
		}
	}

	path, err := s.Solve(entry, exit, stops)
	if err != nil {
		return s.Info(), nil, fmt.Errorf("solve with %s: %w", s.Info().Algorithm, err)
	}
	return s.Info(), path, nil
}

func (o *Optimizer) solveWeighted(
	alg Algorithm,
	entry, exit domain.Position,
	stops []domain.Position,
	weights map[domain.Position]float64,
) (AlgorithmInfo, []domain.Position, error) {
	if alg == "" {
		alg = o.opts.Selector.SelectWeighted(len(stops))
	}
	s, err := o.WeightedSolver(alg)
	if err != nil {
		return AlgorithmInfo{}, nil, err
	}

	path, err := s.SolveWeighted(entry, exit, stops, weights)
	if err != nil {
		return s.Info(), nil, fmt.Errorf("solve with %s: %w", alg, err)
	}
	return s.Info(), path, nil
}

func uniqueStops(items []PickItem) []domain.Position {
	return lo.Uniq(lo.Map(items, func(it PickItem, _ int) domain.Position {
		return it.Position
	}))
}

func weightsByPosition(items []PickItem) map[domain.Position]float64 {
	return lo.Reduce(items, func(acc map[domain.Position]float64, it PickItem, _ int) map[domain.Position]float64 {
		acc[it.Position] += it.Part.WeightKg
		return acc
	}, make(map[domain.Position]float64, len(items)))
}
