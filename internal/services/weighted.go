package services

import (
	"math"
	"slices"

	"pick-route-service/internal/domain"
)

// Weighted variants charge carried weight × distance per edge. A stop's
// weight joins the load after arriving there, so heavy items are pushed
// towards the end of the route.

// WeightedNearestNeighbor picks, at each step, the stop minimising
// (carried + stop weight) × distance.
type WeightedNearestNeighbor struct {
	opts Options
}

func NewWeightedNearestNeighbor(opts Options) *WeightedNearestNeighbor {
	return &WeightedNearestNeighbor{opts: opts}
}

func (s *WeightedNearestNeighbor) Info() AlgorithmInfo {
	return AlgorithmInfo{
		Algorithm:      WeightedNearestNeighborAlgorithm,
		Name:           "Weighted Nearest Neighbor",
		TimeComplexity: "O(n²)",
		Accuracy:       "heuristic",
		Description:    "Greedy walk minimising carried weight times distance",
	}
}

func (s *WeightedNearestNeighbor) SolveWeighted(
	entry, exit domain.Position,
	stops []domain.Position,
	weights map[domain.Position]float64,
) ([]domain.Position, error) {
	if err := checkStops(stops); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return []domain.Position{entry, exit}, nil
	}

	nodes := withEndpoints(entry, exit, stops)
	dist := distanceMatrix(s.opts.Layout, nodes)

	return pickNodes(nodes, weightedGreedyOrder(dist, nodeWeights(nodes, weights))), nil
}

// WeightedTwoOpt improves a weighted nearest-neighbor route with 2-opt moves
// accepted only when they lower the total weighted cost.
type WeightedTwoOpt struct {
	opts Options
}

func NewWeightedTwoOpt(opts Options) *WeightedTwoOpt {
	return &WeightedTwoOpt{opts: opts}
}

func (s *WeightedTwoOpt) Info() AlgorithmInfo {
	return AlgorithmInfo{
		Algorithm:      WeightedTwoOptAlgorithm,
		Name:           "Weighted Nearest Neighbor + 2-opt",
		TimeComplexity: "O(n³)",
		Accuracy:       "heuristic",
		Description:    "Weighted greedy route improved by 2-opt under the weighted cost",
	}
}

func (s *WeightedTwoOpt) SolveWeighted(
	entry, exit domain.Position,
	stops []domain.Position,
	weights map[domain.Position]float64,
) ([]domain.Position, error) {
	if err := checkStops(stops); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return []domain.Position{entry, exit}, nil
	}

	nodes := withEndpoints(entry, exit, stops)
	dist := distanceMatrix(s.opts.Layout, nodes)
	w := nodeWeights(nodes, weights)

	order := weightedGreedyOrder(dist, w)
	weightedTwoOptImprove(order, dist, w, s.opts.WeightedTwoOptMaxIterations)

	return pickNodes(nodes, order), nil
}

// WeightedCost is Σ carried × distance over path, where carried grows by a
// stop's weight after arriving there.
func WeightedCost(layout domain.Layout, path []domain.Position, weights map[domain.Position]float64) float64 {
	cost, carried := 0.0, 0.0
	for i := 1; i < len(path); i++ {
		cost += carried * float64(layout.Distance(path[i-1], path[i]))
		if !path[i].IsSentinel() {
			carried += weights[path[i]]
		}
	}
	return cost
}

func nodeWeights(nodes []domain.Position, weights map[domain.Position]float64) []float64 {
	w := make([]float64, len(nodes))
	for i := 1; i < len(nodes)-1; i++ {
		w[i] = weights[nodes[i]]
	}
	return w
}

func weightedGreedyOrder(dist [][]int, w []float64) []int {
	stopCount := len(w) - 2
	order := make([]int, 0, len(w))
	order = append(order, 0)
	visited := make([]bool, stopCount+1)

	cur, carried := 0, 0.0
	for len(order) <= stopCount {
		next, best := -1, math.Inf(1)
		for c := 1; c <= stopCount; c++ {
			if visited[c] {
				continue
			}
			if cost := (carried + w[c]) * float64(dist[cur][c]); cost < best {
				next, best = c, cost
			}
		}
		visited[next] = true
		carried += w[next]
		order = append(order, next)
		cur = next
	}

	return append(order, stopCount+1)
}

func weightedOrderCost(order []int, dist [][]int, w []float64) float64 {
	cost, carried := 0.0, 0.0
	for i := 1; i < len(order); i++ {
		cost += carried * float64(dist[order[i-1]][order[i]])
		carried += w[order[i]]
	}
	return cost
}

// weightedTwoOptImprove reverses [i, j] in place when that lowers the
// weighted cost. The cost is not edge-local, so each candidate is priced
// over the whole order and undone when rejected.
func weightedTwoOptImprove(order []int, dist [][]int, w []float64, maxIterations int) {
	current := weightedOrderCost(order, dist, w)

	for pass := 0; pass < maxIterations; pass++ {
		improved := false

		for i := 1; i < len(order)-2; i++ {
			for j := i + 1; j < len(order)-1; j++ {
				slices.Reverse(order[i : j+1])
				if cost := weightedOrderCost(order, dist, w); cost < current {
					current = cost
					improved = true
					continue
				}
				slices.Reverse(order[i : j+1])
			}
		}

		if !improved {
			return
		}
	}
}
