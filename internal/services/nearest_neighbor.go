package services

import (
	"pick-route-service/internal/domain"
)

// NearestNeighbor builds a pick route greedily.
//
// From the entry it always walks to the closest unvisited stop, then runs the
// on-the-way pass that pulls stops lying next to an already chosen edge
// forward. The design prioritizes determinism and speed over optimality.
type NearestNeighbor struct {
	opts Options
}

func NewNearestNeighbor(opts Options) *NearestNeighbor {
	return &NearestNeighbor{opts: opts}
}

func (s *NearestNeighbor) Info() AlgorithmInfo {
	return AlgorithmInfo{
		Algorithm:      NearestNeighborAlgorithm,
		Name:           "Nearest Neighbor (Greedy)",
		TimeComplexity: "O(n²)",
		Accuracy:       "60~80%",
		Description:    "Greedy walk to the closest unvisited stop with on-the-way insertion",
	}
}

func (s *NearestNeighbor) Solve(entry, exit domain.Position, stops []domain.Position) ([]domain.Position, error) {
	if err := checkStops(stops); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return []domain.Position{entry, exit}, nil
	}

	nodes := withEndpoints(entry, exit, stops)
	dist := distanceMatrix(s.opts.Layout, nodes)

	return pickNodes(nodes, s.order(dist, len(stops))), nil
}

func (s *NearestNeighbor) order(dist [][]int, stopCount int) []int {
	return onTheWayPass(greedyOrder(stopCount, dist), dist, s.opts.InsertionSlack, s.opts.InsertionMaxPasses)
}
