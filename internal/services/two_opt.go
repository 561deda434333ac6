package services

import (
	"slices"

	"pick-route-service/internal/domain"
)

// TwoOpt improves a nearest-neighbor route by segment reversal.
//
// Entry and exit stay fixed. A pass tries every interior pair (i, j) and
// reverses [i, j] when replacing edges (i-1,i),(j,j+1) with (i-1,j),(i,j+1)
// is strictly shorter. Passes repeat until one makes no change or the
// iteration cap is reached. Reversal can reopen on-the-way opportunities,
// so the insertion pass runs again afterwards and is kept only if it does
// not lengthen the route.
type TwoOpt struct {
	opts Options
	nn   *NearestNeighbor
}

func NewTwoOpt(opts Options) *TwoOpt {
	return &TwoOpt{opts: opts, nn: NewNearestNeighbor(opts)}
}

func (s *TwoOpt) Info() AlgorithmInfo {
	return AlgorithmInfo{
		Algorithm:      TwoOptAlgorithm,
		Name:           "Nearest Neighbor + 2-opt (Local Search)",
		TimeComplexity: "O(n³)",
		Accuracy:       "85~95%",
		Description:    "Nearest-neighbor route improved by 2-opt segment reversal",
	}
}

func (s *TwoOpt) Solve(entry, exit domain.Position, stops []domain.Position) ([]domain.Position, error) {
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

func (s *TwoOpt) order(dist [][]int, stopCount int) []int {
	order := s.nn.order(dist, stopCount)
	twoOptImprove(order, dist, s.opts.TwoOptMaxIterations)

	repaired := onTheWayPass(order, dist, s.opts.InsertionSlack, s.opts.InsertionMaxPasses)
	if orderCost(dist, repaired) <= orderCost(dist, order) {
		return repaired
	}
	return order
}

// twoOptImprove mutates order in place and returns the number of passes run.
func twoOptImprove(order []int, dist [][]int, maxIterations int) int {
	passes := 0
	for passes < maxIterations {
		passes++
		improved := false

		for i := 1; i < len(order)-2; i++ {
			for j := i + 1; j < len(order)-1; j++ {
				a, b, c, d := order[i-1], order[i], order[j], order[j+1]
				if dist[a][c]+dist[b][d] < dist[a][b]+dist[c][d] {
					slices.Reverse(order[i : j+1])
					improved = true
				}
			}
		}

		if !improved {
			break
		}
	}
	return passes
}
