package services

import (
	"pick-route-service/internal/domain"
)

// FloydWarshallNN closes the pairwise distance matrix under shortest paths
// and walks it greedily.
//
// Penalised row switches can be undercut by a detour through the entry, so
// the greedy walk may differ from plain nearest neighbor. The returned route
// is still scored with the raw layout distance.
type FloydWarshallNN struct {
	opts Options
}

func NewFloydWarshallNN(opts Options) *FloydWarshallNN {
	return &FloydWarshallNN{opts: opts}
}

func (s *FloydWarshallNN) Info() AlgorithmInfo {
	return AlgorithmInfo{
		Algorithm:      FloydWarshallAlgorithm,
		Name:           "Floyd-Warshall + Nearest Neighbor (Graph)",
		TimeComplexity: "O(n³)",
		Accuracy:       "60~80%",
		Description:    "All-pairs shortest paths precomputed, then a greedy walk over the matrix",
	}
}

func (s *FloydWarshallNN) Solve(entry, exit domain.Position, stops []domain.Position) ([]domain.Position, error) {
	if err := checkStops(stops); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return []domain.Position{entry, exit}, nil
	}

	nodes := withEndpoints(entry, exit, stops)
	dist := distanceMatrix(s.opts.Layout, nodes)
	floydWarshallInPlace(dist)

	return pickNodes(nodes, greedyOrder(len(stops), dist)), nil
}

// floydWarshallInPlace relaxes d[i][j] through every intermediate k.
// Loop order k → i → j is fixed so results are deterministic.
func floydWarshallInPlace(d [][]int) {
	n := len(d)
	for k := 0; k < n; k++ {
		rowK := d[k]
		for i := 0; i < n; i++ {
			ik := d[i][k]
			rowI := d[i]
			for j := 0; j < n; j++ {
				if cand := ik + rowK[j]; cand < rowI[j] {
					rowI[j] = cand
				}
			}
		}
	}
}
