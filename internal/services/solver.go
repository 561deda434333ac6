package services

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"pick-route-service/internal/domain"
)

// Algorithm identifies a path-search strategy.
type Algorithm string

const (
	NearestNeighborAlgorithm         Algorithm = "nearest_neighbor"
	TwoOptAlgorithm                  Algorithm = "two_opt"
	HeldKarpAlgorithm                Algorithm = "held_karp"
	BranchAndBoundAlgorithm          Algorithm = "branch_and_bound"
	FloydWarshallAlgorithm           Algorithm = "floyd_warshall_nn"
	WeightedNearestNeighborAlgorithm Algorithm = "weighted_nearest_neighbor"
	WeightedTwoOptAlgorithm          Algorithm = "weighted_two_opt"
)

var (
	// ErrSentinelStop is returned when the entry or exit is passed as a stop.
	ErrSentinelStop = errors.New("entry/exit sentinel passed as a stop")
	// ErrUnknownAlgorithm is returned for an Algorithm no solver is registered under.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// AlgorithmInfo describes a strategy for reports.
type AlgorithmInfo struct {
	Algorithm      Algorithm
	Name           string
	TimeComplexity string
	Accuracy       string
	Description    string
}

// PathSolver orders stops between a fixed entry and exit.
// Implementations are stateless and safe for concurrent use.
type PathSolver interface {
	Info() AlgorithmInfo
	// Solve returns entry, every stop exactly once, then exit.
	Solve(entry, exit domain.Position, stops []domain.Position) ([]domain.Position, error)
}

// WeightedSolver orders stops minimising carried weight × distance.
type WeightedSolver interface {
	Info() AlgorithmInfo
	SolveWeighted(entry, exit domain.Position, stops []domain.Position, weights map[domain.Position]float64) ([]domain.Position, error)
}

// Node indexing shared by the solvers: 0 is the entry, 1..n are the stops in
// input order and n+1 is the exit.

func checkStops(stops []domain.Position) error {
	for i, s := range stops {
		if s.IsSentinel() {
			return fmt.Errorf("stop #%d %q: %w", i, s.Code, ErrSentinelStop)
		}
	}
	return nil
}

func withEndpoints(entry, exit domain.Position, stops []domain.Position) []domain.Position {
	nodes := make([]domain.Position, 0, len(stops)+2)
	nodes = append(nodes, entry)
	nodes = append(nodes, stops...)
	return append(nodes, exit)
}

func distanceMatrix(layout domain.Layout, nodes []domain.Position) [][]int {
	dist := make([][]int, len(nodes))
	for i := range nodes {
		dist[i] = make([]int, len(nodes))
	}
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			d := layout.Distance(nodes[i], nodes[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

func pickNodes(nodes []domain.Position, order []int) []domain.Position {
	out := make([]domain.Position, len(order))
	for i, idx := range order {
		out[i] = nodes[idx]
	}
	return out
}

func orderCost(dist [][]int, order []int) int {
	total := 0
	for i := 1; i < len(order); i++ {
		total += dist[order[i-1]][order[i]]
	}
	return total
}

// greedyOrder walks from the entry to the cheapest unvisited stop until none
// remain, then appends the exit. Ties keep the earliest stop in input order.
func greedyOrder(stopCount int, dist [][]int) []int {
	order := make([]int, 0, stopCount+2)
	order = append(order, 0)
	visited := make([]bool, stopCount+1)

	cur := 0
	for len(order) <= stopCount {
		next, best := -1, math.MaxInt
		for c := 1; c <= stopCount; c++ {
			if visited[c] {
				continue
			}
			if d := dist[cur][c]; d < best {
				next, best = c, d
			}
		}
		visited[next] = true
		order = append(order, next)
		cur = next
	}

	return append(order, stopCount+1)
}

// onTheWayPass relocates a later stop right after the start of an edge when
// visiting it there costs at most slack extra over the direct edge.
// One relocation per pass; stops after maxPasses or a pass without change.
func onTheWayPass(order []int, dist [][]int, slack, maxPasses int) []int {
	out := slices.Clone(order)
	for pass := 0; pass < maxPasses; pass++ {
		if !relocateOnTheWay(out, dist, slack) {
			break
		}
	}
	return out
}

func relocateOnTheWay(order []int, dist [][]int, slack int) bool {
	last := len(order) - 1
	for i := 0; i < last; i++ {
		from, to := order[i], order[i+1]
		direct := dist[from][to]

		for j := i + 2; j < last; j++ {
			c := order[j]
			if dist[from][c]+dist[c][to]-direct > slack {
				continue
			}
			copy(order[i+2:j+1], order[i+1:j])
			order[i+1] = c
			return true
		}
	}
	return false
}
