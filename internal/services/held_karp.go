package services

import (
	"log"
	"math"
	"slices"

	"pick-route-service/internal/domain"
)

// HeldKarp solves the open path exactly with bitmask dynamic programming.
//
// dp[mask][last] is the cheapest walk from the entry that visits exactly the
// stops in mask and ends at last. Closing with the hop to the exit and
// following parent pointers back gives the optimal order.
//
// Time O(n²·2ⁿ), memory O(n·2ⁿ). Above the ceiling the solver hands the
// request to 2-opt instead.
type HeldKarp struct {
	opts     Options
	fallback *TwoOpt
}

func NewHeldKarp(opts Options) *HeldKarp {
	return &HeldKarp{opts: opts, fallback: NewTwoOpt(opts)}
}

func (s *HeldKarp) Info() AlgorithmInfo {
	return AlgorithmInfo{
		Algorithm:      HeldKarpAlgorithm,
		Name:           "Held-Karp (Dynamic Programming)",
		TimeComplexity: "O(n² × 2^n)",
		Accuracy:       "100% (optimal)",
		Description:    "Exact bitmask dynamic programming over visited-stop subsets",
	}
}

func (s *HeldKarp) Solve(entry, exit domain.Position, stops []domain.Position) ([]domain.Position, error) {
	if err := checkStops(stops); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return []domain.Position{entry, exit}, nil
	}

	if ceiling := s.ceiling(); len(stops) > ceiling {
		log.Printf("solver=%s op=fallback stops=%d ceiling=%d to=%s",
			HeldKarpAlgorithm, len(stops), ceiling, TwoOptAlgorithm)
		return s.fallback.Solve(entry, exit, stops)
	}

	nodes := withEndpoints(entry, exit, stops)
	dist := distanceMatrix(s.opts.Layout, nodes)

	return pickNodes(nodes, heldKarpOrder(dist, len(stops))), nil
}

// ceiling is the configured ceiling clamped to heldKarpHardLimit, so options
// that skipped Validate cannot size the DP table past it.
func (s *HeldKarp) ceiling() int {
	return min(s.opts.HeldKarpCeiling, heldKarpHardLimit)
}

// heldKarpOrder returns the optimal node order for n ≤ heldKarpHardLimit stops.
func heldKarpOrder(dist [][]int, n int) []int {
	const inf = math.MaxInt32 / 2

	full := 1<<n - 1
	exit := n + 1

	// Flat tables indexed mask*n+last; stop k lives at node k+1.
	dp := make([]int32, (full+1)*n)
	parent := make([]int8, (full+1)*n)
	for i := range dp {
		dp[i] = inf
		parent[i] = -1
	}
	for i := 0; i < n; i++ {
		dp[(1<<i)*n+i] = int32(dist[0][i+1])
	}

	for mask := 1; mask <= full; mask++ {
		row := mask * n
		for last := 0; last < n; last++ {
			if mask&(1<<last) == 0 {
				continue
			}
			cur := dp[row+last]
			if cur >= inf {
				continue
			}

			for next := 0; next < n; next++ {
				if mask&(1<<next) != 0 {
					continue
				}
				cell := (mask|1<<next)*n + next
				if cand := cur + int32(dist[last+1][next+1]); cand < dp[cell] {
					dp[cell] = cand
					parent[cell] = int8(last)
				}
			}
		}
	}

	best, last := int32(inf), -1
	for i := 0; i < n; i++ {
		if total := dp[full*n+i] + int32(dist[i+1][exit]); total < best {
			best, last = total, i
		}
	}

	order := make([]int, 0, n+2)
	for mask, cur := full, last; cur != -1; {
		order = append(order, cur+1)
		prev := int(parent[mask*n+cur])
		mask ^= 1 << cur
		cur = prev
	}
	order = append(order, 0)
	slices.Reverse(order)

	return append(order, exit)
}
