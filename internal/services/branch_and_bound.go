package services

import (
	"cmp"
	"log"
	"slices"

	"pick-route-service/internal/domain"
)

// BranchAndBound finds the optimal order by depth-first search over
// permutations, seeded with the nearest-neighbor route as the incumbent.
//
// A branch is cut when its partial cost already reaches the incumbent, or
// when partial cost plus a lower bound does. The bound sums the cheapest
// edge leaving (or entering) every node still to be passed.
// Nearer stops are expanded first. Worst case O(n!).
type BranchAndBound struct {
	opts     Options
	nn       *NearestNeighbor
	fallback *TwoOpt
}

func NewBranchAndBound(opts Options) *BranchAndBound {
	return &BranchAndBound{opts: opts, nn: NewNearestNeighbor(opts), fallback: NewTwoOpt(opts)}
}

func (s *BranchAndBound) Info() AlgorithmInfo {
	return AlgorithmInfo{
		Algorithm:      BranchAndBoundAlgorithm,
		Name:           "Branch and Bound",
		TimeComplexity: "O(n!) worst case, much faster with pruning",
		Accuracy:       "100% (optimal)",
		Description:    "Exact depth-first search pruned by incumbent and lower bound",
	}
}

func (s *BranchAndBound) Solve(entry, exit domain.Position, stops []domain.Position) ([]domain.Position, error) {
	if err := checkStops(stops); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return []domain.Position{entry, exit}, nil
	}

	if len(stops) > s.opts.BranchAndBoundCeiling {
		log.Printf("solver=%s op=fallback stops=%d ceiling=%d to=%s",
			BranchAndBoundAlgorithm, len(stops), s.opts.BranchAndBoundCeiling, TwoOptAlgorithm)
		return s.fallback.Solve(entry, exit, stops)
	}

	nodes := withEndpoints(entry, exit, stops)
	dist := distanceMatrix(s.opts.Layout, nodes)

	incumbent := s.nn.order(dist, len(stops))
	search := newBBSearch(dist, len(stops), incumbent)
	search.run()

	return pickNodes(nodes, search.bestOrder), nil
}

// bbSearch is the per-call mutable state of one branch-and-bound run.
type bbSearch struct {
	dist    [][]int
	n       int
	exit    int
	path    []int
	visited []bool
	scratch [][]int // candidate buffer per depth

	bestCost  int
	bestOrder []int
}

func newBBSearch(dist [][]int, n int, incumbent []int) *bbSearch {
	scratch := make([][]int, n)
	for i := range scratch {
		scratch[i] = make([]int, 0, n)
	}

	return &bbSearch{
		dist:      dist,
		n:         n,
		exit:      n + 1,
		path:      make([]int, 1, n+2),
		visited:   make([]bool, n+1),
		scratch:   scratch,
		bestCost:  orderCost(dist, incumbent),
		bestOrder: slices.Clone(incumbent),
	}
}

func (b *bbSearch) run() {
	b.path[0] = 0
	b.branch(0)
}

func (b *bbSearch) branch(cost int) {
	if cost >= b.bestCost {
		return
	}

	cur := b.path[len(b.path)-1]
	depth := len(b.path) - 1
	if depth == b.n {
		if total := cost + b.dist[cur][b.exit]; total < b.bestCost {
			b.bestCost = total
			b.bestOrder = append(slices.Clone(b.path), b.exit)
		}
		return
	}

	if cost+b.lowerBound(cur) >= b.bestCost {
		return
	}

	candidates := b.scratch[depth][:0]
	for c := 1; c <= b.n; c++ {
		if !b.visited[c] {
			candidates = append(candidates, c)
		}
	}
	slices.SortStableFunc(candidates, func(x, y int) int {
		return cmp.Compare(b.dist[cur][x], b.dist[cur][y])
	})

	for _, next := range candidates {
		b.visited[next] = true
		b.path = append(b.path, next)

		b.branch(cost + b.dist[cur][next])

		b.path = b.path[:len(b.path)-1]
		b.visited[next] = false
	}
}

// lowerBound is the largest of three admissible bounds on the rest of the walk:
//   - the hop to the nearest unvisited stop plus the cheapest hop to the exit;
//   - leaving: cur is left towards an unvisited stop and every unvisited
//     stop is left once, towards another one or the exit;
//   - entering: every unvisited stop is entered once from cur or another
//     unvisited stop, and the exit is entered from an unvisited stop.
func (b *bbSearch) lowerBound(cur int) int {
	fromCur, toExit := -1, -1
	leaveSum, enterSum := 0, 0

	for c := 1; c <= b.n; c++ {
		if b.visited[c] {
			continue
		}
		if d := b.dist[cur][c]; fromCur < 0 || d < fromCur {
			fromCur = d
		}
		if d := b.dist[c][b.exit]; toExit < 0 || d < toExit {
			toExit = d
		}

		out, in := b.dist[c][b.exit], b.dist[cur][c]
		for v := 1; v <= b.n; v++ {
			if v == c || b.visited[v] {
				continue
			}
			out = min(out, b.dist[c][v])
			in = min(in, b.dist[v][c])
		}
		leaveSum += out
		enterSum += in
	}

	return max(fromCur+toExit, fromCur+leaveSum, enterSum+toExit)
}
