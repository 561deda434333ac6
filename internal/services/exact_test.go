package services

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pick-route-service/internal/domain"
)

func TestExactSolvers_MatchBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	opts := DefaultOptions()
	hk, bb := NewHeldKarp(opts), NewBranchAndBound(opts)
	entry, exit := domain.Entry(), domain.Exit()

	for trial := 0; trial < 30; trial++ {
		stops := randomStops(rng, 1+rng.IntN(7))
		want := bruteForce(opts.Layout, entry, exit, stops)

		hkPath, err := hk.Solve(entry, exit, stops)
		require.NoError(t, err)
		bbPath, err := bb.Solve(entry, exit, stops)
		require.NoError(t, err)

		assert.Equal(t, want, opts.Layout.PathDistance(hkPath), "held-karp trial %d", trial)
		assert.Equal(t, want, opts.Layout.PathDistance(bbPath), "branch-and-bound trial %d", trial)
	}
}

func TestHeldKarp_NeverWorseThanOtherSolvers(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	opts := DefaultOptions()
	hk := NewHeldKarp(opts)
	others := []PathSolver{NewNearestNeighbor(opts), NewTwoOpt(opts), NewFloydWarshallNN(opts), NewBranchAndBound(opts)}
	entry, exit := domain.Entry(), domain.Exit()

	for trial := 0; trial < 20; trial++ {
		stops := randomStops(rng, 2+rng.IntN(9))

		hkPath, err := hk.Solve(entry, exit, stops)
		require.NoError(t, err)
		best := opts.Layout.PathDistance(hkPath)

		for _, s := range others {
			path, err := s.Solve(entry, exit, stops)
			require.NoError(t, err)
			assert.LessOrEqual(t, best, opts.Layout.PathDistance(path), "%s trial %d", s.Info().Algorithm, trial)
		}
	}
}

func TestExactSolvers_FallBackToTwoOptAboveCeiling(t *testing.T) {
	opts := DefaultOptions()
	opts.HeldKarpCeiling = 4
	opts.BranchAndBoundCeiling = 4

	rng := rand.New(rand.NewPCG(9, 9))
	stops := randomStops(rng, 12)
	entry, exit := domain.Entry(), domain.Exit()

	want, err := NewTwoOpt(opts).Solve(entry, exit, stops)
	require.NoError(t, err)

	for _, s := range []PathSolver{NewHeldKarp(opts), NewBranchAndBound(opts)} {
		got, err := s.Solve(entry, exit, stops)
		require.NoError(t, err)
		assert.Equal(t, want, got, s.Info().Algorithm)
	}
}

func TestHeldKarp_AtCeilingStaysExact(t *testing.T) {
	opts := DefaultOptions()
	opts.HeldKarpCeiling = 6

	rng := rand.New(rand.NewPCG(12, 34))
	stops := randomStops(rng, 6)
	entry, exit := domain.Entry(), domain.Exit()

	path, err := NewHeldKarp(opts).Solve(entry, exit, stops)
	require.NoError(t, err)
	assert.Equal(t, bruteForce(opts.Layout, entry, exit, stops), opts.Layout.PathDistance(path))
}

func TestHeldKarpOrder_LineInstance(t *testing.T) {
	// entry 0, stops at 30, 10, 20, exit 40.
	dist := lineDist(0, 30, 10, 20, 40)
	assert.Equal(t, []int{0, 2, 3, 1, 4}, heldKarpOrder(dist, 3))
}

func TestBranchAndBound_ImprovesOnIncumbent(t *testing.T) {
	// Greedy from 0 goes to 1 (distance 4) and ends up doubling back.
	dist := lineDist(0, 4, -5, 10)
	incumbent := greedyOrder(2, dist)
	require.Equal(t, []int{0, 1, 2, 3}, incumbent)

	search := newBBSearch(dist, 2, incumbent)
	search.run()

	assert.Equal(t, []int{0, 2, 1, 3}, search.bestOrder)
	assert.Equal(t, 20, search.bestCost)
}

func TestBranchAndBound_LargestSelectedSizeStaysFast(t *testing.T) {
	opts := DefaultOptions()
	n := opts.Selector.BranchAndBoundMax
	require.Equal(t, BranchAndBoundAlgorithm, opts.Selector.Select(n))

	bb, hk := NewBranchAndBound(opts), NewHeldKarp(opts)
	entry, exit := domain.Entry(), domain.Exit()

	for seed := uint64(1); seed <= 5; seed++ {
		stops := randomStops(rand.New(rand.NewPCG(seed, seed)), n)

		start := time.Now()
		bbPath, err := bb.Solve(entry, exit, stops)
		elapsed := time.Since(start)
		require.NoError(t, err)

		hkPath, err := hk.Solve(entry, exit, stops)
		require.NoError(t, err)

		assert.Less(t, elapsed, time.Second, "seed %d", seed)
		assert.Equal(t, opts.Layout.PathDistance(hkPath), opts.Layout.PathDistance(bbPath), "seed %d", seed)
	}
}

func TestBBSearch_LowerBoundIsAdmissible(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 8))
	opts := DefaultOptions()

	for trial := 0; trial < 20; trial++ {
		stops := randomStops(rng, 2+rng.IntN(5))
		nodes := withEndpoints(domain.Entry(), domain.Exit(), stops)
		dist := distanceMatrix(opts.Layout, nodes)

		search := newBBSearch(dist, len(stops), greedyOrder(len(stops), dist))
		// From the entry with nothing visited the bound must not exceed the
		// optimal remaining cost.
		optimal := bruteForce(opts.Layout, domain.Entry(), domain.Exit(), stops)
		assert.LessOrEqual(t, search.lowerBound(0), optimal, "trial %d", trial)
	}
}

func TestHeldKarp_CeilingClampedToHardLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.HeldKarpCeiling = 25 // skips Validate on purpose

	hk := NewHeldKarp(opts)
	assert.Equal(t, heldKarpHardLimit, hk.ceiling())

	stops := randomStops(rand.New(rand.NewPCG(25, 25)), heldKarpHardLimit+1)
	entry, exit := domain.Entry(), domain.Exit()

	want, err := NewTwoOpt(opts).Solve(entry, exit, stops)
	require.NoError(t, err)
	got, err := hk.Solve(entry, exit, stops)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
