package services

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pick-route-service/internal/domain"
)

func TestWeightedCost(t *testing.T) {
	path := positions("door", "A0", "A5", "packing")
	weights := map[domain.Position]float64{
		domain.MustParse("A0"): 2,
		domain.MustParse("A5"): 3,
	}

	// 0·0 + 2·7 + 5·25
	assert.InDelta(t, 139.0, WeightedCost(domain.DefaultLayout(), path, weights), 1e-9)
}

func TestWeightedSolvers_HeavyItemLater(t *testing.T) {
	opts := DefaultOptions()
	stops := positions("A1", "A2")
	weights := map[domain.Position]float64{
		domain.MustParse("A1"): 10,
		domain.MustParse("A2"): 1,
	}

	// Greedy weighs the first hop only: A2 costs 1·2, A1 costs 10·1.
	nnPath, err := NewWeightedNearestNeighbor(opts).SolveWeighted(domain.Entry(), domain.Exit(), stops, weights)
	require.NoError(t, err)
	assert.Equal(t, positions("ENTRY", "A2", "A1", "EXIT"), nnPath)
	assert.InDelta(t, 254.0, WeightedCost(opts.Layout, nnPath, weights), 1e-9)

	// Over the whole route taking A1 first is cheaper (10 + 11·22).
	twoPath, err := NewWeightedTwoOpt(opts).SolveWeighted(domain.Entry(), domain.Exit(), stops, weights)
	require.NoError(t, err)
	assert.Equal(t, positions("ENTRY", "A1", "A2", "EXIT"), twoPath)
	assert.InDelta(t, 252.0, WeightedCost(opts.Layout, twoPath, weights), 1e-9)
}

func TestWeightedTwoOpt_NeverWorseThanWeightedGreedy(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 8))
	opts := DefaultOptions()
	wnn, w2 := NewWeightedNearestNeighbor(opts), NewWeightedTwoOpt(opts)

	for trial := 0; trial < 25; trial++ {
		stops := randomStops(rng, 2+rng.IntN(15))
		weights := make(map[domain.Position]float64, len(stops))
		for _, s := range stops {
			weights[s] = 0.5 + rng.Float64()*10
		}

		a, err := wnn.SolveWeighted(domain.Entry(), domain.Exit(), stops, weights)
		require.NoError(t, err)
		b, err := w2.SolveWeighted(domain.Entry(), domain.Exit(), stops, weights)
		require.NoError(t, err)

		requireValidRoute(t, domain.Entry(), domain.Exit(), stops, a)
		requireValidRoute(t, domain.Entry(), domain.Exit(), stops, b)
		assert.LessOrEqual(t, WeightedCost(opts.Layout, b, weights), WeightedCost(opts.Layout, a, weights)+1e-9, "trial %d", trial)
	}
}

func TestWeightedSolvers_EdgeCases(t *testing.T) {
	opts := DefaultOptions()
	for _, s := range []WeightedSolver{NewWeightedNearestNeighbor(opts), NewWeightedTwoOpt(opts)} {
		path, err := s.SolveWeighted(domain.Entry(), domain.Exit(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []domain.Position{domain.Entry(), domain.Exit()}, path)

		_, err = s.SolveWeighted(domain.Entry(), domain.Exit(), []domain.Position{domain.Entry()}, nil)
		assert.True(t, errors.Is(err, ErrSentinelStop))
	}
}
