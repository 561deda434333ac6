package services

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"pick-route-service/internal/domain"
)

func positions(codes ...string) []domain.Position {
	out := make([]domain.Position, len(codes))
	for i, c := range codes {
		out[i] = domain.MustParse(c)
	}
	return out
}

// randomStops returns n distinct slot positions drawn from a seeded source.
func randomStops(rng *rand.Rand, n int) []domain.Position {
	seen := make(map[string]struct{}, n)
	out := make([]domain.Position, 0, n)
	for len(out) < n {
		code := fmt.Sprintf("%c%d", 'A'+rng.IntN(domain.LineCount), rng.IntN(domain.SlotCount))
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, domain.MustParse(code))
	}
	return out
}

// bruteForce returns the optimal entry → stops → exit distance by trying
// every permutation.
func bruteForce(layout domain.Layout, entry, exit domain.Position, stops []domain.Position) int {
	best := math.MaxInt
	perm := append([]domain.Position(nil), stops...)

	var rec func(k int)
	rec = func(k int) {
		if k == len(perm) {
			if d := layout.PathDistance(withEndpoints(entry, exit, perm)); d < best {
				best = d
			}
			return
		}
		for i := k; i < len(perm); i++ {
			perm[k], perm[i] = perm[i], perm[k]
			rec(k + 1)
			perm[k], perm[i] = perm[i], perm[k]
		}
	}
	rec(0)

	return best
}

// requireValidRoute checks that path is entry, a permutation of stops, exit.
func requireValidRoute(t *testing.T, entry, exit domain.Position, stops, path []domain.Position) {
	t.Helper()

	require.Len(t, path, len(stops)+2)
	require.Equal(t, entry, path[0])
	require.Equal(t, exit, path[len(path)-1])
	require.ElementsMatch(t, stops, path[1:len(path)-1])
}

// lineDist builds a distance matrix for points on a number line.
func lineDist(xs ...int) [][]int {
	d := make([][]int, len(xs))
	for i := range xs {
		d[i] = make([]int, len(xs))
		for j := range xs {
			d[i][j] = max(xs[i]-xs[j], xs[j]-xs[i])
		}
	}
	return d
}
