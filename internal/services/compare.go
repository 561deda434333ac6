package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"pick-route-service/internal/domain"
	"pick-route-service/internal/platform/obs"
)

// Compare runs every registered strategy on the same stops.
//
// Strategies run concurrently; each writes only its own result slot. A
// failing or panicking strategy is recorded with FailedDistance and an empty
// route and does not affect the others. Accuracy is scored against the best
// distance found in this run, and the recommendation is whatever the
// selector picks for this stop count.
func (o *Optimizer) Compare(ctx context.Context, entry, exit domain.Position, stops []domain.Position) *domain.Comparison {
	results := make([]domain.AlgorithmResult, len(o.solvers))

	var g errgroup.Group
	for i, s := range o.solvers {
		g.Go(func() error {
			results[i] = o.runSolver(ctx, s, entry, exit, stops)
			return nil
		})
	}
	_ = g.Wait()

	best, worst := ScoreResults(results)
	rec := o.byAlg[o.opts.Selector.Select(len(stops))].Info()

	log.Printf("req_id=%s op=compare stops=%d recommended=%s best=%d worst=%d",
		obs.RequestID(ctx), len(stops), rec.Algorithm, best, worst)

	return &domain.Comparison{
		Results:              results,
		RecommendedAlgorithm: string(rec.Algorithm),
		RecommendedName:      rec.Name,
		PartCount:            len(stops),
		BestDistance:         best,
		WorstDistance:        worst,
	}
}

func (o *Optimizer) runSolver(
	ctx context.Context,
	s PathSolver,
	entry, exit domain.Position,
	stops []domain.Position,
) (res domain.AlgorithmResult) {
	info := s.Info()
	res = domain.AlgorithmResult{
		Algorithm:           string(info.Algorithm),
		Name:                info.Name,
		TimeComplexity:      info.TimeComplexity,
		TheoreticalAccuracy: info.Accuracy,
	}

	var err error
	defer obs.Time(ctx, "compare."+string(info.Algorithm))(&err)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", info.Algorithm, r)
		}
		if err != nil {
			res.Err = err
			res.TotalDistance = domain.FailedDistance
			res.Duration = 0
			res.Route = []domain.Position{}
		}
	}()

	start := time.Now()
	path, err := s.Solve(entry, exit, stops)
	res.Duration = time.Since(start)
	if err != nil {
		return res
	}

	res.Route = path
	res.TotalDistance = o.opts.Layout.PathDistance(path)
	return res
}

// ScoreResults fills ActualAccuracy and IsOptimal of every successful result
// relative to the minimum successful distance, and returns that minimum and
// the maximum. Both are FailedDistance when nothing succeeded.
func ScoreResults(results []domain.AlgorithmResult) (best, worst int) {
	best, worst = domain.FailedDistance, domain.FailedDistance
	for _, r := range results {
		if r.Failed() {
			continue
		}
		if best == domain.FailedDistance || r.TotalDistance < best {
			best = r.TotalDistance
		}
		if r.TotalDistance > worst {
			worst = r.TotalDistance
		}
	}

	for i := range results {
		r := &results[i]
		if r.Failed() {
			r.ActualAccuracy = 0
			r.IsOptimal = false
			continue
		}
		r.IsOptimal = r.TotalDistance == best
		r.ActualAccuracy = accuracy(best, r.TotalDistance)
	}

	return best, worst
}

func accuracy(best, distance int) float64 {
	if distance == 0 {
		return 100
	}
	return math.Round(float64(best)/float64(distance)*100*100) / 100
}
