package services

import (
	"fmt"
	"log"

	"pick-route-service/internal/domain"
)

// Optimizer owns one instance of every strategy and the selection policy.
// It holds no per-request state and is safe for concurrent use.
type Optimizer struct {
	opts     Options
	solvers  []PathSolver // comparison order
	byAlg    map[Algorithm]PathSolver
	weighted map[Algorithm]WeightedSolver
}

func NewOptimizer(opts Options) (*Optimizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new optimizer: %w", err)
	}

	o := &Optimizer{
		opts:     opts,
		byAlg:    make(map[Algorithm]PathSolver),
		weighted: make(map[Algorithm]WeightedSolver),
	}
	o.register(
		NewNearestNeighbor(opts),
		NewTwoOpt(opts),
		NewHeldKarp(opts),
		NewFloydWarshallNN(opts),
		NewBranchAndBound(opts),
	)
	for _, w := range []WeightedSolver{NewWeightedNearestNeighbor(opts), NewWeightedTwoOpt(opts)} {
		o.weighted[w.Info().Algorithm] = w
	}

	return o, nil
}

func (o *Optimizer) register(solvers ...PathSolver) {
	for _, s := range solvers {
		o.solvers = append(o.solvers, s)
		o.byAlg[s.Info().Algorithm] = s
	}
}

func (o *Optimizer) Options() Options { return o.opts }

// Solvers returns the registered strategies in comparison order.
func (o *Optimizer) Solvers() []PathSolver {
	return append([]PathSolver(nil), o.solvers...)
}

func (o *Optimizer) Solver(alg Algorithm) (PathSolver, error) {
	s, ok := o.byAlg[alg]
	if !ok {
		return nil, fmt.Errorf("solver %q: %w", alg, ErrUnknownAlgorithm)
	}
	return s, nil
}

func (o *Optimizer) WeightedSolver(alg Algorithm) (WeightedSolver, error) {
	s, ok := o.weighted[alg]
	if !ok {
		return nil, fmt.Errorf("weighted solver %q: %w", alg, ErrUnknownAlgorithm)
	}
	return s, nil
}

// Select returns the strategy the selector picks for count stops.
func (o *Optimizer) Select(count int) PathSolver {
	alg := o.opts.Selector.Select(count)
	log.Printf("op=select stops=%d algorithm=%s", count, alg)
	return o.byAlg[alg]
}

// Solve runs the strategy chosen by the selector.
func (o *Optimizer) Solve(entry, exit domain.Position, stops []domain.Position) ([]domain.Position, AlgorithmInfo, error) {
	s := o.Select(len(stops))
	path, err := s.Solve(entry, exit, stops)
	if err != nil {
		return nil, s.Info(), fmt.Errorf("solve with %s: %w", s.Info().Algorithm, err)
	}
	return path, s.Info(), nil
}
