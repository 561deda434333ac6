package domain

import "time"

// FailedDistance marks an AlgorithmResult whose strategy did not produce a route.
const FailedDistance = -1

// Outcome of one strategy inside a comparison run.
// ActualAccuracy and IsOptimal are relative to the best distance found in
// the same run, not to the strategy's theoretical label.
type AlgorithmResult struct {
	Algorithm           string
	Name                string
	TotalDistance       int
	Duration            time.Duration
	Route               []Position
	TimeComplexity      string
	TheoreticalAccuracy string
	ActualAccuracy      float64
	IsOptimal           bool
	Err                 error
}

// Failed reports whether the strategy errored.
func (r AlgorithmResult) Failed() bool { return r.Err != nil }

// Comparison is the report produced by running every strategy on one stop set.
type Comparison struct {
	Results              []AlgorithmResult
	RecommendedAlgorithm string
	RecommendedName      string
	PartCount            int
	BestDistance         int
	WorstDistance        int
}
