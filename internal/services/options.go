package services

import (
	"errors"
	"fmt"

	"pick-route-service/internal/domain"
)

// ErrInvalidOptions is returned by Options.Validate.
var ErrInvalidOptions = errors.New("invalid optimizer options")

// heldKarpHardLimit bounds the DP table (n·2ⁿ cells) regardless of configuration.
const heldKarpHardLimit = 22

// Thresholds map a stop count to a strategy. A count at or below
// HeldKarpMax picks Held-Karp, then Branch-and-Bound, then 2-opt; anything
// above TwoOptMax uses nearest neighbor.
type Thresholds struct {
	HeldKarpMax       int
	BranchAndBoundMax int
	TwoOptMax         int
}

// TimeModel turns a route into an estimated duration.
type TimeModel struct {
	SecondsPerUnit float64
	SecondsPerPick int
	BufferSeconds  int
}

// Options configures every strategy, the selector and the route assembler.
type Options struct {
	Layout                      domain.Layout
	Selector                    Thresholds
	HeldKarpCeiling             int
	BranchAndBoundCeiling       int
	TwoOptMaxIterations         int
	WeightedTwoOptMaxIterations int
	InsertionMaxPasses          int
	InsertionSlack              int
	Time                        TimeModel
}

func DefaultOptions() Options {
	return Options{
		Layout: domain.DefaultLayout(),
		Selector: Thresholds{
			HeldKarpMax:       8,
			BranchAndBoundMax: 12,
			TwoOptMax:         30,
		},
		HeldKarpCeiling:             20,
		BranchAndBoundCeiling:       15,
		TwoOptMaxIterations:         1000,
		WeightedTwoOptMaxIterations: 800,
		InsertionMaxPasses:          10,
		InsertionSlack:              3,
		Time: TimeModel{
			SecondsPerUnit: 1.5,
			SecondsPerPick: 8,
			BufferSeconds:  10,
		},
	}
}

// Validate checks caps and ceilings. Selector bands for the exact strategies
// must stay inside their ceilings, otherwise the selector would nominally
// pick an exact strategy that silently falls back to 2-opt.
func (o Options) Validate() error {
	switch {
	case o.HeldKarpCeiling < 1 || o.HeldKarpCeiling > heldKarpHardLimit:
		return fmt.Errorf("held-karp ceiling %d outside 1-%d: %w", o.HeldKarpCeiling, heldKarpHardLimit, ErrInvalidOptions)
	case o.BranchAndBoundCeiling < 1:
		return fmt.Errorf("branch-and-bound ceiling %d must be positive: %w", o.BranchAndBoundCeiling, ErrInvalidOptions)
	case o.TwoOptMaxIterations < 1 || o.WeightedTwoOptMaxIterations < 1:
		return fmt.Errorf("2-opt iteration caps must be positive: %w", ErrInvalidOptions)
	case o.InsertionMaxPasses < 0 || o.InsertionSlack < 0:
		return fmt.Errorf("insertion pass settings must not be negative: %w", ErrInvalidOptions)
	case o.Layout.RowSwitchPenalty < 0 || o.Layout.BlockRowSwitchPenalty < 0 || o.Layout.LinePenalty < 0:
		return fmt.Errorf("layout penalties must not be negative: %w", ErrInvalidOptions)
	case o.Time.SecondsPerUnit < 0 || o.Time.SecondsPerPick < 0 || o.Time.BufferSeconds < 0:
		return fmt.Errorf("time model coefficients must not be negative: %w", ErrInvalidOptions)
	}

	s := o.Selector
	if s.HeldKarpMax < 0 || s.BranchAndBoundMax < s.HeldKarpMax || s.TwoOptMax < s.BranchAndBoundMax {
		return fmt.Errorf("selector thresholds %+v must be non-negative and ascending: %w", s, ErrInvalidOptions)
	}
	if s.HeldKarpMax > o.HeldKarpCeiling {
		return fmt.Errorf("selector held-karp band %d exceeds ceiling %d: %w", s.HeldKarpMax, o.HeldKarpCeiling, ErrInvalidOptions)
	}
	if s.BranchAndBoundMax > o.BranchAndBoundCeiling {
		return fmt.Errorf("selector branch-and-bound band %d exceeds ceiling %d: %w", s.BranchAndBoundMax, o.BranchAndBoundCeiling, ErrInvalidOptions)
	}

	return nil
}
