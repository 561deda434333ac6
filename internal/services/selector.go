package services

// Select maps a stop count to the strategy with the best speed/quality
// trade-off for that size.
func (t Thresholds) Select(count int) Algorithm {
	switch {
	case count <= t.HeldKarpMax:
		return HeldKarpAlgorithm
	case count <= t.BranchAndBoundMax:
		return BranchAndBoundAlgorithm
	case count <= t.TwoOptMax:
		return TwoOptAlgorithm
	default:
		return NearestNeighborAlgorithm
	}
}

// SelectWeighted is Select for weighted routing, which only has heuristics.
func (t Thresholds) SelectWeighted(count int) Algorithm {
	if count <= t.TwoOptMax {
		return WeightedTwoOptAlgorithm
	}
	return WeightedNearestNeighborAlgorithm
}
