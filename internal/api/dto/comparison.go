package dto

import (
	"github.com/samber/lo"

	"pick-route-service/internal/domain"
)

type AlgorithmResultResponse struct {
	Algorithm           string   `json:"algorithm"`
	AlgorithmName       string   `json:"algorithm_name"`
	TotalDistance       int      `json:"total_distance"`
	ExecutionTimeMs     int64    `json:"execution_time_ms"`
	Route               []string `json:"route"`
	TimeComplexity      string   `json:"time_complexity"`
	TheoreticalAccuracy string   `json:"theoretical_accuracy"`
	ActualAccuracy      float64  `json:"actual_accuracy"`
	IsOptimal           bool     `json:"is_optimal"`
	Error               string   `json:"error,omitempty"`
}

type ComparisonResponse struct {
	Results              []AlgorithmResultResponse `json:"results"`
	RecommendedAlgorithm string                    `json:"recommended_algorithm"`
	RecommendedName      string                    `json:"recommended_name"`
	PartCount            int                       `json:"part_count"`
	BestDistance         int                       `json:"best_distance"`
	WorstDistance        int                       `json:"worst_distance"`
}

func FromComparison(c *domain.Comparison) ComparisonResponse {
	results := lo.Map(c.Results, func(r domain.AlgorithmResult, _ int) AlgorithmResultResponse {
		out := AlgorithmResultResponse{
			Algorithm:           r.Algorithm,
			AlgorithmName:       r.Name,
			TotalDistance:       r.TotalDistance,
			ExecutionTimeMs:     r.Duration.Milliseconds(),
			Route:               lo.Map(r.Route, func(p domain.Position, _ int) string { return p.Code }),
			TimeComplexity:      r.TimeComplexity,
			TheoreticalAccuracy: r.TheoreticalAccuracy,
			ActualAccuracy:      r.ActualAccuracy,
			IsOptimal:           r.IsOptimal,
		}
		if r.Err != nil {
			out.Error = r.Err.Error()
		}
		return out
	})

	return ComparisonResponse{
		Results:              results,
		RecommendedAlgorithm: c.RecommendedAlgorithm,
		RecommendedName:      c.RecommendedName,
		PartCount:            c.PartCount,
		BestDistance:         c.BestDistance,
		WorstDistance:        c.WorstDistance,
	}
}
