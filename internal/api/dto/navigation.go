package dto

import (
	"github.com/samber/lo"

	"pick-route-service/internal/domain"
)

type NavigationRequest struct {
	OrderNumbers []string `json:"order_numbers"`
	Algorithm    string   `json:"algorithm,omitempty"`
	Weighted     bool     `json:"weighted,omitempty"`
}

type PickItemResponse struct {
	PartID      int64   `json:"part_id"`
	PartName    string  `json:"part_name"`
	OrderNumber string  `json:"order_number"`
	WeightKg    float64 `json:"weight_kg,omitempty"`
}

type RouteStepResponse struct {
	Sequence             int                `json:"sequence"`
	Location             string             `json:"location"`
	Description          string             `json:"description"`
	OrderNumber          string             `json:"order_number,omitempty"`
	PartID               *int64             `json:"part_id,omitempty"`
	Items                []PickItemResponse `json:"items,omitempty"`
	DistanceFromPrevious int                `json:"distance_from_previous"`
	CumulativeDistance   int                `json:"cumulative_distance"`
}

type NavigationResponse struct {
	Algorithm            string              `json:"algorithm"`
	OptimizedRoute       []RouteStepResponse `json:"optimized_route"`
	TotalDistance        int                 `json:"total_distance"`
	EstimatedTimeSeconds int                 `json:"estimated_time_seconds"`
	WalkingTimeSeconds   int                 `json:"walking_time_seconds"`
	PickingTimeSeconds   int                 `json:"picking_time_seconds"`
	BufferTimeSeconds    int                 `json:"buffer_time_seconds"`
	ExecutionTimeMs      int64               `json:"execution_time_ms"`
}

func FromRoute(r *domain.Route) NavigationResponse {
	steps := lo.Map(r.Steps, func(s domain.RouteStep, _ int) RouteStepResponse {
		return RouteStepResponse{
			Sequence:             s.Sequence,
			Location:             s.Position.Code,
			Description:          s.Description,
			OrderNumber:          s.OrderNumber,
			PartID:               s.PartID,
			Items:                lo.Map(s.Items, toPickItem),
			DistanceFromPrevious: s.DistanceFromPrevious,
			CumulativeDistance:   s.CumulativeDistance,
		}
	})

	return NavigationResponse{
		Algorithm:            r.Algorithm,
		OptimizedRoute:       steps,
		TotalDistance:        r.TotalDistance,
		EstimatedTimeSeconds: r.EstimatedSeconds,
		WalkingTimeSeconds:   r.WalkingSeconds,
		PickingTimeSeconds:   r.PickingSeconds,
		BufferTimeSeconds:    r.BufferSeconds,
		ExecutionTimeMs:      r.ExecutionTime.Milliseconds(),
	}
}

func toPickItem(p domain.PartLocation, _ int) PickItemResponse {
	return PickItemResponse{
		PartID:      p.PartID,
		PartName:    p.PartName,
		OrderNumber: p.OrderNumber,
		WeightKg:    p.WeightKg,
	}
}
