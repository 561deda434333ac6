package domain

import "time"

// Represents a single step of a pick route.
// Description, OrderNumber and PartID come from the first item stored at the
// step's position; Items lists every item stored there in input order.
type RouteStep struct {
	Sequence             int
	Position             Position
	Description          string
	OrderNumber          string
	PartID               *int64
	Items                []PartLocation
	DistanceFromPrevious int
	CumulativeDistance   int
}

// Represents the assembled pick route for one or more combined orders.
// It is the reportable form of a solver's ordered position list.
type Route struct {
	Algorithm        string
	Steps            []RouteStep
	TotalDistance    int
	WalkingSeconds   int
	PickingSeconds   int
	BufferSeconds    int
	EstimatedSeconds int
	ExecutionTime    time.Duration
}

// Positions returns the visiting order of the route.
func (r *Route) Positions() []Position {
	out := make([]Position, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Position
	}
	return out
}
