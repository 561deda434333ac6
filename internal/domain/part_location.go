package domain

// PartLocation is one ordered item and the shelf location it is stored at.
// Several items may share a Location.
type PartLocation struct {
	Location    string
	PartID      int64
	PartName    string
	OrderNumber string
	WeightKg    float64
}
