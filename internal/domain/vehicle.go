package domain

// VehicleStatus holds the pricing and administrative availability of a vehicle.
// Availability does not say which dates are booked; orders do.
type VehicleStatus struct {
	VehicleID       int32    `json:"vehicle_id"`
	FinalPrice      float64  `json:"final_price"`
	DiscountedPrice *float64 `json:"discounted_price,omitempty"`
	Availability    bool     `json:"availability"`
}
