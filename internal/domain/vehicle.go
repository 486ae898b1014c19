package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "AVAILABLE"
	VehicleStatusRented    VehicleStatus = "RENTED"
)

// Vehicle is a rentable car. Status is RENTED exactly while one active
// rental references the vehicle; the rental engine owns that invariant.
type Vehicle struct {
	ID              int64         `json:"id"`
	Brand           string        `json:"brand"`
	Model           string        `json:"model"`
	DailyPriceCents int64         `json:"daily_price_cents"`
	Status          VehicleStatus `json:"status"`
	CreatedOn       time.Time     `json:"created_on"`
	UpdatedOn       time.Time     `json:"updated_on"`
}
