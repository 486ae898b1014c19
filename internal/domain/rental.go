package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "ACTIVE"
	RentalStatusCompleted RentalStatus = "COMPLETED"
	RentalStatusCancelled RentalStatus = "CANCELLED"
	RentalStatusOverdue   RentalStatus = "OVERDUE"
)

// Rental references its customer and vehicle by id only; any "rentals of a
// vehicle" view is a query, not a stored back-reference.
//
// TotalCostCents is frozen at creation (daily price snapshot × billed days)
// and changes only when an early return cancels the rental.
type Rental struct {
	ID                int64        `json:"id"`
	CustomerID        int64        `json:"customer_id"`
	VehicleID         int64        `json:"vehicle_id"`
	StartDate         time.Time    `json:"start_date"`
	PlannedReturnDate time.Time    `json:"planned_return_date"`
	ReturnDate        *time.Time   `json:"return_date,omitempty"`
	TotalCostCents    int64        `json:"total_cost_cents"`
	Status            RentalStatus `json:"status"`
	CreatedOn         time.Time    `json:"created_on"`
	UpdatedOn         time.Time    `json:"updated_on"`
}

// VehicleRentalCount is a ranking row for the most-rented-vehicles report.
type VehicleRentalCount struct {
	VehicleID   int64 `json:"vehicle_id"`
	RentalCount int64 `json:"rental_count"`
}

// CustomerRentalCount is a ranking row for the most-active-customers report.
type CustomerRentalCount struct {
	CustomerID  int64 `json:"customer_id"`
	RentalCount int64 `json:"rental_count"`
}

// DateOnly truncates t to a calendar date in UTC. All rental dates are
// date-granular.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b. Negative when b
// precedes a.
func DaysBetween(a, b time.Time) int64 {
	return int64(DateOnly(b).Sub(DateOnly(a)) / (24 * time.Hour))
}
