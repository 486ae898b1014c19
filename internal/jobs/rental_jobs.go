package jobs

import (
	"context"

	"car-rental-backend/internal/logger"
)

// MarkOverdueRentals reclassifies active rentals that are at least one full
// day past their planned return date. It delegates to the rental service so
// the sweep uses the same conditional update as interactive calls.
func (jr *JobRunner) MarkOverdueRentals() {
	jr.runWithRecovery("MarkOverdueRentals", func() {
		ctx := context.Background()

		count, err := jr.rentals.MarkOverdueRentals(ctx)
		if err != nil {
			logger.Error("Failed to mark overdue rentals", "error", err)
			return
		}
		logger.Info("Overdue sweep finished", "marked", count)
	})
}

// RentalsDueToday logs the rentals whose planned return date is today, as an
// operational reminder feed.
func (jr *JobRunner) RentalsDueToday() {
	jr.runWithRecovery("RentalsDueToday", func() {
		ctx := context.Background()

		rentals, err := jr.rentals.FindEndingToday(ctx)
		if err != nil {
			logger.Error("Failed to list rentals due today", "error", err)
			return
		}
		logger.Info("Rentals due today", "count", len(rentals))
		for _, rt := range rentals {
			logger.Debug("Rental due today",
				"rental_id", rt.ID,
				"customer_id", rt.CustomerID,
				"vehicle_id", rt.VehicleID,
				"planned_return_date", rt.PlannedReturnDate.Format("2006-01-02"))
		}
	})
}
