package service

import (
	"context"
	"time"

	"car-rental-backend/internal/config"
	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

type rentalService struct {
	tx           repository.TxRunner
	rentalRepo   repository.RentalRepository
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
	lateFee      LateFeePolicy
	rules        config.RulesConfig
}

func NewRentalService(
	tx repository.TxRunner,
	rentalRepo repository.RentalRepository,
	vehicleRepo repository.VehicleRepository,
	customerRepo repository.CustomerRepository,
	lateFee LateFeePolicy,
	rules config.RulesConfig,
) RentalService {
	if lateFee == nil {
		lateFee = NoLateFee{}
	}
	return &rentalService{
		tx:           tx,
		rentalRepo:   rentalRepo,
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		lateFee:      lateFee,
		rules:        rules,
	}
}

// RentVehicle creates an ACTIVE rental and flips the vehicle to RENTED as
// one transaction. The availability check is performed twice on purpose:
// once against the vehicle status flag and once against the rental records,
// because the two are written separately and must never diverge.
func (s *rentalService) RentVehicle(ctx context.Context, customerID, vehicleID int64, startDate, plannedReturnDate time.Time) (*domain.Rental, error) {
	if err := validateRentalInput(customerID, vehicleID, startDate, plannedReturnDate); err != nil {
		return nil, err
	}

	start := domain.DateOnly(startDate)
	planned := domain.DateOnly(plannedReturnDate)
	today := domain.DateOnly(time.Now())

	if start.Before(today) {
		return nil, domain.InvalidInputf("rental start date cannot be in the past")
	}
	if !planned.After(start) {
		return nil, domain.InvalidInputf("planned return date must be later than the start date")
	}

	days := domain.DaysBetween(start, planned)
	if days > s.rules.MaxRentalDays {
		return nil, domain.InvalidInputf("maximum rental period is %d days", s.rules.MaxRentalDays)
	}

	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	overdue, err := s.rentalRepo.ExistsByCustomerAndStatus(ctx, customerID, domain.RentalStatusOverdue)
	if err != nil {
		return nil, err
	}
	if overdue {
		return nil, domain.InvalidStatef("customer %d cannot rent while holding overdue rentals", customerID)
	}

	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, domain.InvalidStatef("vehicle %d is not available for rental", vehicleID)
	}
	rented, err := s.rentalRepo.ExistsByVehicleAndStatus(ctx, vehicleID, domain.RentalStatusActive)
	if err != nil {
		return nil, err
	}
	if rented {
		return nil, domain.InvalidStatef("vehicle %d already has an active rental", vehicleID)
	}

	billedDays := days
	if billedDays < 1 {
		billedDays = 1
	}

	rental := &domain.Rental{
		CustomerID:        customerID,
		VehicleID:         vehicleID,
		StartDate:         start,
		PlannedReturnDate: planned,
		TotalCostCents:    vehicle.DailyPriceCents * billedDays,
		Status:            domain.RentalStatusActive,
	}

	err = s.tx.WithinTx(ctx, func(r repository.Registry) error {
		if err := r.Rentals.Create(ctx, rental); err != nil {
			return err
		}
		swapped, err := r.Vehicles.UpdateStatusFrom(ctx, vehicleID, domain.VehicleStatusAvailable, domain.VehicleStatusRented)
		if err != nil {
			return err
		}
		if !swapped {
			// A concurrent rent won the race between our check and the swap.
			return domain.InvalidStatef("vehicle %d is not available for rental", vehicleID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Created rental", "rental_id", rental.ID, "customer_id", customerID, "vehicle_id", vehicleID, "total_cost_cents", rental.TotalCostCents)
	return rental, nil
}

// ReturnVehicle finalizes a rental. A return dated before the rental even
// started is treated as a cancellation and nullifies the charge; any other
// return completes the rental with the cost as originally quoted, late or
// not. The vehicle is freed on both branches.
func (s *rentalService) ReturnVehicle(ctx context.Context, rentalID int64, returnDate time.Time) (*domain.Rental, error) {
	if returnDate.IsZero() {
		return nil, domain.InvalidInputf("return date is required")
	}

	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusActive && rental.Status != domain.RentalStatusOverdue {
		return nil, domain.InvalidStatef("rental %d is not active", rentalID)
	}

	ret := domain.DateOnly(returnDate)
	rental.ReturnDate = &ret

	if ret.Before(domain.DateOnly(rental.StartDate)) {
		rental.Status = domain.RentalStatusCancelled
		rental.TotalCostCents = 0
	} else {
		rental.Status = domain.RentalStatusCompleted
		if daysOverdue := domain.DaysBetween(rental.PlannedReturnDate, ret); daysOverdue > 0 {
			rental.TotalCostCents += s.lateFee.SurchargeCents(rental, daysOverdue)
		}
	}

	err = s.tx.WithinTx(ctx, func(r repository.Registry) error {
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return err
		}
		return r.Vehicles.UpdateStatus(ctx, rental.VehicleID, domain.VehicleStatusAvailable)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Returned vehicle", "rental_id", rental.ID, "vehicle_id", rental.VehicleID, "status", rental.Status)
	return rental, nil
}

// CancelRental cancels a rental that has not begun yet and frees the
// vehicle. Rentals already under way must go through ReturnVehicle.
func (s *rentalService) CancelRental(ctx context.Context, rentalID int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, domain.InvalidStatef("only active rentals can be cancelled")
	}
	if !domain.DateOnly(rental.StartDate).After(domain.DateOnly(time.Now())) {
		return nil, domain.InvalidStatef("cannot cancel a rental that has already begun")
	}

	rental.Status = domain.RentalStatusCancelled

	err = s.tx.WithinTx(ctx, func(r repository.Registry) error {
		if err := r.Rentals.Update(ctx, rental); err != nil {
			return err
		}
		return r.Vehicles.UpdateStatus(ctx, rental.VehicleID, domain.VehicleStatusAvailable)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cancelled rental", "rental_id", rental.ID, "vehicle_id", rental.VehicleID)
	return rental, nil
}

func (s *rentalService) Get(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) List(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx)
}

func (s *rentalService) FindActive(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.ListByStatus(ctx, domain.RentalStatusActive)
}

func (s *rentalService) FindOverdue(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.ListByStatus(ctx, domain.RentalStatusOverdue)
}

func (s *rentalService) FindByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	return s.rentalRepo.ListByStatus(ctx, status)
}

func (s *rentalService) FindByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	return s.rentalRepo.ListByCustomer(ctx, customerID)
}

func (s *rentalService) FindByVehicle(ctx context.Context, vehicleID int64) ([]domain.Rental, error) {
	return s.rentalRepo.ListByVehicle(ctx, vehicleID)
}

func (s *rentalService) FindByStartDateRange(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	if from.IsZero() || to.IsZero() {
		return nil, domain.InvalidInputf("range start and end dates are required")
	}
	if to.Before(from) {
		return nil, domain.InvalidInputf("range end date cannot precede the start date")
	}
	return s.rentalRepo.ListByStartDateRange(ctx, domain.DateOnly(from), domain.DateOnly(to))
}

func (s *rentalService) FindEndingToday(ctx context.Context) ([]domain.Rental, error) {
	return s.rentalRepo.ListEndingOn(ctx, domain.DateOnly(time.Now()))
}

// MarkOverdueRentals flips every ACTIVE rental at least one full day past
// its planned return date to OVERDUE. The sweep is a single conditional
// update, so re-running it without new stragglers is a no-op. Vehicle
// status is untouched: an overdue car is still out.
func (s *rentalService) MarkOverdueRentals(ctx context.Context) (int64, error) {
	cutoff := domain.DateOnly(time.Now()).AddDate(0, 0, -1)
	count, err := s.rentalRepo.MarkOverdue(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Marked rentals as overdue", "count", count, "cutoff", cutoff.Format("2006-01-02"))
	}
	return count, nil
}

func validateRentalInput(customerID, vehicleID int64, startDate, plannedReturnDate time.Time) error {
	if customerID <= 0 {
		return domain.InvalidInputf("customer id is required")
	}
	if vehicleID <= 0 {
		return domain.InvalidInputf("vehicle id is required")
	}
	if startDate.IsZero() {
		return domain.InvalidInputf("rental start date is required")
	}
	if plannedReturnDate.IsZero() {
		return domain.InvalidInputf("planned return date is required")
	}
	return nil
}
