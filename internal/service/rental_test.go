package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"car-rental-backend/internal/config"
	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
	"car-rental-backend/internal/service"
)

func testRules() config.RulesConfig {
	return config.RulesConfig{
		DailyPriceCeilingCents: 1_000_000,
		MaxRentalDays:          365,
		EmailMaxLength:         255,
		NameMinLength:          2,
		NameMaxLength:          50,
	}
}

type rentalFixture struct {
	rentalRepo   *MockRentalRepo
	vehicleRepo  *MockVehicleRepo
	customerRepo *MockCustomerRepo
	svc          service.RentalService
}

func newRentalFixture() *rentalFixture {
	rentalRepo := new(MockRentalRepo)
	vehicleRepo := new(MockVehicleRepo)
	customerRepo := new(MockCustomerRepo)

	tx := stubTxRunner{r: repository.Registry{
		Vehicles:  vehicleRepo,
		Customers: customerRepo,
		Rentals:   rentalRepo,
	}}

	return &rentalFixture{
		rentalRepo:   rentalRepo,
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		svc:          service.NewRentalService(tx, rentalRepo, vehicleRepo, customerRepo, nil, testRules()),
	}
}

func TestRentalService_RentVehicle(t *testing.T) {
	ctx := context.Background()
	today := domain.DateOnly(time.Now())
	start := today.AddDate(0, 0, 1)
	planned := start.AddDate(0, 0, 3)

	customer := &domain.Customer{ID: 1, FirstName: "Jan", LastName: "Kowalski", Email: "jan@example.com"}
	vehicle := &domain.Vehicle{ID: 2, Brand: "Toyota", Model: "Corolla", DailyPriceCents: 10_000, Status: domain.VehicleStatusAvailable}

	t.Run("Success", func(t *testing.T) {
		f := newRentalFixture()
		f.customerRepo.On("GetByID", ctx, int64(1)).Return(customer, nil)
		f.vehicleRepo.On("GetByID", ctx, int64(2)).Return(vehicle, nil)
		f.rentalRepo.On("ExistsByCustomerAndStatus", ctx, int64(1), domain.RentalStatusOverdue).Return(false, nil)
		f.rentalRepo.On("ExistsByVehicleAndStatus", ctx, int64(2), domain.RentalStatusActive).Return(false, nil)
		f.rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.vehicleRepo.On("UpdateStatusFrom", ctx, int64(2), domain.VehicleStatusAvailable, domain.VehicleStatusRented).Return(true, nil)

		res, err := f.svc.RentVehicle(ctx, 1, 2, start, planned)
		assert.NoError(t, err)
		assert.NotNil(t, res)
		assert.Equal(t, domain.RentalStatusActive, res.Status)
		assert.Equal(t, int64(30_000), res.TotalCostCents) // 3 days * 100.00
		assert.Equal(t, start, res.StartDate)
		assert.Equal(t, planned, res.PlannedReturnDate)
	})

	t.Run("Single Day Minimum Charge", func(t *testing.T) {
		f := newRentalFixture()
		f.customerRepo.On("GetByID", ctx, int64(1)).Return(customer, nil)
		f.vehicleRepo.On("GetByID", ctx, int64(2)).Return(vehicle, nil)
		f.rentalRepo.On("ExistsByCustomerAndStatus", ctx, int64(1), domain.RentalStatusOverdue).Return(false, nil)
		f.rentalRepo.On("ExistsByVehicleAndStatus", ctx, int64(2), domain.RentalStatusActive).Return(false, nil)
		f.rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.vehicleRepo.On("UpdateStatusFrom", ctx, int64(2), domain.VehicleStatusAvailable, domain.VehicleStatusRented).Return(true, nil)

		res, err := f.svc.RentVehicle(ctx, 1, 2, start, start.AddDate(0, 0, 1))
		assert.NoError(t, err)
		assert.Equal(t, int64(10_000), res.TotalCostCents)
	})

	t.Run("Vehicle Not Available", func(t *testing.T) {
		f := newRentalFixture()
		rented := &domain.Vehicle{ID: 2, Brand: "Toyota", Model: "Corolla", DailyPriceCents: 10_000, Status: domain.VehicleStatusRented}
		f.customerRepo.On("GetByID", ctx, int64(1)).Return(customer, nil)
		f.vehicleRepo.On("GetByID", ctx, int64(2)).Return(rented, nil)
		f.rentalRepo.On("ExistsByCustomerAndStatus", ctx, int64(1), domain.RentalStatusOverdue).Return(false, nil)

		res, err := f.svc.RentVehicle(ctx, 1, 2, start, planned)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
		f.rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Vehicle Has Active Rental", func(t *testing.T) {
		f := newRentalFixture()
		f.customerRepo.On("GetByID", ctx, int64(1)).Return(customer, nil)
		f.vehicleRepo.On("GetByID", ctx, int64(2)).Return(vehicle, nil)
		f.rentalRepo.On("ExistsByCustomerAndStatus", ctx, int64(1), domain.RentalStatusOverdue).Return(false, nil)
		f.rentalRepo.On("ExistsByVehicleAndStatus", ctx, int64(2), domain.RentalStatusActive).Return(true, nil)

		res, err := f.svc.RentVehicle(ctx, 1, 2, start, planned)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
		f.rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Loses Status Swap Race", func(t *testing.T) {
		f := newRentalFixture()
		f.customerRepo.On("GetByID", ctx, int64(1)).Return(customer, nil)
		f.vehicleRepo.On("GetByID", ctx, int64(2)).Return(vehicle, nil)
		f.rentalRepo.On("ExistsByCustomerAndStatus", ctx, int64(1), domain.RentalStatusOverdue).Return(false, nil)
		f.rentalRepo.On("ExistsByVehicleAndStatus", ctx, int64(2), domain.RentalStatusActive).Return(false, nil)
		f.rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.vehicleRepo.On("UpdateStatusFrom", ctx, int64(2), domain.VehicleStatusAvailable, domain.VehicleStatusRented).Return(false, nil)

		res, err := f.svc.RentVehicle(ctx, 1, 2, start, planned)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	})

	t.Run("Customer With Overdue Rental", func(t *testing.T) {
		f := newRentalFixture()
		f.customerRepo.On("GetByID", ctx, int64(1)).Return(customer, nil)
		f.vehicleRepo.On("GetByID", ctx, int64(2)).Return(vehicle, nil)
		f.rentalRepo.On("ExistsByCustomerAndStatus", ctx, int64(1), domain.RentalStatusOverdue).Return(true, nil)

		res, err := f.svc.RentVehicle(ctx, 1, 2, start, planned)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	})

	t.Run("Unknown Customer", func(t *testing.T) {
		f := newRentalFixture()
		f.customerRepo.On("GetByID", ctx, int64(9)).Return(nil, domain.NotFoundf("customer 9 not found"))

		res, err := f.svc.RentVehicle(ctx, 9, 2, start, planned)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindNotFound))
	})

	t.Run("Start Date In The Past", func(t *testing.T) {
		f := newRentalFixture()

		res, err := f.svc.RentVehicle(ctx, 1, 2, today.AddDate(0, 0, -1), planned)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})

	t.Run("Return Not After Start", func(t *testing.T) {
		f := newRentalFixture()

		res, err := f.svc.RentVehicle(ctx, 1, 2, start, start)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})

	t.Run("Exceeds Maximum Period", func(t *testing.T) {
		f := newRentalFixture()

		res, err := f.svc.RentVehicle(ctx, 1, 2, start, start.AddDate(0, 0, 366))
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})

	t.Run("Missing IDs", func(t *testing.T) {
		f := newRentalFixture()

		_, err := f.svc.RentVehicle(ctx, 0, 2, start, planned)
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
		_, err = f.svc.RentVehicle(ctx, 1, 0, start, planned)
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})
}

func TestRentalService_ReturnVehicle(t *testing.T) {
	ctx := context.Background()
	start := domain.DateOnly(time.Now()).AddDate(0, 0, -5)
	planned := start.AddDate(0, 0, 3)

	newActiveRental := func() *domain.Rental {
		return &domain.Rental{
			ID:                7,
			CustomerID:        1,
			VehicleID:         2,
			StartDate:         start,
			PlannedReturnDate: planned,
			TotalCostCents:    30_000,
			Status:            domain.RentalStatusActive,
		}
	}

	t.Run("Completes With Original Cost", func(t *testing.T) {
		f := newRentalFixture()
		rental := newActiveRental()
		f.rentalRepo.On("GetByID", ctx, int64(7)).Return(rental, nil)
		f.rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.vehicleRepo.On("UpdateStatus", ctx, int64(2), domain.VehicleStatusAvailable).Return(nil)

		res, err := f.svc.ReturnVehicle(ctx, 7, planned)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, res.Status)
		assert.Equal(t, int64(30_000), res.TotalCostCents)
		assert.NotNil(t, res.ReturnDate)
		assert.Equal(t, planned, *res.ReturnDate)
	})

	t.Run("Late Return Keeps Quoted Cost", func(t *testing.T) {
		f := newRentalFixture()
		rental := newActiveRental()
		f.rentalRepo.On("GetByID", ctx, int64(7)).Return(rental, nil)
		f.rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.vehicleRepo.On("UpdateStatus", ctx, int64(2), domain.VehicleStatusAvailable).Return(nil)

		res, err := f.svc.ReturnVehicle(ctx, 7, planned.AddDate(0, 0, 4))
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, res.Status)
		assert.Equal(t, int64(30_000), res.TotalCostCents)
	})

	t.Run("Return Before Start Cancels And Zeroes Cost", func(t *testing.T) {
		f := newRentalFixture()
		rental := newActiveRental()
		f.rentalRepo.On("GetByID", ctx, int64(7)).Return(rental, nil)
		f.rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.vehicleRepo.On("UpdateStatus", ctx, int64(2), domain.VehicleStatusAvailable).Return(nil)

		res, err := f.svc.ReturnVehicle(ctx, 7, start.AddDate(0, 0, -1))
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, res.Status)
		assert.Equal(t, int64(0), res.TotalCostCents)
	})

	t.Run("Overdue Rental Can Be Returned", func(t *testing.T) {
		f := newRentalFixture()
		rental := newActiveRental()
		rental.Status = domain.RentalStatusOverdue
		f.rentalRepo.On("GetByID", ctx, int64(7)).Return(rental, nil)
		f.rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.vehicleRepo.On("UpdateStatus", ctx, int64(2), domain.VehicleStatusAvailable).Return(nil)

		res, err := f.svc.ReturnVehicle(ctx, 7, planned.AddDate(0, 0, 2))
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCompleted, res.Status)
	})

	t.Run("Completed Rental Cannot Be Returned Again", func(t *testing.T) {
		f := newRentalFixture()
		rental := newActiveRental()
		rental.Status = domain.RentalStatusCompleted
		f.rentalRepo.On("GetByID", ctx, int64(7)).Return(rental, nil)

		res, err := f.svc.ReturnVehicle(ctx, 7, planned)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
		f.rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Missing Return Date", func(t *testing.T) {
		f := newRentalFixture()

		res, err := f.svc.ReturnVehicle(ctx, 7, time.Time{})
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})
}

func TestRentalService_CancelRental(t *testing.T) {
	ctx := context.Background()
	today := domain.DateOnly(time.Now())

	t.Run("Cancels Rental That Has Not Begun", func(t *testing.T) {
		f := newRentalFixture()
		rental := &domain.Rental{
			ID:                7,
			VehicleID:         2,
			StartDate:         today.AddDate(0, 0, 2),
			PlannedReturnDate: today.AddDate(0, 0, 5),
			TotalCostCents:    30_000,
			Status:            domain.RentalStatusActive,
		}
		f.rentalRepo.On("GetByID", ctx, int64(7)).Return(rental, nil)
		f.rentalRepo.On("Update", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)
		f.vehicleRepo.On("UpdateStatus", ctx, int64(2), domain.VehicleStatusAvailable).Return(nil)

		res, err := f.svc.CancelRental(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusCancelled, res.Status)
	})

	t.Run("Rejects Rental Already Under Way", func(t *testing.T) {
		f := newRentalFixture()
		rental := &domain.Rental{
			ID:                7,
			VehicleID:         2,
			StartDate:         today,
			PlannedReturnDate: today.AddDate(0, 0, 3),
			Status:            domain.RentalStatusActive,
		}
		f.rentalRepo.On("GetByID", ctx, int64(7)).Return(rental, nil)

		res, err := f.svc.CancelRental(ctx, 7)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
		f.rentalRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Rejects Non Active Rental", func(t *testing.T) {
		f := newRentalFixture()
		rental := &domain.Rental{
			ID:        7,
			VehicleID: 2,
			StartDate: today.AddDate(0, 0, 2),
			Status:    domain.RentalStatusCancelled,
		}
		f.rentalRepo.On("GetByID", ctx, int64(7)).Return(rental, nil)

		res, err := f.svc.CancelRental(ctx, 7)
		assert.Nil(t, res)
		assert.True(t, domain.IsKind(err, domain.KindInvalidState))
	})
}

func TestRentalService_FindByStartDateRange(t *testing.T) {
	ctx := context.Background()

	t.Run("Normalizes Dates Before Querying", func(t *testing.T) {
		f := newRentalFixture()
		from := time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 31, 7, 0, 0, 0, time.UTC)
		f.rentalRepo.On("ListByStartDateRange", ctx, domain.DateOnly(from), domain.DateOnly(to)).Return([]domain.Rental{{ID: 7}}, nil)

		list, err := f.svc.FindByStartDateRange(ctx, from, to)
		assert.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("Rejects Inverted Range", func(t *testing.T) {
		f := newRentalFixture()

		_, err := f.svc.FindByStartDateRange(ctx, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
		assert.True(t, domain.IsKind(err, domain.KindInvalidInput))
	})
}

func TestRentalService_MarkOverdueRentals(t *testing.T) {
	ctx := context.Background()

	t.Run("Uses Yesterday As Cutoff", func(t *testing.T) {
		f := newRentalFixture()
		cutoff := domain.DateOnly(time.Now()).AddDate(0, 0, -1)
		f.rentalRepo.On("MarkOverdue", ctx, cutoff).Return(int64(3), nil)

		count, err := f.svc.MarkOverdueRentals(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Idempotent When Nothing To Mark", func(t *testing.T) {
		f := newRentalFixture()
		f.rentalRepo.On("MarkOverdue", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

		count, err := f.svc.MarkOverdueRentals(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
