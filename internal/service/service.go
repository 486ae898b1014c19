package service

import (
	"context"
	"time"

	"car-rental-backend/internal/domain"
)

type VehicleService interface {
	Register(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error)
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, id int64, v *domain.Vehicle) (*domain.Vehicle, error)
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Vehicle, error)
	ListAvailable(ctx context.Context) ([]domain.Vehicle, error)
	ListByPriceRange(ctx context.Context, minCents, maxCents int64, availableOnly bool) ([]domain.Vehicle, error)
	Search(ctx context.Context, term string) ([]domain.Vehicle, error)
	MarkRented(ctx context.Context, id int64) error
	MarkAvailable(ctx context.Context, id int64) error
	IsAvailable(ctx context.Context, id int64) (bool, error)
	CountByStatus(ctx context.Context, status domain.VehicleStatus) (int64, error)
}

type CustomerService interface {
	Register(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, id int64, c *domain.Customer) (*domain.Customer, error)
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Customer, error)
	Search(ctx context.Context, term string) ([]domain.Customer, error)
	IsEligibleToRent(ctx context.Context, id int64) (bool, error)
}

type RentalService interface {
	RentVehicle(ctx context.Context, customerID, vehicleID int64, startDate, plannedReturnDate time.Time) (*domain.Rental, error)
	ReturnVehicle(ctx context.Context, rentalID int64, returnDate time.Time) (*domain.Rental, error)
	CancelRental(ctx context.Context, rentalID int64) (*domain.Rental, error)
	Get(ctx context.Context, id int64) (*domain.Rental, error)
	List(ctx context.Context) ([]domain.Rental, error)
	FindActive(ctx context.Context) ([]domain.Rental, error)
	FindOverdue(ctx context.Context) ([]domain.Rental, error)
	FindByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error)
	FindByVehicle(ctx context.Context, vehicleID int64) ([]domain.Rental, error)
	FindByStartDateRange(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
	FindEndingToday(ctx context.Context) ([]domain.Rental, error)
	MarkOverdueRentals(ctx context.Context) (int64, error)
}

type ReportService interface {
	TotalRevenueCents(ctx context.Context) (int64, error)
	RevenueInPeriodCents(ctx context.Context, from, to time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.RentalStatus]int64, error)
	MostRentedVehicles(ctx context.Context, limit int) ([]domain.VehicleRentalCount, error)
	MostActiveCustomers(ctx context.Context, limit int) ([]domain.CustomerRentalCount, error)
}

// LateFeePolicy decides the surcharge for a rental returned after its
// planned return date. The historical system computed days overdue and
// charged nothing; the default policy keeps that behavior while leaving the
// seam for a real fee schedule.
type LateFeePolicy interface {
	SurchargeCents(rt *domain.Rental, daysOverdue int64) int64
}

// NoLateFee charges nothing regardless of how late the return is.
type NoLateFee struct{}

func (NoLateFee) SurchargeCents(*domain.Rental, int64) int64 { return 0 }
