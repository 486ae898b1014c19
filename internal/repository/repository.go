package repository

import (
	"context"
	"time"

	"car-rental-backend/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Vehicle, error)
	ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error)
	ListByPriceRange(ctx context.Context, minCents, maxCents int64, availableOnly bool) ([]domain.Vehicle, error)
	Search(ctx context.Context, term string) ([]domain.Vehicle, error)
	ExistsByBrandAndModel(ctx context.Context, brand, model string) (bool, error)
	CountByStatus(ctx context.Context, status domain.VehicleStatus) (int64, error)

	// UpdateStatus sets the status unconditionally. It is idempotent and is
	// what the return/cancel paths use to free a vehicle.
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
	// UpdateStatusFrom sets the status only while the current status equals
	// from, reporting whether the row was updated. Concurrent rent calls for
	// one vehicle serialize on this compare-and-swap.
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.VehicleStatus) (bool, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Customer, error)
	Search(ctx context.Context, term string) ([]domain.Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rt *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	Update(ctx context.Context, rt *domain.Rental) error
	List(ctx context.Context) ([]domain.Rental, error)
	ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.Rental, error)
	ListByStartDateRange(ctx context.Context, from, to time.Time) ([]domain.Rental, error)
	ListEndingOn(ctx context.Context, date time.Time) ([]domain.Rental, error)
	ExistsByVehicleAndStatus(ctx context.Context, vehicleID int64, status domain.RentalStatus) (bool, error)
	ExistsByCustomerAndStatus(ctx context.Context, customerID int64, status domain.RentalStatus) (bool, error)
	// MarkOverdue flips every ACTIVE rental whose planned return date is
	// strictly before cutoff to OVERDUE and returns how many rows changed.
	MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error)
}

type ReportRepository interface {
	TotalRevenueCents(ctx context.Context) (int64, error)
	RevenueInPeriodCents(ctx context.Context, from, to time.Time) (int64, error)
	CountByStatus(ctx context.Context) (map[domain.RentalStatus]int64, error)
	MostRentedVehicles(ctx context.Context, limit int) ([]domain.VehicleRentalCount, error)
	MostActiveCustomers(ctx context.Context, limit int) ([]domain.CustomerRentalCount, error)
}

// Registry bundles the repositories that participate in a transaction.
type Registry struct {
	Vehicles  VehicleRepository
	Customers CustomerRepository
	Rentals   RentalRepository
}

// TxRunner executes op inside a single database transaction; an error from
// op rolls back every write performed through the registry op received.
type TxRunner interface {
	WithinTx(ctx context.Context, op func(r Registry) error) error
}
