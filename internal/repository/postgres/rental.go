package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

const rentalColumns = "id, customer_id, vehicle_id, start_date, planned_return_date, return_date, total_cost_cents, status, created_on, updated_on"

type rentalRepository struct {
	db DBTX
}

func NewRentalRepository(db DBTX) repository.RentalRepository {
	return &rentalRepository{db: db}
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (customer_id, vehicle_id, start_date, planned_return_date, total_cost_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	rt.CreatedOn = now
	rt.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, rt.CustomerID, rt.VehicleID, rt.StartDate, rt.PlannedReturnDate, rt.TotalCostCents, rt.Status, now, now).Scan(&rt.ID)
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rt.ID, &rt.CustomerID, &rt.VehicleID, &rt.StartDate, &rt.PlannedReturnDate, &rt.ReturnDate, &rt.TotalCostCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("rental %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, return_date=$2, total_cost_cents=$3, updated_on=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, rt.Status, rt.ReturnDate, rt.TotalCostCents, time.Now(), rt.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "rental %d does not exist", rt.ID)
}

func (r *rentalRepository) List(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals ORDER BY start_date DESC`
	return r.queryRentals(ctx, query)
}

func (r *rentalRepository) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 ORDER BY start_date DESC`
	return r.queryRentals(ctx, query, status)
}

func (r *rentalRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1 ORDER BY start_date DESC`
	return r.queryRentals(ctx, query, customerID)
}

func (r *rentalRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE vehicle_id = $1 ORDER BY start_date DESC`
	return r.queryRentals(ctx, query, vehicleID)
}

func (r *rentalRepository) ListByStartDateRange(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE start_date BETWEEN $1 AND $2 ORDER BY start_date DESC`
	return r.queryRentals(ctx, query, from, to)
}

func (r *rentalRepository) ListEndingOn(ctx context.Context, date time.Time) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = $1 AND planned_return_date = $2 ORDER BY start_date DESC`
	return r.queryRentals(ctx, query, domain.RentalStatusActive, date)
}

func (r *rentalRepository) ExistsByVehicleAndStatus(ctx context.Context, vehicleID int64, status domain.RentalStatus) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rentals WHERE vehicle_id = $1 AND status = $2)`
	err := r.db.QueryRowContext(ctx, query, vehicleID, status).Scan(&exists)
	return exists, err
}

func (r *rentalRepository) ExistsByCustomerAndStatus(ctx context.Context, customerID int64, status domain.RentalStatus) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM rentals WHERE customer_id = $1 AND status = $2)`
	err := r.db.QueryRowContext(ctx, query, customerID, status).Scan(&exists)
	return exists, err
}

func (r *rentalRepository) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `UPDATE rentals SET status=$1, updated_on=$2 WHERE status=$3 AND planned_return_date < $4`
	res, err := r.db.ExecContext(ctx, query, domain.RentalStatusOverdue, time.Now(), domain.RentalStatusActive, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *rentalRepository) queryRentals(ctx context.Context, query string, args ...any) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := rows.Scan(&rt.ID, &rt.CustomerID, &rt.VehicleID, &rt.StartDate, &rt.PlannedReturnDate, &rt.ReturnDate, &rt.TotalCostCents, &rt.Status, &rt.CreatedOn, &rt.UpdatedOn); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
