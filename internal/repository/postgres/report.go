package postgres

import (
	"context"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

type reportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) TotalRevenueCents(ctx context.Context) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(total_cost_cents), 0) FROM rentals WHERE status = $1`
	err := r.db.QueryRowContext(ctx, query, domain.RentalStatusCompleted).Scan(&total)
	return total, err
}

func (r *reportRepository) RevenueInPeriodCents(ctx context.Context, from, to time.Time) (int64, error) {
	var total int64
	query := `SELECT COALESCE(SUM(total_cost_cents), 0) FROM rentals
	          WHERE status = $1 AND start_date BETWEEN $2 AND $3`
	err := r.db.QueryRowContext(ctx, query, domain.RentalStatusCompleted, from, to).Scan(&total)
	return total, err
}

func (r *reportRepository) CountByStatus(ctx context.Context) (map[domain.RentalStatus]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, count(*) FROM rentals GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.RentalStatus]int64)
	for rows.Next() {
		var status domain.RentalStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *reportRepository) MostRentedVehicles(ctx context.Context, limit int) ([]domain.VehicleRentalCount, error) {
	query := `SELECT vehicle_id, count(*) AS rental_count FROM rentals
	          GROUP BY vehicle_id ORDER BY rental_count DESC, vehicle_id LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranking []domain.VehicleRentalCount
	for rows.Next() {
		var row domain.VehicleRentalCount
		if err := rows.Scan(&row.VehicleID, &row.RentalCount); err != nil {
			return nil, err
		}
		ranking = append(ranking, row)
	}
	return ranking, rows.Err()
}

func (r *reportRepository) MostActiveCustomers(ctx context.Context, limit int) ([]domain.CustomerRentalCount, error) {
	query := `SELECT customer_id, count(*) AS rental_count FROM rentals
	          GROUP BY customer_id ORDER BY rental_count DESC, customer_id LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranking []domain.CustomerRentalCount
	for rows.Next() {
		var row domain.CustomerRentalCount
		if err := rows.Scan(&row.CustomerID, &row.RentalCount); err != nil {
			return nil, err
		}
		ranking = append(ranking, row)
	}
	return ranking, rows.Err()
}
