package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

const vehicleColumns = "id, brand, model, daily_price_cents, status, created_on, updated_on"

type vehicleRepository struct {
	db DBTX
}

func NewVehicleRepository(db DBTX) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (brand, model, daily_price_cents, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	now := time.Now()
	v.CreatedOn = now
	v.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, v.Brand, v.Model, v.DailyPriceCents, v.Status, now, now).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Brand, &v.Model, &v.DailyPriceCents, &v.Status, &v.CreatedOn, &v.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("vehicle %d does not exist", id)
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET brand=$1, model=$2, daily_price_cents=$3, status=$4, updated_on=$5 WHERE id=$6`
	res, err := r.db.ExecContext(ctx, query, v.Brand, v.Model, v.DailyPriceCents, v.Status, time.Now(), v.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "vehicle %d does not exist", v.ID)
}

func (r *vehicleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "vehicle %d does not exist", id)
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY brand, model`
	return r.queryVehicles(ctx, query)
}

func (r *vehicleRepository) ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE status = $1 ORDER BY brand, model`
	return r.queryVehicles(ctx, query, status)
}

func (r *vehicleRepository) ListByPriceRange(ctx context.Context, minCents, maxCents int64, availableOnly bool) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE daily_price_cents BETWEEN $1 AND $2`
	args := []any{minCents, maxCents}
	if availableOnly {
		query += ` AND status = $3`
		args = append(args, domain.VehicleStatusAvailable)
	}
	query += ` ORDER BY daily_price_cents`
	return r.queryVehicles(ctx, query, args...)
}

func (r *vehicleRepository) Search(ctx context.Context, term string) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles
	          WHERE brand ILIKE '%' || $1 || '%' OR model ILIKE '%' || $1 || '%'
	          ORDER BY brand, model`
	return r.queryVehicles(ctx, query, term)
}

func (r *vehicleRepository) ExistsByBrandAndModel(ctx context.Context, brand, model string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM vehicles WHERE LOWER(brand) = LOWER($1) AND LOWER(model) = LOWER($2))`
	err := r.db.QueryRowContext(ctx, query, brand, model).Scan(&exists)
	return exists, err
}

func (r *vehicleRepository) CountByStatus(ctx context.Context, status domain.VehicleStatus) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles WHERE status = $1`, status).Scan(&count)
	return count, err
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "vehicle %d does not exist", id)
}

func (r *vehicleRepository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.VehicleStatus) (bool, error) {
	query := `UPDATE vehicles SET status=$1, updated_on=$2 WHERE id=$3 AND status=$4`
	res, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *vehicleRepository) queryVehicles(ctx context.Context, query string, args ...any) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Brand, &v.Model, &v.DailyPriceCents, &v.Status, &v.CreatedOn, &v.UpdatedOn); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func requireRow(res sql.Result, format string, args ...any) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundf(format, args...)
	}
	return nil
}
