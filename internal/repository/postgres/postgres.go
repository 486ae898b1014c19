package postgres

import (
	"context"
	"database/sql"

	"car-rental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so every
// repository can run either standalone or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.VehicleRepository
	repository.CustomerRepository
	repository.RentalRepository
	repository.ReportRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		VehicleRepository:  NewVehicleRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		RentalRepository:   NewRentalRepository(db),
		ReportRepository:   NewReportRepository(db),
	}
}

// WithinTx runs op against transaction-scoped repositories, committing when
// op returns nil and rolling back otherwise.
func (s *Store) WithinTx(ctx context.Context, op func(r repository.Registry) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	r := repository.Registry{
		Vehicles:  NewVehicleRepository(tx),
		Customers: NewCustomerRepository(tx),
		Rentals:   NewRentalRepository(tx),
	}
	if err := op(r); err != nil {
		return err
	}
	return tx.Commit()
}
