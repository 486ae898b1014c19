package service_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListByStatus(ctx context.Context, status domain.VehicleStatus) ([]domain.Vehicle, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ListByPriceRange(ctx context.Context, minCents, maxCents int64, availableOnly bool) ([]domain.Vehicle, error) {
	args := m.Called(ctx, minCents, maxCents, availableOnly)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Search(ctx context.Context, term string) ([]domain.Vehicle, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) ExistsByBrandAndModel(ctx context.Context, brand, model string) (bool, error) {
	args := m.Called(ctx, brand, model)
	return args.Bool(0), args.Error(1)
}
func (m *MockVehicleRepo) CountByStatus(ctx context.Context, status domain.VehicleStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockVehicleRepo) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockVehicleRepo) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.VehicleStatus) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	args := m.Called(ctx, term)
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) List(ctx context.Context) ([]domain.Rental, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByStatus(ctx context.Context, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByVehicle(ctx context.Context, vehicleID int64) ([]domain.Rental, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByStartDateRange(ctx context.Context, from, to time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListEndingOn(ctx context.Context, date time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, date)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ExistsByVehicleAndStatus(ctx context.Context, vehicleID int64, status domain.RentalStatus) (bool, error) {
	args := m.Called(ctx, vehicleID, status)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) ExistsByCustomerAndStatus(ctx context.Context, customerID int64, status domain.RentalStatus) (bool, error) {
	args := m.Called(ctx, customerID, status)
	return args.Bool(0), args.Error(1)
}
func (m *MockRentalRepo) MarkOverdue(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) TotalRevenueCents(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockReportRepo) RevenueInPeriodCents(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockReportRepo) CountByStatus(ctx context.Context) (map[domain.RentalStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[domain.RentalStatus]int64), args.Error(1)
}
func (m *MockReportRepo) MostRentedVehicles(ctx context.Context, limit int) ([]domain.VehicleRentalCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.VehicleRentalCount), args.Error(1)
}
func (m *MockReportRepo) MostActiveCustomers(ctx context.Context, limit int) ([]domain.CustomerRentalCount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.CustomerRentalCount), args.Error(1)
}

// stubTxRunner runs the operation against the given repositories without a
// real transaction.
type stubTxRunner struct {
	r repository.Registry
}

func (s stubTxRunner) WithinTx(_ context.Context, op func(r repository.Registry) error) error {
	return op(s.r)
}
