package service

import (
	"context"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository"
)

type reportService struct {
	reportRepo repository.ReportRepository
}

func NewReportService(reportRepo repository.ReportRepository) ReportService {
	return &reportService{reportRepo: reportRepo}
}

func (s *reportService) TotalRevenueCents(ctx context.Context) (int64, error) {
	return s.reportRepo.TotalRevenueCents(ctx)
}

func (s *reportService) RevenueInPeriodCents(ctx context.Context, from, to time.Time) (int64, error) {
	if from.IsZero() || to.IsZero() {
		return 0, domain.InvalidInputf("period start and end dates are required")
	}
	if to.Before(from) {
		return 0, domain.InvalidInputf("period end date cannot precede the start date")
	}
	return s.reportRepo.RevenueInPeriodCents(ctx, domain.DateOnly(from), domain.DateOnly(to))
}

func (s *reportService) CountByStatus(ctx context.Context) (map[domain.RentalStatus]int64, error) {
	return s.reportRepo.CountByStatus(ctx)
}

func (s *reportService) MostRentedVehicles(ctx context.Context, limit int) ([]domain.VehicleRentalCount, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.reportRepo.MostRentedVehicles(ctx, limit)
}

func (s *reportService) MostActiveCustomers(ctx context.Context, limit int) ([]domain.CustomerRentalCount, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.reportRepo.MostActiveCustomers(ctx, limit)
}
