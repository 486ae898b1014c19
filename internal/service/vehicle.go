package service

import (
	"context"
	"strings"

	"car-rental-backend/internal/config"
	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	rules       config.RulesConfig
}

func NewVehicleService(vehicleRepo repository.VehicleRepository, rules config.RulesConfig) VehicleService {
	return &vehicleService{vehicleRepo: vehicleRepo, rules: rules}
}

func (s *vehicleService) Register(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if err := s.validate(v); err != nil {
		return nil, err
	}

	exists, err := s.vehicleRepo.ExistsByBrandAndModel(ctx, v.Brand, v.Model)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflictf("vehicle %s %s already exists", v.Brand, v.Model)
	}

	if v.Status == "" {
		v.Status = domain.VehicleStatusAvailable
	}

	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}
	logger.Info("Registered vehicle", "vehicle_id", v.ID, "brand", v.Brand, "model", v.Model)
	return v, nil
}

func (s *vehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

func (s *vehicleService) Update(ctx context.Context, id int64, v *domain.Vehicle) (*domain.Vehicle, error) {
	existing, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(v); err != nil {
		return nil, err
	}

	// Re-check uniqueness only when the brand+model pair actually changes.
	if !strings.EqualFold(existing.Brand, v.Brand) || !strings.EqualFold(existing.Model, v.Model) {
		exists, err := s.vehicleRepo.ExistsByBrandAndModel(ctx, v.Brand, v.Model)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Conflictf("vehicle %s %s already exists", v.Brand, v.Model)
		}
	}

	existing.Brand = v.Brand
	existing.Model = v.Model
	existing.DailyPriceCents = v.DailyPriceCents
	if v.Status != "" {
		existing.Status = v.Status
	}

	if err := s.vehicleRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *vehicleService) Remove(ctx context.Context, id int64) error {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v.Status == domain.VehicleStatusRented {
		return domain.Conflictf("cannot delete vehicle %d while it is rented", id)
	}
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Removed vehicle", "vehicle_id", id, "brand", v.Brand, "model", v.Model)
	return nil
}

func (s *vehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicleRepo.List(ctx)
}

func (s *vehicleService) ListAvailable(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicleRepo.ListByStatus(ctx, domain.VehicleStatusAvailable)
}

func (s *vehicleService) ListByPriceRange(ctx context.Context, minCents, maxCents int64, availableOnly bool) ([]domain.Vehicle, error) {
	if minCents < 0 || maxCents < minCents {
		return nil, domain.InvalidInputf("invalid price range")
	}
	return s.vehicleRepo.ListByPriceRange(ctx, minCents, maxCents, availableOnly)
}

func (s *vehicleService) Search(ctx context.Context, term string) ([]domain.Vehicle, error) {
	return s.vehicleRepo.Search(ctx, strings.TrimSpace(term))
}

// MarkRented transitions the vehicle from AVAILABLE to RENTED. The update is
// conditional on the current status, so a concurrent caller loses cleanly
// with InvalidState instead of double-booking.
func (s *vehicleService) MarkRented(ctx context.Context, id int64) error {
	swapped, err := s.vehicleRepo.UpdateStatusFrom(ctx, id, domain.VehicleStatusAvailable, domain.VehicleStatusRented)
	if err != nil {
		return err
	}
	if !swapped {
		if _, err := s.vehicleRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.InvalidStatef("vehicle %d is not available for rental", id)
	}
	return nil
}

// MarkAvailable is unconditional and idempotent: the return and cancel paths
// call it without caring whether the vehicle is already free.
func (s *vehicleService) MarkAvailable(ctx context.Context, id int64) error {
	return s.vehicleRepo.UpdateStatus(ctx, id, domain.VehicleStatusAvailable)
}

func (s *vehicleService) IsAvailable(ctx context.Context, id int64) (bool, error) {
	v, err := s.vehicleRepo.GetByID(ctx, id)
	if domain.IsKind(err, domain.KindNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v.Status == domain.VehicleStatusAvailable, nil
}

func (s *vehicleService) CountByStatus(ctx context.Context, status domain.VehicleStatus) (int64, error) {
	return s.vehicleRepo.CountByStatus(ctx, status)
}

func (s *vehicleService) validate(v *domain.Vehicle) error {
	if strings.TrimSpace(v.Brand) == "" {
		return domain.InvalidInputf("vehicle brand is required")
	}
	if strings.TrimSpace(v.Model) == "" {
		return domain.InvalidInputf("vehicle model is required")
	}
	if v.DailyPriceCents <= 0 {
		return domain.InvalidInputf("daily price must be greater than zero")
	}
	if v.DailyPriceCents > s.rules.DailyPriceCeilingCents {
		return domain.InvalidInputf("daily price exceeds the maximum of %d cents", s.rules.DailyPriceCeilingCents)
	}
	return nil
}
