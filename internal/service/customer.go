package service

import (
	"context"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"car-rental-backend/internal/config"
	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	namePattern  = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	spacesRun    = regexp.MustCompile(`\s+`)
)

type customerService struct {
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
	rules        config.RulesConfig
}

func NewCustomerService(customerRepo repository.CustomerRepository, rentalRepo repository.RentalRepository, rules config.RulesConfig) CustomerService {
	return &customerService{customerRepo: customerRepo, rentalRepo: rentalRepo, rules: rules}
}

func (s *customerService) Register(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := s.validate(c); err != nil {
		return nil, err
	}

	exists, err := s.customerRepo.ExistsByEmail(ctx, c.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Conflictf("customer with email %s already exists", strings.ToLower(strings.TrimSpace(c.Email)))
	}

	s.normalize(c)

	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	logger.Info("Registered customer", "customer_id", c.ID, "email", c.Email)
	return c, nil
}

func (s *customerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *customerService) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.customerRepo.GetByEmail(ctx, email)
}

func (s *customerService) Update(ctx context.Context, id int64, c *domain.Customer) (*domain.Customer, error) {
	existing, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(c); err != nil {
		return nil, err
	}

	// Uniqueness re-check excludes the customer's own current address.
	if !strings.EqualFold(existing.Email, strings.TrimSpace(c.Email)) {
		exists, err := s.customerRepo.ExistsByEmail(ctx, c.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Conflictf("customer with email %s already exists", strings.ToLower(strings.TrimSpace(c.Email)))
		}
	}

	existing.FirstName = c.FirstName
	existing.LastName = c.LastName
	existing.Email = c.Email
	s.normalize(existing)

	if err := s.customerRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) Remove(ctx context.Context, id int64) error {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		return err
	}

	active, err := s.rentalRepo.ExistsByCustomerAndStatus(ctx, id, domain.RentalStatusActive)
	if err != nil {
		return err
	}
	if active {
		return domain.Conflictf("cannot delete customer %d with active rentals", id)
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("Removed customer", "customer_id", id)
	return nil
}

func (s *customerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.List(ctx)
}

func (s *customerService) Search(ctx context.Context, term string) ([]domain.Customer, error) {
	return s.customerRepo.Search(ctx, strings.TrimSpace(term))
}

// IsEligibleToRent reports whether the customer may start a new rental: the
// customer must exist and have no rental currently in OVERDUE status. Active
// rentals do not block renting, only deletion.
func (s *customerService) IsEligibleToRent(ctx context.Context, id int64) (bool, error) {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return false, nil
		}
		return false, err
	}

	overdue, err := s.rentalRepo.ExistsByCustomerAndStatus(ctx, id, domain.RentalStatusOverdue)
	if err != nil {
		return false, err
	}
	return !overdue, nil
}

func (s *customerService) validate(c *domain.Customer) error {
	if err := s.validateName(c.FirstName, "first name"); err != nil {
		return err
	}
	if err := s.validateName(c.LastName, "last name"); err != nil {
		return err
	}

	email := strings.TrimSpace(c.Email)
	if email == "" {
		return domain.InvalidInputf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return domain.InvalidInputf("email has invalid format")
	}
	if len(email) > s.rules.EmailMaxLength {
		return domain.InvalidInputf("email cannot be longer than %d characters", s.rules.EmailMaxLength)
	}
	return nil
}

func (s *customerService) validateName(name, field string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return domain.InvalidInputf("%s is required", field)
	}
	if utf8.RuneCountInString(trimmed) < s.rules.NameMinLength {
		return domain.InvalidInputf("%s must be at least %d characters long", field, s.rules.NameMinLength)
	}
	if utf8.RuneCountInString(trimmed) > s.rules.NameMaxLength {
		return domain.InvalidInputf("%s cannot be longer than %d characters", field, s.rules.NameMaxLength)
	}
	if !namePattern.MatchString(trimmed) {
		return domain.InvalidInputf("%s can only contain letters, spaces, hyphens and apostrophes", field)
	}
	return nil
}

func (s *customerService) normalize(c *domain.Customer) {
	c.FirstName = normalizeText(c.FirstName)
	c.LastName = normalizeText(c.LastName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
}

// normalizeText collapses inner whitespace and Title-cases the result:
// " jan  KOWALSKI " becomes "Jan kowalski".
func normalizeText(text string) string {
	normalized := spacesRun.ReplaceAllString(strings.TrimSpace(text), " ")
	if normalized == "" {
		return normalized
	}
	first, size := utf8.DecodeRuneInString(normalized)
	return string(unicode.ToUpper(first)) + strings.ToLower(normalized[size:])
}
