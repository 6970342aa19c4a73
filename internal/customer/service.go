package customer

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	DeleteCustomer(ctx context.Context, id uuid.UUID) error
	ListCustomers(ctx context.Context, filter ListFilter) ([]*Customer, int, error)

	// CountReferences returns the number of transactions and orders that
	// reference the customer. Used as a delete guard.
	CountReferences(ctx context.Context, id uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	FullName    string
	CompanyName string
	VATNumber   string
	Address     string
	Email       string
	Phone       string
	Notes       string
}

type ListFilter struct {
	Search string
	Page   int
	Limit  int
}

var (
	vatPattern   = regexp.MustCompile(`^\d{9}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+\d\s\-()]{10,}$`)
)

func validate(p CreateParams) error {
	if p.FullName == "" {
		return ErrMissingFullName
	}

	if !vatPattern.MatchString(p.VATNumber) {
		return ErrInvalidVAT
	}

	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		return ErrInvalidEmail
	}

	if p.Phone != "" && !phonePattern.MatchString(p.Phone) {
		return ErrInvalidPhone
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Customer, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	c := &Customer{
		FullName:    params.FullName,
		CompanyName: params.CompanyName,
		VATNumber:   params.VATNumber,
		Address:     params.Address,
		Email:       params.Email,
		Phone:       params.Phone,
		Notes:       params.Notes,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := validate(CreateParams{
		FullName:  c.FullName,
		VATNumber: c.VATNumber,
		Email:     c.Email,
		Phone:     c.Phone,
	}); err != nil {
		return err
	}

	return s.repo.UpdateCustomer(ctx, c)
}

// Delete removes a customer unless transactions or orders reference it.
// The guard is a count query, not a foreign-key cascade.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	refs, err := s.repo.CountReferences(ctx, id)
	if err != nil {
		return err
	}

	if refs > 0 {
		return ErrHasTransactions
	}

	return s.repo.DeleteCustomer(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Customer, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = 10
	}

	return s.repo.ListCustomers(ctx, filter)
}
