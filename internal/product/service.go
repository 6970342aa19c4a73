package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Repository interface {
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filter ListFilter) ([]*Product, int, error)
	ListCategories(ctx context.Context) ([]string, error)

	// CountOrderItems returns the number of order items referencing the
	// product. Used as a delete guard.
	CountOrderItems(ctx context.Context, id uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	SKU         string
}

type ListFilter struct {
	Search   string
	Category string
	Page     int
	Limit    int
}

func validate(p CreateParams) error {
	switch {
	case p.Name == "":
		return ErrMissingName
	case p.Category == "":
		return ErrMissingCategory
	case p.SKU == "":
		return ErrMissingSKU
	case p.Price.IsNegative():
		return ErrNegativePrice
	}

	return nil
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if err := validate(params); err != nil {
		return nil, err
	}

	p := &Product{
		Name:        params.Name,
		Category:    params.Category,
		Description: params.Description,
		Price:       params.Price,
		SKU:         params.SKU,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := validate(CreateParams{
		Name:     p.Name,
		Category: p.Category,
		SKU:      p.SKU,
		Price:    p.Price,
	}); err != nil {
		return err
	}

	return s.repo.UpdateProduct(ctx, p)
}

// Delete removes a product unless order items reference it. Snapshotted
// order history must keep resolving its product rows.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	refs, err := s.repo.CountOrderItems(ctx, id)
	if err != nil {
		return err
	}

	if refs > 0 {
		return ErrHasOrderItems
	}

	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = 10
	}

	return s.repo.ListProducts(ctx, filter)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}
