package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kpapadakis/emporos/internal/customer"
	"github.com/kpapadakis/emporos/internal/importer/tabular"
	"github.com/kpapadakis/emporos/internal/product"
)

type CustomerCreator interface {
	Create(ctx context.Context, params customer.CreateParams) (*customer.Customer, error)
}

type ProductCreator interface {
	Create(ctx context.Context, params product.CreateParams) (*product.Product, error)
}

type Service struct {
	customers CustomerCreator
	products  ProductCreator
}

func NewService(customers CustomerCreator, products ProductCreator) *Service {
	return &Service{
		customers: customers,
		products:  products,
	}
}

// ImportCustomers parses the file and creates the valid rows. Rows that
// fail validation or duplicate an existing VAT number are reported in
// the result, not treated as fatal.
func (s *Service) ImportCustomers(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	rows, err := tabular.Rows(filename, r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	params, rowErrs := mapCustomers(rows)
	result := &Result{
		Total:  len(rows) - 1,
		Errors: rowErrs,
	}

	for _, p := range params {
		if _, err := s.customers.Create(ctx, p); err != nil {
			switch {
			case errors.Is(err, customer.ErrDuplicateVAT):
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("VAT %s already exists, skipped", p.VATNumber))
			case errors.Is(err, customer.ErrInvalidPhone):
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("customer %q: %v", p.FullName, err))
			default:
				return nil, fmt.Errorf("creating customer %q: %w", p.FullName, err)
			}
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportProducts is the product counterpart of ImportCustomers; the
// duplicate key is the SKU.
func (s *Service) ImportProducts(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	rows, err := tabular.Rows(filename, r)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ErrEmptyFile
	}

	params, rowErrs := mapProducts(rows)
	result := &Result{
		Total:  len(rows) - 1,
		Errors: rowErrs,
	}

	for _, p := range params {
		if _, err := s.products.Create(ctx, p); err != nil {
			if errors.Is(err, product.ErrDuplicateSKU) {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("SKU %s already exists, skipped", p.SKU))
				continue
			}
			return nil, fmt.Errorf("creating product %q: %w", p.Name, err)
		}
		result.Imported++
	}

	return result, nil
}
