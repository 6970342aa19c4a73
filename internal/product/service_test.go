package product_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpapadakis/emporos/internal/product"
)

type mockRepo struct {
	createFunc     func(ctx context.Context, p *product.Product) error
	deleteFunc     func(ctx context.Context, id uuid.UUID) error
	countItemsFunc func(ctx context.Context, id uuid.UUID) (int, error)
}

func (m *mockRepo) CreateProduct(ctx context.Context, p *product.Product) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}

	return nil
}

func (m *mockRepo) GetProduct(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	return nil, product.ErrNotFound
}

func (m *mockRepo) UpdateProduct(ctx context.Context, p *product.Product) error { return nil }

func (m *mockRepo) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}

	return nil
}

func (m *mockRepo) ListProducts(ctx context.Context, filter product.ListFilter) ([]*product.Product, int, error) {
	return nil, 0, nil
}

func (m *mockRepo) ListCategories(ctx context.Context) ([]string, error) { return nil, nil }

func (m *mockRepo) CountOrderItems(ctx context.Context, id uuid.UUID) (int, error) {
	if m.countItemsFunc != nil {
		return m.countItemsFunc(ctx, id)
	}

	return 0, nil
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  product.CreateParams
		wantErr error
	}{
		{
			name:    "MissingName",
			params:  product.CreateParams{Category: "Καφές", SKU: "CF-001"},
			wantErr: product.ErrMissingName,
		},
		{
			name:    "MissingCategory",
			params:  product.CreateParams{Name: "Espresso", SKU: "CF-001"},
			wantErr: product.ErrMissingCategory,
		},
		{
			name:    "MissingSKU",
			params:  product.CreateParams{Name: "Espresso", Category: "Καφές"},
			wantErr: product.ErrMissingSKU,
		},
		{
			name: "NegativePrice",
			params: product.CreateParams{
				Name:     "Espresso",
				Category: "Καφές",
				SKU:      "CF-001",
				Price:    decimal.NewFromFloat(-1.50),
			},
			wantErr: product.ErrNegativePrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := product.NewService(&mockRepo{})

			got, err := svc.Create(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_Create_Success(t *testing.T) {
	svc := product.NewService(&mockRepo{
		createFunc: func(ctx context.Context, p *product.Product) error {
			p.ID = uuid.New()
			return nil
		},
	})

	got, err := svc.Create(context.Background(), product.CreateParams{
		Name:     "Espresso Blend 1kg",
		Category: "Καφές",
		SKU:      "CF-001",
		Price:    decimal.NewFromFloat(18.90),
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotEmpty(t, got.ID)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(18.90)))
}

func TestService_Delete_GuardedByOrderItems(t *testing.T) {
	deleted := false

	svc := product.NewService(&mockRepo{
		countItemsFunc: func(ctx context.Context, id uuid.UUID) (int, error) {
			return 1, nil
		},
		deleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	})

	err := svc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, product.ErrHasOrderItems)
	assert.False(t, deleted)
}
