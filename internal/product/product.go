package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateSKU  = errors.New("sku already in use")
	ErrHasOrderItems = errors.New("product is referenced by order items")

	ErrMissingName     = errors.New("name is required")
	ErrMissingCategory = errors.New("category is required")
	ErrMissingSKU      = errors.New("sku is required")
	ErrNegativePrice   = errors.New("price must not be negative")
)

// Product is a catalog item. Price is the current list price; order items
// snapshot it at order time and never re-read it.
type Product struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	SKU         string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
