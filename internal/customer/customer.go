package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("customer not found")
	ErrDuplicateVAT    = errors.New("vat number already in use")
	ErrHasTransactions = errors.New("customer has linked transactions or orders")

	ErrMissingFullName = errors.New("full name is required")
	ErrInvalidVAT      = errors.New("vat number must have 9 digits")
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPhone    = errors.New("invalid phone number")
)

// Customer represents a business customer. Balance is a signed accumulator
// of the net amount the customer currently owes: order creation increments
// it, payments and refunds decrement it.
type Customer struct {
	ID          uuid.UUID
	FullName    string
	CompanyName string
	VATNumber   string
	Address     string
	Email       string
	Phone       string
	Notes       string
	Balance     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
