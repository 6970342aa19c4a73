package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of an order. It is derived: only
// payment and refund recording move it, never a direct client write.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TypePayment TransactionType = "payment"
	TypeRefund  TransactionType = "refund"
	TypeReturn  TransactionType = "return"
)

var (
	ErrNotFound         = errors.New("order not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrProductNotFound  = errors.New("product not found")

	ErrEmptyOrder           = errors.New("order must contain at least one item")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrNegativeShipping     = errors.New("shipping cost must not be negative")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrMissingReason        = errors.New("refund reason is required")
)

// Order is an order header. TotalAmount is fixed at creation:
// shipping cost plus the sum of all item totals.
type Order struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	OrderDate    time.Time
	ShippingCost decimal.Decimal
	TotalAmount  decimal.Decimal
	Status       Status
	Notes        string
	Customer     *CustomerInfo  // Loaded via JOIN
	Items        []*Item        // Loaded on detail reads
	Transactions []*Transaction // Loaded on detail reads
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Item is one order line. UnitPrice is a snapshot of the product price at
// order time; the line is immutable after creation.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	ProductName string // Loaded via JOIN
	ProductSKU  string // Loaded via JOIN
}

// Transaction is an append-only ledger entry. Payments are stored with a
// positive amount, refunds with a negative one, so amounts sum directly.
type Transaction struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	OrderID       *uuid.UUID
	Type          TransactionType
	Amount        decimal.Decimal
	Date          time.Time
	PaymentMethod string
	Notes         string
	CreatedAt     time.Time
}

// CustomerInfo carries the customer display fields joined into order reads.
type CustomerInfo struct {
	ID          uuid.UUID
	FullName    string
	CompanyName string
	VATNumber   string
}

// Balance is the derived per-order payment position.
type Balance struct {
	TotalPaid  decimal.Decimal
	BalanceDue decimal.Decimal
}

// TotalPaid sums the payment-type transaction amounts. Refunds and returns
// do not count toward an order's paid total.
func TotalPaid(txs []*Transaction) decimal.Decimal {
	total := decimal.Zero

	for _, t := range txs {
		if t.Type == TypePayment {
			total = total.Add(t.Amount)
		}
	}

	return total
}

// BalanceDue is the remaining unpaid amount of an order.
func BalanceDue(totalAmount decimal.Decimal, txs []*Transaction) decimal.Decimal {
	return totalAmount.Sub(TotalPaid(txs))
}
