package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	GetOrderDetail(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, int, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*Transaction, int, error)
	SumPayments(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is one atomic unit of ledger work. Customer and order reads inside it
// take row locks, so concurrent payments against the same order serialize
// and the completion check always sees the committed cumulative sum.
type Tx interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerInfo, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductInfo, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	CreateOrder(ctx context.Context, o *Order) error
	CreateOrderItems(ctx context.Context, items []*Item) error
	CreateTransaction(ctx context.Context, t *Transaction) error
	AdjustCustomerBalance(ctx context.Context, customerID uuid.UUID, delta decimal.Decimal) error
	SumPayments(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status Status) error
	Commit() error
	Rollback() error
}

// ProductInfo is the product snapshot read at order time.
type ProductInfo struct {
	ID    uuid.UUID
	Name  string
	SKU   string
	Price decimal.Decimal
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type LineParams struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateParams struct {
	CustomerID   uuid.UUID
	Items        []LineParams
	ShippingCost decimal.Decimal
	Notes        string
}

type PaymentParams struct {
	Amount        decimal.Decimal
	PaymentMethod string
	Notes         string
}

type RefundParams struct {
	Amount decimal.Decimal
	Reason string
}

type ListFilter struct {
	CustomerID *uuid.UUID
	Status     *Status
	Page       int
	Limit      int
}

type TransactionFilter struct {
	CustomerID *uuid.UUID
	OrderID    *uuid.UUID
	Page       int
	Limit      int
}

// Create computes line totals from current product prices, persists the
// order with its items and increments the customer balance by the order
// total. All writes happen in one atomic unit: an unresolved product or
// customer aborts the operation with nothing persisted.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Order, error) {
	if len(params.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	for _, line := range params.Items {
		if line.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
	}

	if params.ShippingCost.IsNegative() {
		return nil, ErrNegativeShipping
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.GetCustomer(ctx, params.CustomerID); err != nil {
		return nil, err
	}

	total := params.ShippingCost
	items := make([]*Item, 0, len(params.Items))

	for _, line := range params.Items {
		p, err := tx.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)

		items = append(items, &Item{
			ProductID:   p.ID,
			Quantity:    line.Quantity,
			UnitPrice:   p.Price,
			TotalPrice:  lineTotal,
			ProductName: p.Name,
			ProductSKU:  p.SKU,
		})
	}

	o := &Order{
		CustomerID:   params.CustomerID,
		ShippingCost: params.ShippingCost,
		TotalAmount:  total,
		Status:       StatusPending,
		Notes:        params.Notes,
	}
	if err := tx.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	for _, item := range items {
		item.OrderID = o.ID
	}

	if err := tx.CreateOrderItems(ctx, items); err != nil {
		return nil, fmt.Errorf("create order items: %w", err)
	}

	if err := tx.AdjustCustomerBalance(ctx, params.CustomerID, total); err != nil {
		return nil, fmt.Errorf("adjust customer balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit order: %w", err)
	}

	return s.repo.GetOrderDetail(ctx, o.ID)
}

// RecordPayment appends a payment transaction, decrements the customer
// balance and recomputes the order's cumulative paid total; when that
// reaches the order total the status becomes completed. Replaying the same
// call records a second transaction: there is no deduplication key.
func (s *Service) RecordPayment(ctx context.Context, orderID uuid.UUID, params PaymentParams) (*Transaction, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if params.PaymentMethod == "" {
		return nil, ErrMissingPaymentMethod
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin payment tx: %w", err)
	}
	defer tx.Rollback()

	o, err := tx.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		CustomerID:    o.CustomerID,
		OrderID:       &o.ID,
		Type:          TypePayment,
		Amount:        params.Amount,
		PaymentMethod: params.PaymentMethod,
		Notes:         params.Notes,
	}
	if err := tx.CreateTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if err := tx.AdjustCustomerBalance(ctx, o.CustomerID, params.Amount.Neg()); err != nil {
		return nil, fmt.Errorf("adjust customer balance: %w", err)
	}

	paid, err := tx.SumPayments(ctx, o.ID)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	if paid.GreaterThanOrEqual(o.TotalAmount) {
		if err := tx.UpdateOrderStatus(ctx, o.ID, StatusCompleted); err != nil {
			return nil, fmt.Errorf("update order status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	return t, nil
}

// RecordRefund appends a refund transaction with the amount sign-flipped
// and cancels the order regardless of the refunded amount. The customer
// balance moves in the same direction as for a payment; this mirrors the
// books as the business has always kept them.
func (s *Service) RecordRefund(ctx context.Context, orderID uuid.UUID, params RefundParams) (*Transaction, error) {
	if !params.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if params.Reason == "" {
		return nil, ErrMissingReason
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin refund tx: %w", err)
	}
	defer tx.Rollback()

	o, err := tx.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		CustomerID: o.CustomerID,
		OrderID:    &o.ID,
		Type:       TypeRefund,
		Amount:     params.Amount.Neg(),
		Notes:      params.Reason,
	}
	if err := tx.CreateTransaction(ctx, t); err != nil {
		return nil, fmt.Errorf("create refund: %w", err)
	}

	if err := tx.AdjustCustomerBalance(ctx, o.CustomerID, params.Amount.Neg()); err != nil {
		return nil, fmt.Errorf("adjust customer balance: %w", err)
	}

	if err := tx.UpdateOrderStatus(ctx, o.ID, StatusCancelled); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit refund: %w", err)
	}

	return t, nil
}

// Balance derives the order's payment position from the transaction log.
// It is recomputed on every call, never cached.
func (s *Service) Balance(ctx context.Context, orderID uuid.UUID) (*Balance, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	paid, err := s.repo.SumPayments(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	return &Balance{
		TotalPaid:  paid,
		BalanceDue: o.TotalAmount.Sub(paid),
	}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrderDetail(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = 10
	}

	return s.repo.ListOrders(ctx, filter)
}

func (s *Service) ListTransactions(ctx context.Context, filter TransactionFilter) ([]*Transaction, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	if filter.Limit < 1 {
		filter.Limit = 10
	}

	return s.repo.ListTransactions(ctx, filter)
}
