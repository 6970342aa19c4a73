package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpapadakis/emporos/internal/order"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectOrderColumns = `
	o.id, o.customer_id, o.order_date, o.shipping_cost, o.total_amount, o.status, o.notes,
	c.full_name, c.company_name, c.vat_number, o.created_at, o.updated_at
`

func scanOrder(s scanner) (*order.Order, error) {
	var o order.Order

	var statusStr string

	var notes sql.NullString

	var companyName sql.NullString

	info := order.CustomerInfo{}

	if err := s.Scan(
		&o.ID, &o.CustomerID, &o.OrderDate, &o.ShippingCost, &o.TotalAmount, &statusStr, &notes,
		&info.FullName, &companyName, &info.VATNumber, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.Status = order.Status(statusStr)
	o.Notes = notes.String
	info.ID = o.CustomerID
	info.CompanyName = companyName.String
	o.Customer = &info

	return &o, nil
}

func scanTransaction(s scanner) (*order.Transaction, error) {
	var t order.Transaction

	var typeStr string

	var method, notes sql.NullString

	if err := s.Scan(
		&t.ID, &t.CustomerID, &t.OrderID, &typeStr, &t.Amount, &t.Date, &method, &notes, &t.CreatedAt,
	); err != nil {
		return nil, err
	}

	t.Type = order.TransactionType(typeStr)
	t.PaymentMethod = method.String
	t.Notes = notes.String

	return &t, nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + `
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE o.id = $1`

	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	return o, nil
}

func (s *Store) GetOrderDetail(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	o, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	items, err := s.orderItems(ctx, id)
	if err != nil {
		return nil, err
	}

	o.Items = items

	txs, _, err := s.ListTransactions(ctx, order.TransactionFilter{OrderID: &id, Page: 1, Limit: 100})
	if err != nil {
		return nil, err
	}

	o.Transactions = txs

	return o, nil
}

func (s *Store) orderItems(ctx context.Context, orderID uuid.UUID) ([]*order.Item, error) {
	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.unit_price, i.total_price, p.name, p.sku
		FROM order_items i
		JOIN products p ON i.product_id = p.id
		WHERE i.order_id = $1
		ORDER BY i.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing order items: %w", err)
	}
	defer rows.Close()

	var items []*order.Item

	for rows.Next() {
		var item order.Item
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&item.UnitPrice, &item.TotalPrice, &item.ProductName, &item.ProductSKU,
		); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating order item rows: %w", err)
	}

	return items, nil
}

func (s *Store) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, int, error) {
	where := ""

	var args []any

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		where = fmt.Sprintf(" WHERE o.customer_id = $%d", len(args))
	}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))

		if where == "" {
			where = fmt.Sprintf(" WHERE o.status = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND o.status = $%d", len(args))
		}
	}

	var total int

	countQuery := `SELECT COUNT(*) FROM orders o` + where
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting orders: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s
		FROM orders o
		JOIN customers c ON o.customer_id = c.id%s
		ORDER BY o.order_date DESC
		LIMIT $%d OFFSET $%d`,
		selectOrderColumns, where, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning order: %w", err)
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating order rows: %w", err)
	}

	return orders, total, nil
}

const selectTransactionColumns = `
	id, customer_id, order_id, type, amount, date, payment_method, notes, created_at
`

func (s *Store) ListTransactions(ctx context.Context, filter order.TransactionFilter) ([]*order.Transaction, int, error) {
	where := ""

	var args []any

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		where = fmt.Sprintf(" WHERE customer_id = $%d", len(args))
	}

	if filter.OrderID != nil {
		args = append(args, *filter.OrderID)

		if where == "" {
			where = fmt.Sprintf(" WHERE order_id = $%d", len(args))
		} else {
			where += fmt.Sprintf(" AND order_id = $%d", len(args))
		}
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting transactions: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM transactions%s ORDER BY date DESC LIMIT $%d OFFSET $%d`,
		selectTransactionColumns, where, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*order.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, total, nil
}

const sumPaymentsQuery = `
	SELECT COALESCE(SUM(amount), 0)
	FROM transactions
	WHERE order_id = $1 AND type = 'payment'
`

func (s *Store) SumPayments(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := s.db.QueryRowContext(ctx, sumPaymentsQuery, orderID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing payments: %w", err)
	}

	return sum, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (order.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning ledger tx: %w", err)
	}

	return &ledgerTx{tx: dbTx}, nil
}

func (ltx *ledgerTx) Commit() error   { return ltx.tx.Commit() }
func (ltx *ledgerTx) Rollback() error { return ltx.tx.Rollback() }

// GetCustomer locks the customer row for the lifetime of the tx so
// concurrent balance adjustments serialize.
func (ltx *ledgerTx) GetCustomer(ctx context.Context, id uuid.UUID) (*order.CustomerInfo, error) {
	query := `
		SELECT id, full_name, company_name, vat_number
		FROM customers
		WHERE id = $1
		FOR UPDATE
	`

	var info order.CustomerInfo

	var companyName sql.NullString

	err := ltx.tx.QueryRowContext(ctx, query, id).Scan(&info.ID, &info.FullName, &companyName, &info.VATNumber)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, order.ErrCustomerNotFound
		}

		return nil, fmt.Errorf("locking customer: %w", err)
	}

	info.CompanyName = companyName.String

	return &info, nil
}

// GetProduct reads the price snapshot. No lock: products are read-only
// from the ledger's perspective.
func (ltx *ledgerTx) GetProduct(ctx context.Context, id uuid.UUID) (*order.ProductInfo, error) {
	query := `SELECT id, name, sku, price FROM products WHERE id = $1`

	var p order.ProductInfo

	err := ltx.tx.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.SKU, &p.Price)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, order.ErrProductNotFound
		}

		return nil, fmt.Errorf("getting product: %w", err)
	}

	return &p, nil
}

// GetOrder locks the order row so two concurrent payments cannot both read
// a stale paid total and miss the completion transition.
func (ltx *ledgerTx) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `
		SELECT id, customer_id, order_date, shipping_cost, total_amount, status, notes, created_at, updated_at
		FROM orders
		WHERE id = $1
		FOR UPDATE
	`

	var o order.Order

	var statusStr string

	var notes sql.NullString

	err := ltx.tx.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.CustomerID, &o.OrderDate, &o.ShippingCost, &o.TotalAmount, &statusStr, &notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("locking order: %w", err)
	}

	o.Status = order.Status(statusStr)
	o.Notes = notes.String

	return &o, nil
}

func (ltx *ledgerTx) CreateOrder(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (customer_id, order_date, shipping_cost, total_amount, status, notes, created_at, updated_at)
		VALUES ($1, NOW(), $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, order_date, created_at, updated_at
	`

	err := ltx.tx.QueryRowContext(ctx, query,
		o.CustomerID,
		o.ShippingCost,
		o.TotalAmount,
		o.Status,
		o.Notes,
	).Scan(&o.ID, &o.OrderDate, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	return nil
}

func (ltx *ledgerTx) CreateOrderItems(ctx context.Context, items []*order.Item) error {
	query := `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`

	for _, item := range items {
		err := ltx.tx.QueryRowContext(ctx, query,
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.UnitPrice,
			item.TotalPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("creating order item: %w", err)
		}
	}

	return nil
}

func (ltx *ledgerTx) CreateTransaction(ctx context.Context, t *order.Transaction) error {
	query := `
		INSERT INTO transactions (customer_id, order_id, type, amount, date, payment_method, notes, created_at)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6, NOW())
		RETURNING id, date, created_at
	`

	err := ltx.tx.QueryRowContext(ctx, query,
		t.CustomerID,
		t.OrderID,
		t.Type,
		t.Amount,
		t.PaymentMethod,
		t.Notes,
	).Scan(&t.ID, &t.Date, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (ltx *ledgerTx) AdjustCustomerBalance(ctx context.Context, customerID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE customers
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	res, err := ltx.tx.ExecContext(ctx, query, delta, customerID)
	if err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjusting balance: %w", err)
	}

	if affected == 0 {
		return order.ErrCustomerNotFound
	}

	return nil
}

func (ltx *ledgerTx) SumPayments(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := ltx.tx.QueryRowContext(ctx, sumPaymentsQuery, orderID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("summing payments: %w", err)
	}

	return sum, nil
}

func (ltx *ledgerTx) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status order.Status) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	if _, err := ltx.tx.ExecContext(ctx, query, status, orderID); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return nil
}
