package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/kpapadakis/emporos/internal/customer"
	"github.com/kpapadakis/emporos/internal/database"
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

const selectCustomerColumns = `
	id, full_name, company_name, vat_number, address, email, phone, notes, balance, created_at, updated_at
`

func scanCustomer(s scanner) (*customer.Customer, error) {
	var c customer.Customer

	var companyName, address, email, phone, notes sql.NullString

	if err := s.Scan(
		&c.ID, &c.FullName, &companyName, &c.VATNumber, &address, &email, &phone, &notes,
		&c.Balance, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.CompanyName = companyName.String
	c.Address = address.String
	c.Email = email.String
	c.Phone = phone.String
	c.Notes = notes.String

	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (full_name, company_name, vat_number, address, email, phone, notes, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0, NOW(), NOW())
		RETURNING id, balance, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.FullName,
		c.CompanyName,
		c.VATNumber,
		c.Address,
		c.Email,
		c.Phone,
		c.Notes,
	).Scan(&c.ID, &c.Balance, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return customer.ErrDuplicateVAT
		}

		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	query := `SELECT ` + selectCustomerColumns + ` FROM customers WHERE id = $1`

	c, err := scanCustomer(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET full_name = $1, company_name = $2, vat_number = $3, address = $4,
			email = $5, phone = $6, notes = $7, updated_at = NOW()
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		c.FullName,
		c.CompanyName,
		c.VATNumber,
		c.Address,
		c.Email,
		c.Phone,
		c.Notes,
		c.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return customer.ErrDuplicateVAT
		}

		return fmt.Errorf("updating customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating customer: %w", err)
	}

	if affected == 0 {
		return customer.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting customer: %w", err)
	}

	if affected == 0 {
		return customer.ErrNotFound
	}

	return nil
}

func (s *Store) ListCustomers(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, int, error) {
	where := ""

	var args []any

	if filter.Search != "" {
		where = ` WHERE full_name ILIKE $1 OR company_name ILIKE $1 OR vat_number ILIKE $1`

		args = append(args, "%"+filter.Search+"%")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting customers: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		selectCustomerColumns, where, len(args)+1, len(args)+2)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating customer rows: %w", err)
	}

	return customers, total, nil
}

func (s *Store) CountReferences(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM transactions WHERE customer_id = $1) +
			(SELECT COUNT(*) FROM orders WHERE customer_id = $1)
	`

	var refs int
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&refs); err != nil {
		return 0, fmt.Errorf("counting customer references: %w", err)
	}

	return refs, nil
}
