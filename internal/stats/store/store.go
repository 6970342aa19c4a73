package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kpapadakis/emporos/internal/stats"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Dashboard(ctx context.Context) (*stats.Dashboard, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM orders),
			(SELECT COALESCE(SUM(balance), 0) FROM customers)`

	var d stats.Dashboard
	err := s.db.QueryRowContext(ctx, query).
		Scan(&d.TotalCustomers, &d.TotalOrders, &d.TotalBalance)
	if err != nil {
		return nil, fmt.Errorf("querying dashboard stats: %w", err)
	}

	return &d, nil
}
