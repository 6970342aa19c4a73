// Package stats aggregates figures for the dashboard.
package stats

import "github.com/shopspring/decimal"

type Dashboard struct {
	TotalCustomers int
	TotalOrders    int
	TotalBalance   decimal.Decimal
}
