package customer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpapadakis/emporos/internal/customer"
	"github.com/kpapadakis/emporos/internal/order"
)

type customerResponse struct {
	ID          uuid.UUID       `json:"id"`
	FullName    string          `json:"full_name"`
	CompanyName string          `json:"company_name,omitempty"`
	VATNumber   string          `json:"vat_number"`
	Address     string          `json:"address,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

type customerListResponse struct {
	Customers []customerResponse `json:"customers"`
	Total     int                `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:          c.ID,
		FullName:    c.FullName,
		CompanyName: c.CompanyName,
		VATNumber:   c.VATNumber,
		Address:     c.Address,
		Email:       c.Email,
		Phone:       c.Phone,
		Notes:       c.Notes,
		Balance:     c.Balance,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toListResponse(customers []*customer.Customer, total int, filter customer.ListFilter) customerListResponse {
	resp := customerListResponse{
		Customers: make([]customerResponse, len(customers)),
		Total:     total,
		Page:      filter.Page,
		Limit:     filter.Limit,
	}
	for i, c := range customers {
		resp.Customers[i] = toResponse(c)
	}

	return resp
}

type transactionResponse struct {
	ID            uuid.UUID             `json:"id"`
	OrderID       *uuid.UUID            `json:"order_id,omitempty"`
	Type          order.TransactionType `json:"type"`
	Amount        decimal.Decimal       `json:"amount"`
	Date          time.Time             `json:"date"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	Notes         string                `json:"notes,omitempty"`
}

type transactionListResponse struct {
	Transactions []transactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

func toTransactionListResponse(txs []*order.Transaction, total int) transactionListResponse {
	resp := transactionListResponse{
		Transactions: make([]transactionResponse, len(txs)),
		Total:        total,
	}
	for i, t := range txs {
		resp.Transactions[i] = transactionResponse{
			ID:            t.ID,
			OrderID:       t.OrderID,
			Type:          t.Type,
			Amount:        t.Amount,
			Date:          t.Date,
			PaymentMethod: t.PaymentMethod,
			Notes:         t.Notes,
		}
	}

	return resp
}
