package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kpapadakis/emporos/internal/order"
)

type customerResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	CompanyName string    `json:"company_name,omitempty"`
	VATNumber   string    `json:"vat_number"`
}

type itemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type transactionResponse struct {
	ID            uuid.UUID             `json:"id"`
	CustomerID    uuid.UUID             `json:"customer_id"`
	OrderID       *uuid.UUID            `json:"order_id,omitempty"`
	Type          order.TransactionType `json:"type"`
	Amount        decimal.Decimal       `json:"amount"`
	Date          time.Time             `json:"date"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	Notes         string                `json:"notes,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

type orderResponse struct {
	ID           uuid.UUID             `json:"id"`
	CustomerID   uuid.UUID             `json:"customer_id"`
	Customer     *customerResponse     `json:"customer,omitempty"`
	OrderDate    time.Time             `json:"order_date"`
	ShippingCost decimal.Decimal       `json:"shipping_cost"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	Status       order.Status          `json:"status"`
	Notes        string                `json:"notes,omitempty"`
	Items        []itemResponse        `json:"items,omitempty"`
	Transactions []transactionResponse `json:"transactions,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    *time.Time            `json:"updated_at,omitempty"`
}

type orderListResponse struct {
	Orders []orderResponse `json:"orders"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

type balanceResponse struct {
	TotalPaid  decimal.Decimal `json:"total_paid"`
	BalanceDue decimal.Decimal `json:"balance_due"`
}

func toResponse(o *order.Order) orderResponse {
	resp := orderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		OrderDate:    o.OrderDate,
		ShippingCost: o.ShippingCost,
		TotalAmount:  o.TotalAmount,
		Status:       o.Status,
		Notes:        o.Notes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}

	if o.Customer != nil {
		resp.Customer = &customerResponse{
			ID:          o.Customer.ID,
			FullName:    o.Customer.FullName,
			CompanyName: o.Customer.CompanyName,
			VATNumber:   o.Customer.VATNumber,
		}
	}

	for _, item := range o.Items {
		resp.Items = append(resp.Items, itemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	for _, tx := range o.Transactions {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}

	return resp
}

func toListResponse(orders []*order.Order, total int, filter order.ListFilter) orderListResponse {
	resp := orderListResponse{
		Orders: make([]orderResponse, len(orders)),
		Total:  total,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}
	for i, o := range orders {
		resp.Orders[i] = toResponse(o)
	}

	return resp
}

func toTransactionResponse(tx *order.Transaction) transactionResponse {
	return transactionResponse{
		ID:            tx.ID,
		CustomerID:    tx.CustomerID,
		OrderID:       tx.OrderID,
		Type:          tx.Type,
		Amount:        tx.Amount,
		Date:          tx.Date,
		PaymentMethod: tx.PaymentMethod,
		Notes:         tx.Notes,
		CreatedAt:     tx.CreatedAt,
	}
}

func toBalanceResponse(b *order.Balance) balanceResponse {
	return balanceResponse{
		TotalPaid:  b.TotalPaid,
		BalanceDue: b.BalanceDue,
	}
}
