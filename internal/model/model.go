// Package model holds the shared domain types passed between the store,
// handlers, and the PDF renderer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Order is a single customer order as entered at the counter.
//
// Monetary fields are kept as the strings the operator typed; they are
// parsed with shopspring/decimal only where arithmetic is needed (KPIs,
// report summaries). Date and Time are likewise the operator's strings
// (YYYY-MM-DD and HH:MM); CreatedAt is the authoritative server clock.
type Order struct {
	ID             uuid.UUID `json:"id"`
	ReceiptNo      string    `json:"receipt_no"`
	CustomerName   string    `json:"customer_name"`
	Phone          string    `json:"phone"`
	Location       string    `json:"location"`
	OrderDetails   string    `json:"order_details"`
	DeliveryType   string    `json:"delivery_type"`
	PaymentType    string    `json:"payment_type"`
	Total          string    `json:"total"`
	AdvancePayment string    `json:"advance_payment"`
	BalanceDue     string    `json:"balance_due"`
	Discount       string    `json:"discount"`
	Paid           bool      `json:"paid"`
	CookStatus     string    `json:"cook_status"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	CreatedBy      uuid.UUID `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// User is a dashboard account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
