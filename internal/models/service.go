package models

import "time"

type Service struct {
	ID            int64         `json:"id"`
	Status        string        `json:"status"`
	Amount        string        `json:"amount"`
	CashAmount    string        `json:"cash_amount"`
	CardAmount    string        `json:"card_amount"`
	PaymentType   string        `json:"payment_type"` // cash, card, mixed
	ServiceTypes  []ServiceType `json:"service_types"`
	ClientName    string        `json:"client_name"`
	Phone         string        `json:"phone"`
	User          *User         `json:"user,omitempty"` // staff member who billed the visit
	RejectComment string        `json:"reject_comment,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ServiceType is a catalog entry services reference.
type ServiceType struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	ShowCustomer bool   `json:"show_customer"`
}

type Expense struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}
