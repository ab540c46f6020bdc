package models

import "time"

type Booking struct {
	ID              int64     `json:"id"`
	Status          string    `json:"status"` // pending, accepted, rejected, arrived, online
	ReservationDate time.Time `json:"reservation_date"`
	Time            string    `json:"time"` // HH:MM slot the reservation occupies
	ClientName      string    `json:"client_name"`
	Phone           string    `json:"phone"`
	Doctor          *User     `json:"doctor,omitempty"`
	AdvanceAmount   string    `json:"advance_amount"`
	Note            string    `json:"note,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookingTime is a bookable time-of-day slot with its remaining capacity.
type BookingTime struct {
	ID           int64  `json:"id"`
	Time         string `json:"time"` // HH:MM
	ReserveCount int    `json:"reserve_count"`
	IsActive     bool   `json:"is_active"`
}

type AdvanceTransfer struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	ClientName string    `json:"client_name"`
	Phone      string    `json:"phone"`
	Amount     string    `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
