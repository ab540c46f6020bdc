package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// BookingFilter carries the bookings table state: date range, debounced text
// filters and dropdown selections. Zero values are omitted from the query.
type BookingFilter struct {
	Page       int
	Size       int
	From       time.Time
	To         time.Time
	ClientName string
	Phone      string
	Status     string
	DoctorID   int64
}

func (f BookingFilter) query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(f.Page, 1)))
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	if !f.From.IsZero() {
		q.Set("from_date", format.Date(f.From))
	}
	if !f.To.IsZero() {
		q.Set("to_date", format.Date(f.To))
	}
	if f.ClientName != "" {
		q.Set("client_name", f.ClientName)
	}
	if f.Phone != "" {
		q.Set("phone", format.DigitsOnly(f.Phone))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.DoctorID > 0 {
		q.Set("doctor_id", strconv.FormatInt(f.DoctorID, 10))
	}
	return q
}

// BookingInput is the create/update payload of the booking dialog.
type BookingInput struct {
	ID              int64  `json:"id,omitempty"`
	ClientName      string `json:"client_name"`
	Phone           string `json:"phone"`
	ReservationDate string `json:"reservation_date"` // YYYY-MM-DD
	TimeID          int64  `json:"reservation_time_id"`
	DoctorID        int64  `json:"doctor_id,omitempty"`
	AdvanceAmount   string `json:"advance_amount,omitempty"`
	Status          string `json:"status,omitempty"`
	Note            string `json:"note,omitempty"`
}

func (c *Client) ListBookings(ctx context.Context, filter BookingFilter) (*models.Envelope[models.Booking], error) {
	var out models.Envelope[models.Booking]
	err := c.doGet(ctx, "bookings.list", c.endpoint("/reservations", filter.query()), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	var out models.Single[models.Booking]
	endpoint := c.endpoint(fmt.Sprintf("/reservations/%d", id), nil)
	if err := c.doGet(ctx, "bookings.get", endpoint, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) CreateBooking(ctx context.Context, input BookingInput) (*models.Booking, error) {
	var out models.Single[models.Booking]
	err := c.doJSON(ctx, "bookings.create", http.MethodPost, c.endpoint("/reservations", nil), input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id int64, input BookingInput) (*models.Booking, error) {
	var out models.Single[models.Booking]
	endpoint := c.endpoint(fmt.Sprintf("/reservations/%d", id), nil)
	err := c.doJSON(ctx, "bookings.update", http.MethodPut, endpoint, input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateBookingStatus backs the status radio on a booking row.
func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status string) error {
	endpoint := c.endpoint(fmt.Sprintf("/reservations/%d/status", id), nil)
	body := map[string]string{"status": status}
	return c.doJSON(ctx, "bookings.update_status", http.MethodPatch, endpoint, body, nil)
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	endpoint := c.endpoint(fmt.Sprintf("/reservations/%d", id), nil)
	return c.do(ctx, "bookings.delete", http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) ListAdvanceTransfers(ctx context.Context, filter BookingFilter) (*models.Envelope[models.AdvanceTransfer], error) {
	var out models.Envelope[models.AdvanceTransfer]
	err := c.doGet(ctx, "advances.list", c.endpoint("/advance-transfers", filter.query()), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
