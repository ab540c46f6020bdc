package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// ListBookingTimes returns the full slot catalog, sorted by hour then minute
// for display.
func (c *Client) ListBookingTimes(ctx context.Context) ([]models.BookingTime, error) {
	var out models.Envelope[models.BookingTime]
	err := c.doGet(ctx, "booking_times.list", c.endpoint("/reservation-times", nil), &out)
	if err != nil {
		return nil, err
	}
	format.SortSlots(out.Data)
	return out.Data, nil
}

// BookingHoursForDate returns the slots of one day with their remaining
// reservation capacity, for the booking dialog's slot picker.
func (c *Client) BookingHoursForDate(ctx context.Context, date time.Time) ([]models.BookingTime, error) {
	q := url.Values{}
	q.Set("date", format.Date(date))

	var out models.Envelope[models.BookingTime]
	err := c.doGet(ctx, "booking_times.hours", c.endpoint("/reservation-times", q), &out)
	if err != nil {
		return nil, err
	}
	format.SortSlots(out.Data)
	return out.Data, nil
}

type BookingTimeInput struct {
	ID           int64  `json:"id,omitempty"`
	Time         string `json:"time"` // HH:MM
	ReserveCount int    `json:"reserve_count"`
	IsActive     bool   `json:"is_active"`
}

func (c *Client) CreateBookingTime(ctx context.Context, input BookingTimeInput) (*models.BookingTime, error) {
	var out models.Single[models.BookingTime]
	err := c.doJSON(ctx, "booking_times.create", http.MethodPost, c.endpoint("/reservation-times", nil), input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateBookingTime(ctx context.Context, id int64, input BookingTimeInput) (*models.BookingTime, error) {
	var out models.Single[models.BookingTime]
	endpoint := c.endpoint(fmt.Sprintf("/reservation-times/%d", id), nil)
	err := c.doJSON(ctx, "booking_times.update", http.MethodPut, endpoint, input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteBookingTime(ctx context.Context, id int64) error {
	endpoint := c.endpoint(fmt.Sprintf("/reservation-times/%d", id), nil)
	return c.do(ctx, "booking_times.delete", http.MethodDelete, endpoint, nil, nil)
}
