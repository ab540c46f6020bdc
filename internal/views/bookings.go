package views

import (
	"context"
	"sync"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/domain"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/permissions"

	"github.com/rs/zerolog"
)

// BookingsAPI is the slice of the backend client the bookings table needs.
type BookingsAPI interface {
	ListBookings(ctx context.Context, filter api.BookingFilter) (*models.Envelope[models.Booking], error)
	CreateBooking(ctx context.Context, input api.BookingInput) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id int64, input api.BookingInput) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	DeleteBooking(ctx context.Context, id int64) error
}

// BookingsView is the reservations table: a day-scoped list with debounced
// client name and phone filters plus status and doctor dropdowns.
type BookingsView struct {
	List *ListState[models.Booking]

	api      BookingsAPI
	perms    []string
	bus      domain.EventPublisher
	log      zerolog.Logger
	debounce *Debouncer

	mu     sync.Mutex
	filter api.BookingFilter
}

func NewBookingsView(client BookingsAPI, perms []string, bus domain.EventPublisher, logger *zerolog.Logger, debounce time.Duration) *BookingsView {
	v := &BookingsView{
		api:      client,
		perms:    perms,
		bus:      bus,
		debounce: NewDebouncer(debounce),
	}
	if logger != nil {
		v.log = logger.With().Str("view", "bookings").Logger()
	}
	v.filter = api.BookingFilter{
		Size: models.DefaultPageSize,
		From: today(),
		To:   today(),
	}
	v.List = newListState("bookings", v.fetch, logger)
	return v
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func (v *BookingsView) fetch(ctx context.Context, page int) ([]models.Booking, *models.Meta, error) {
	v.mu.Lock()
	filter := v.filter
	v.mu.Unlock()
	filter.Page = page

	env, err := v.api.ListBookings(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Meta, nil
}

func (v *BookingsView) CanCreate() bool { return permissions.Has(v.perms, permissions.PermBookingCreate) }
func (v *BookingsView) CanUpdate() bool { return permissions.Has(v.perms, permissions.PermBookingUpdate) }
func (v *BookingsView) CanDelete() bool { return permissions.Has(v.perms, permissions.PermBookingDelete) }

// SetDateRange is an immediate dependency change: it resets to the first
// page and refetches.
func (v *BookingsView) SetDateRange(ctx context.Context, from, to time.Time) error {
	v.mu.Lock()
	v.filter.From = from
	v.filter.To = to
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

// SetClientNameFilter coalesces keystrokes; only the value standing after
// the quiet window triggers a fetch.
func (v *BookingsView) SetClientNameFilter(ctx context.Context, value string) {
	v.mu.Lock()
	v.filter.ClientName = value
	v.mu.Unlock()
	v.debounce.Trigger(func() {
		if err := v.List.ResetToFirstPage(ctx); err != nil {
			v.log.Error().Err(err).Msg("debounced refresh failed")
		}
	})
}

func (v *BookingsView) SetPhoneFilter(ctx context.Context, value string) {
	v.mu.Lock()
	v.filter.Phone = value
	v.mu.Unlock()
	v.debounce.Trigger(func() {
		if err := v.List.ResetToFirstPage(ctx); err != nil {
			v.log.Error().Err(err).Msg("debounced refresh failed")
		}
	})
}

func (v *BookingsView) SetStatusFilter(ctx context.Context, status string) error {
	v.mu.Lock()
	v.filter.Status = status
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

func (v *BookingsView) SetDoctorFilter(ctx context.Context, doctorID int64) error {
	v.mu.Lock()
	v.filter.DoctorID = doctorID
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

// Create posts the dialog payload and prepends the returned row.
func (v *BookingsView) Create(ctx context.Context, input api.BookingInput) (*models.Booking, error) {
	created, err := v.api.CreateBooking(ctx, input)
	if err != nil {
		return nil, err
	}
	v.List.Prepend(*created)
	v.publish(events.EventBookingCreated, created.ID)
	return created, nil
}

// Update saves the dialog payload and refetches the first page so the table
// reflects server-side ordering.
func (v *BookingsView) Update(ctx context.Context, id int64, input api.BookingInput) (*models.Booking, error) {
	updated, err := v.api.UpdateBooking(ctx, id, input)
	if err != nil {
		return nil, err
	}
	v.publish(events.EventBookingUpdated, id)
	if err := v.List.ResetToFirstPage(ctx); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("refresh after update failed")
	}
	return updated, nil
}

// ChangeStatus patches the status inline and refetches the current page.
func (v *BookingsView) ChangeStatus(ctx context.Context, id int64, status string) error {
	if err := v.api.UpdateBookingStatus(ctx, id, status); err != nil {
		return err
	}
	v.publish(events.EventBookingUpdated, id)
	return v.List.Refresh(ctx)
}

// Delete removes the row locally first, then tells the server. A failed
// delete is logged but the row stays gone until the next refresh.
func (v *BookingsView) Delete(ctx context.Context, id int64) {
	v.List.RemoveWhere(func(b models.Booking) bool { return b.ID == id })
	if err := v.api.DeleteBooking(ctx, id); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("delete failed")
		return
	}
	v.publish(events.EventBookingDeleted, id)
}

func (v *BookingsView) publish(event string, id int64) {
	if v.bus == nil {
		return
	}
	_ = v.bus.PublishJSON(event, events.EntityEventPayload{
		Entity: "booking",
		ID:     id,
		At:     time.Now(),
	})
}
