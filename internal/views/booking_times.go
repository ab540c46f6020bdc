package views

import (
	"context"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/rs/zerolog"
)

type BookingTimesAPI interface {
	ListBookingTimes(ctx context.Context) ([]models.BookingTime, error)
	CreateBookingTime(ctx context.Context, input api.BookingTimeInput) (*models.BookingTime, error)
	UpdateBookingTime(ctx context.Context, id int64, input api.BookingTimeInput) (*models.BookingTime, error)
	DeleteBookingTime(ctx context.Context, id int64) error
}

// BookingTimesView manages the daily slot grid. The collection is small and
// unpaginated; the client keeps it chronologically sorted.
type BookingTimesView struct {
	List *ListState[models.BookingTime]

	api BookingTimesAPI
	log zerolog.Logger
}

func NewBookingTimesView(client BookingTimesAPI, logger *zerolog.Logger) *BookingTimesView {
	v := &BookingTimesView{api: client}
	if logger != nil {
		v.log = logger.With().Str("view", "booking_times").Logger()
	}
	v.List = newListState("booking_times", v.fetch, logger)
	return v
}

func (v *BookingTimesView) fetch(ctx context.Context, _ int) ([]models.BookingTime, *models.Meta, error) {
	slots, err := v.api.ListBookingTimes(ctx)
	if err != nil {
		return nil, nil, err
	}
	return slots, nil, nil
}

func (v *BookingTimesView) Create(ctx context.Context, input api.BookingTimeInput) (*models.BookingTime, error) {
	created, err := v.api.CreateBookingTime(ctx, input)
	if err != nil {
		return nil, err
	}
	// Insertion position depends on the slot's time, so refetch instead of
	// prepending.
	if err := v.List.Refresh(ctx); err != nil {
		v.log.Error().Err(err).Msg("refresh after create failed")
	}
	return created, nil
}

func (v *BookingTimesView) Update(ctx context.Context, id int64, input api.BookingTimeInput) (*models.BookingTime, error) {
	updated, err := v.api.UpdateBookingTime(ctx, id, input)
	if err != nil {
		return nil, err
	}
	if err := v.List.Refresh(ctx); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("refresh after update failed")
	}
	return updated, nil
}

func (v *BookingTimesView) Delete(ctx context.Context, id int64) {
	v.List.RemoveWhere(func(t models.BookingTime) bool { return t.ID == id })
	if err := v.api.DeleteBookingTime(ctx, id); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("delete failed")
	}
}
