package forms

import (
	"context"
	"strings"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// SlotOption is one selectable reservation time in the booking dialog.
type SlotOption struct {
	ID        int64
	Time      string
	Remaining int
	Disabled  bool
}

// BookingForm is the reservation dialog. Picking a date reloads the slot
// dropdown with that day's remaining capacities.
type BookingForm struct {
	ID            int64
	ClientName    string
	Phone         string
	Date          time.Time
	TimeID        int64
	DoctorID      int64
	AdvanceAmount string
	Status        string
	Note          string

	slots []SlotOption
}

func EditBooking(b *models.Booking, timeID int64) BookingForm {
	f := BookingForm{
		ID:            b.ID,
		ClientName:    b.ClientName,
		Phone:         b.Phone,
		Date:          b.ReservationDate,
		TimeID:        timeID,
		AdvanceAmount: b.AdvanceAmount,
		Status:        b.Status,
		Note:          b.Note,
	}
	if b.Doctor != nil {
		f.DoctorID = b.Doctor.ID
	}
	return f
}

func (f *BookingForm) IsEdit() bool { return f.ID > 0 }

type slotLoader interface {
	BookingHoursForDate(ctx context.Context, date time.Time) ([]models.BookingTime, error)
}

// LoadSlots fetches the day's slot grid. Inactive or fully booked slots stay
// visible but disabled; the slot the row already occupies remains selectable
// on edit even when it shows no remaining capacity.
func (f *BookingForm) LoadSlots(ctx context.Context, client slotLoader) ([]SlotOption, error) {
	times, err := client.BookingHoursForDate(ctx, f.Date)
	if err != nil {
		return nil, err
	}

	opts := make([]SlotOption, 0, len(times))
	for _, t := range times {
		disabled := !t.IsActive || t.ReserveCount <= 0
		if f.IsEdit() && t.ID == f.TimeID {
			disabled = false
		}
		opts = append(opts, SlotOption{
			ID:        t.ID,
			Time:      t.Time,
			Remaining: t.ReserveCount,
			Disabled:  disabled,
		})
	}
	f.slots = opts
	return opts, nil
}

func (f *BookingForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.ClientName) == "" {
		errs["client_name"] = "required"
	}
	if format.DigitsOnly(f.Phone) == "" {
		errs["phone"] = "required"
	}
	if f.Date.IsZero() {
		errs["date"] = "required"
	}
	if f.TimeID <= 0 {
		errs["time"] = "required"
	}
	for _, s := range f.slots {
		if s.ID == f.TimeID && s.Disabled {
			errs["time"] = "slot unavailable"
		}
	}
	if f.AdvanceAmount != "" && !validAmount(f.AdvanceAmount) {
		errs["advance_amount"] = "invalid amount"
	}
	return errs
}

func (f *BookingForm) input() api.BookingInput {
	return api.BookingInput{
		ID:              f.ID,
		ClientName:      strings.TrimSpace(f.ClientName),
		Phone:           format.DigitsOnly(f.Phone),
		ReservationDate: format.Date(f.Date),
		TimeID:          f.TimeID,
		DoctorID:        f.DoctorID,
		AdvanceAmount:   f.AdvanceAmount,
		Status:          f.Status,
		Note:            strings.TrimSpace(f.Note),
	}
}

type bookingSaver interface {
	Create(ctx context.Context, input api.BookingInput) (*models.Booking, error)
	Update(ctx context.Context, id int64, input api.BookingInput) (*models.Booking, error)
}

func (f *BookingForm) Submit(ctx context.Context, view bookingSaver) (*models.Booking, error) {
	if errs := f.Validate(); !errs.Ok() {
		return nil, errs
	}
	if f.IsEdit() {
		return view.Update(ctx, f.ID, f.input())
	}
	return view.Create(ctx, f.input())
}
