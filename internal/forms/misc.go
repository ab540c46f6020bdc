package forms

import (
	"context"
	"strings"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// ExpenseForm is the outgoing payment dialog.
type ExpenseForm struct {
	ID          int64
	Name        string
	Description string
	Amount      string
}

func EditExpense(e *models.Expense) ExpenseForm {
	return ExpenseForm{ID: e.ID, Name: e.Name, Description: e.Description, Amount: e.Amount}
}

func (f *ExpenseForm) IsEdit() bool { return f.ID > 0 }

func (f *ExpenseForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "required"
	}
	if !validAmount(f.Amount) {
		errs["amount"] = "invalid amount"
	}
	return errs
}

type expenseSaver interface {
	Create(ctx context.Context, input api.ExpenseInput) (*models.Expense, error)
	Update(ctx context.Context, id int64, input api.ExpenseInput) (*models.Expense, error)
}

func (f *ExpenseForm) Submit(ctx context.Context, view expenseSaver) (*models.Expense, error) {
	if errs := f.Validate(); !errs.Ok() {
		return nil, errs
	}
	in := api.ExpenseInput{
		ID:          f.ID,
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Amount:      f.Amount,
	}
	if f.IsEdit() {
		return view.Update(ctx, f.ID, in)
	}
	return view.Create(ctx, in)
}

// ServiceTypeForm edits one price-list entry.
type ServiceTypeForm struct {
	ID           int64
	Name         string
	Price        string
	ShowCustomer bool
}

func (f *ServiceTypeForm) IsEdit() bool { return f.ID > 0 }

func (f *ServiceTypeForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "required"
	}
	if !validAmount(f.Price) {
		errs["price"] = "invalid price"
	}
	return errs
}

type serviceTypeSaver interface {
	Create(ctx context.Context, input api.ServiceTypeInput) (*models.ServiceType, error)
	Update(ctx context.Context, id int64, input api.ServiceTypeInput) (*models.ServiceType, error)
}

func (f *ServiceTypeForm) Submit(ctx context.Context, view serviceTypeSaver) (*models.ServiceType, error) {
	if errs := f.Validate(); !errs.Ok() {
		return nil, errs
	}
	in := api.ServiceTypeInput{
		ID:           f.ID,
		Name:         strings.TrimSpace(f.Name),
		Price:        f.Price,
		ShowCustomer: f.ShowCustomer,
	}
	if f.IsEdit() {
		return view.Update(ctx, f.ID, in)
	}
	return view.Create(ctx, in)
}

// BookingTimeForm edits one slot of the daily grid.
type BookingTimeForm struct {
	ID           int64
	Time         string
	ReserveCount int
	IsActive     bool
}

func (f *BookingTimeForm) IsEdit() bool { return f.ID > 0 }

func (f *BookingTimeForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if !format.ValidSlot(f.Time) {
		errs["time"] = "must be HH:MM"
	}
	if f.ReserveCount < 0 {
		errs["reserve_count"] = "must not be negative"
	}
	return errs
}

type bookingTimeSaver interface {
	Create(ctx context.Context, input api.BookingTimeInput) (*models.BookingTime, error)
	Update(ctx context.Context, id int64, input api.BookingTimeInput) (*models.BookingTime, error)
}

func (f *BookingTimeForm) Submit(ctx context.Context, view bookingTimeSaver) (*models.BookingTime, error) {
	if errs := f.Validate(); !errs.Ok() {
		return nil, errs
	}
	in := api.BookingTimeInput{
		ID:           f.ID,
		Time:         f.Time,
		ReserveCount: f.ReserveCount,
		IsActive:     f.IsActive,
	}
	if f.IsEdit() {
		return view.Update(ctx, f.ID, in)
	}
	return view.Create(ctx, in)
}
