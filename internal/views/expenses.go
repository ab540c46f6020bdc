package views

import (
	"context"
	"sync"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/domain"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/rs/zerolog"
)

type ExpensesAPI interface {
	ListExpenses(ctx context.Context, page, size int, from, to time.Time) (*models.Envelope[models.Expense], error)
	CreateExpense(ctx context.Context, input api.ExpenseInput) (*models.Expense, error)
	UpdateExpense(ctx context.Context, id int64, input api.ExpenseInput) (*models.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

// ExpensesView is the outgoings table, scoped by a date range.
type ExpensesView struct {
	List *ListState[models.Expense]

	api ExpensesAPI
	bus domain.EventPublisher
	log zerolog.Logger

	mu       sync.Mutex
	from, to time.Time
}

func NewExpensesView(client ExpensesAPI, bus domain.EventPublisher, logger *zerolog.Logger) *ExpensesView {
	v := &ExpensesView{
		api:  client,
		bus:  bus,
		from: today(),
		to:   today(),
	}
	if logger != nil {
		v.log = logger.With().Str("view", "expenses").Logger()
	}
	v.List = newListState("expenses", v.fetch, logger)
	return v
}

func (v *ExpensesView) fetch(ctx context.Context, page int) ([]models.Expense, *models.Meta, error) {
	v.mu.Lock()
	from, to := v.from, v.to
	v.mu.Unlock()

	env, err := v.api.ListExpenses(ctx, page, models.DefaultPageSize, from, to)
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Meta, nil
}

func (v *ExpensesView) SetDateRange(ctx context.Context, from, to time.Time) error {
	v.mu.Lock()
	v.from, v.to = from, to
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

func (v *ExpensesView) Create(ctx context.Context, input api.ExpenseInput) (*models.Expense, error) {
	created, err := v.api.CreateExpense(ctx, input)
	if err != nil {
		return nil, err
	}
	v.List.Prepend(*created)
	return created, nil
}

func (v *ExpensesView) Update(ctx context.Context, id int64, input api.ExpenseInput) (*models.Expense, error) {
	updated, err := v.api.UpdateExpense(ctx, id, input)
	if err != nil {
		return nil, err
	}
	if err := v.List.ResetToFirstPage(ctx); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("refresh after update failed")
	}
	return updated, nil
}

// Delete drops the row locally before the server answers; the outcome of the
// API call never restores it.
func (v *ExpensesView) Delete(ctx context.Context, id int64) {
	v.List.RemoveWhere(func(e models.Expense) bool { return e.ID == id })
	if err := v.api.DeleteExpense(ctx, id); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("delete failed")
		return
	}
	if v.bus != nil {
		_ = v.bus.PublishJSON(events.EventExpenseDeleted, events.EntityEventPayload{
			Entity: "expense",
			ID:     id,
			At:     time.Now(),
		})
	}
}

// Total sums the current page for the footer row.
func (v *ExpensesView) Total() float64 {
	var sum float64
	for _, e := range v.List.Rows() {
		sum += parseAmount(e.Amount)
	}
	return sum
}
