package views

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingsAPI struct {
	mu        sync.Mutex
	listCalls []api.BookingFilter
	deleteErr error
	deleted   []int64
	statuses  map[int64]string
	rows      []models.Booking
}

func (f *fakeBookingsAPI) ListBookings(_ context.Context, filter api.BookingFilter) (*models.Envelope[models.Booking], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filter)
	return &models.Envelope[models.Booking]{
		Data: f.rows,
		Meta: &models.Meta{CurrentPage: filter.Page, Total: len(f.rows)},
	}, nil
}

func (f *fakeBookingsAPI) CreateBooking(_ context.Context, input api.BookingInput) (*models.Booking, error) {
	return &models.Booking{ID: 99, ClientName: input.ClientName}, nil
}

func (f *fakeBookingsAPI) UpdateBooking(_ context.Context, id int64, input api.BookingInput) (*models.Booking, error) {
	return &models.Booking{ID: id, ClientName: input.ClientName}, nil
}

func (f *fakeBookingsAPI) UpdateBookingStatus(_ context.Context, id int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = map[int64]string{}
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeBookingsAPI) DeleteBooking(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func (f *fakeBookingsAPI) calls() []api.BookingFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.BookingFilter, len(f.listCalls))
	copy(out, f.listCalls)
	return out
}

func TestListStateLifecycle(t *testing.T) {
	fake := &fakeBookingsAPI{rows: []models.Booking{{ID: 1}, {ID: 2}}}
	v := NewBookingsView(fake, nil, nil, nil, time.Millisecond)

	assert.Equal(t, StateIdle, v.List.State())

	require.NoError(t, v.List.Refresh(context.Background()))
	assert.Equal(t, StateLoaded, v.List.State())
	assert.Len(t, v.List.Rows(), 2)
	assert.Equal(t, 2, v.List.Meta().Total)
}

func TestListStateErrorKeepsRows(t *testing.T) {
	calls := 0
	ls := newListState("t", func(context.Context, int) ([]int, *models.Meta, error) {
		calls++
		if calls > 1 {
			return nil, nil, errors.New("boom")
		}
		return []int{1, 2, 3}, nil, nil
	}, nil)

	require.NoError(t, ls.Refresh(context.Background()))
	require.Error(t, ls.Refresh(context.Background()))

	assert.Equal(t, StateError, ls.State())
	assert.Len(t, ls.Rows(), 3, "stale rows survive a failed refresh")
}

func TestPageEventIsZeroIndexed(t *testing.T) {
	fake := &fakeBookingsAPI{}
	v := NewBookingsView(fake, nil, nil, nil, time.Millisecond)

	require.NoError(t, v.List.PageEvent(context.Background(), 2))

	calls := fake.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 3, calls[0].Page, "paginator page 2 maps to server page 3")
}

func TestDebouncedFilterCoalesces(t *testing.T) {
	fake := &fakeBookingsAPI{}
	v := NewBookingsView(fake, nil, nil, nil, 30*time.Millisecond)

	v.SetClientNameFilter(context.Background(), "an")
	v.SetClientNameFilter(context.Background(), "ana")
	v.SetClientNameFilter(context.Background(), "anar")

	assert.Empty(t, fake.calls(), "nothing fires inside the quiet window")

	require.Eventually(t, func() bool {
		return len(fake.calls()) == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(60 * time.Millisecond)
	calls := fake.calls()
	require.Len(t, calls, 1, "three keystrokes produce exactly one fetch")
	assert.Equal(t, "anar", calls[0].ClientName)
	assert.Equal(t, 1, calls[0].Page)
}

func TestOptimisticDeleteSurvivesAPIFailure(t *testing.T) {
	fake := &fakeBookingsAPI{
		rows:      []models.Booking{{ID: 1}, {ID: 2}},
		deleteErr: errors.New("500"),
	}
	v := NewBookingsView(fake, nil, nil, nil, time.Millisecond)
	require.NoError(t, v.List.Refresh(context.Background()))

	v.Delete(context.Background(), 1)

	rows := v.List.Rows()
	require.Len(t, rows, 1, "row is gone even though the server call failed")
	assert.Equal(t, int64(2), rows[0].ID)
	assert.Equal(t, []int64{1}, fake.deleted)
}

func TestCreatePrependsUpdateRefetchesFirstPage(t *testing.T) {
	fake := &fakeBookingsAPI{rows: []models.Booking{{ID: 1}}}
	v := NewBookingsView(fake, nil, nil, nil, time.Millisecond)
	require.NoError(t, v.List.PageEvent(context.Background(), 4)) // server page 5

	created, err := v.Create(context.Background(), api.BookingInput{ClientName: "Leyla"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, v.List.Rows()[0].ID, "created row lands on top without a fetch")

	_, err = v.Update(context.Background(), 1, api.BookingInput{ClientName: "Leyla"})
	require.NoError(t, err)

	calls := fake.calls()
	last := calls[len(calls)-1]
	assert.Equal(t, 1, last.Page, "update jumps the table back to page 1")
}

func TestServicePermissionGatedFilters(t *testing.T) {
	fake := &fakeServicesAPI{}
	perms := []string{"service.filter.name"}
	v := NewServicesView(fake, perms, nil, nil, 10*time.Millisecond)

	v.SetPhoneFilter(context.Background(), "55")
	require.NoError(t, v.SetStatusFilter(context.Background(), "new"))
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, fake.calls(), "setters without the matching capability do nothing")

	v.SetClientNameFilter(context.Background(), "Aysel")
	require.Eventually(t, func() bool {
		return len(fake.calls()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Aysel", fake.calls()[0].ClientName)

	assert.True(t, v.HasFilters())
	assert.False(t, NewServicesView(fake, nil, nil, nil, time.Millisecond).HasFilters())
}

type fakeServicesAPI struct {
	mu        sync.Mutex
	listCalls []api.ServiceFilter
}

func (f *fakeServicesAPI) ListServices(_ context.Context, filter api.ServiceFilter) (*models.Envelope[models.Service], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls = append(f.listCalls, filter)
	return &models.Envelope[models.Service]{}, nil
}

func (f *fakeServicesAPI) CreateService(context.Context, api.ServiceInput) (*models.Service, error) {
	return &models.Service{ID: 1}, nil
}

func (f *fakeServicesAPI) UpdateService(_ context.Context, id int64, _ api.ServiceInput) (*models.Service, error) {
	return &models.Service{ID: id}, nil
}

func (f *fakeServicesAPI) DeleteService(context.Context, int64) error { return nil }

func (f *fakeServicesAPI) calls() []api.ServiceFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]api.ServiceFilter, len(f.listCalls))
	copy(out, f.listCalls)
	return out
}

func TestServiceTotals(t *testing.T) {
	fake := &fakeServicesAPI{}
	v := NewServicesView(fake, nil, nil, nil, time.Millisecond)
	v.List.rows = []models.Service{
		{Amount: "100.50", CashAmount: "100.50", CardAmount: "0"},
		{Amount: "49.50", CashAmount: "9.50", CardAmount: "40"},
		{Amount: "bad", CashAmount: "", CardAmount: ""},
	}

	amount, cash, card := v.Totals()
	assert.InDelta(t, 150.0, amount, 0.001)
	assert.InDelta(t, 110.0, cash, 0.001)
	assert.InDelta(t, 40.0, card, 0.001)
}

type fakeBonusesAPI struct {
	mu          sync.Mutex
	coefficient float64
	patched     []float64
	bonuses     []models.Bonus
}

func (f *fakeBonusesAPI) ListBonuses(context.Context, time.Time, time.Time) ([]models.Bonus, error) {
	return f.bonuses, nil
}

func (f *fakeBonusesAPI) GetBonusCoefficient(context.Context) (*models.BonusCoefficient, error) {
	return &models.BonusCoefficient{Value: f.coefficient}, nil
}

func (f *fakeBonusesAPI) UpdateBonusCoefficient(_ context.Context, value float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patched = append(f.patched, value)
	return nil
}

func (f *fakeBonusesAPI) patchedValues() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float64, len(f.patched))
	copy(out, f.patched)
	return out
}

func TestBonusViewDividesByCoefficient(t *testing.T) {
	fake := &fakeBonusesAPI{
		coefficient: 4,
		bonuses: []models.Bonus{
			{Doctor: &models.User{Name: "Nigar", Surname: "Aliyeva"}, TotalAmount: 1000},
		},
	}
	v := NewBonusesView(fake, []string{"bonus.coefficient.update"}, nil, nil)
	require.NoError(t, v.Refresh(context.Background()))

	rows := v.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "Nigar Aliyeva", rows[0].Doctor)
	assert.InDelta(t, 250.0, rows[0].Bonus, 0.001)
}

func TestBonusCoefficientChangeRecomputesAndSaves(t *testing.T) {
	fake := &fakeBonusesAPI{
		coefficient: 2,
		bonuses:     []models.Bonus{{Doctor: &models.User{Name: "A"}, TotalAmount: 100}},
	}
	v := NewBonusesView(fake, []string{"bonus.coefficient.update"}, nil, nil)
	require.NoError(t, v.Refresh(context.Background()))

	v.SetCoefficient(context.Background(), 5)
	assert.InDelta(t, 20.0, v.Rows()[0].Bonus, 0.001, "new divisor applies without a refetch")

	require.Eventually(t, func() bool {
		return len(fake.patchedValues()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 5.0, fake.patchedValues()[0])

	// Same value again must not fire another save.
	v.SetCoefficient(context.Background(), 5)
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, fake.patchedValues(), 1)
}

func TestBonusCoefficientEditRequiresPermission(t *testing.T) {
	fake := &fakeBonusesAPI{coefficient: 2}
	v := NewBonusesView(fake, nil, nil, nil)
	require.NoError(t, v.Refresh(context.Background()))

	v.SetCoefficient(context.Background(), 9)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, fake.patchedValues())
	assert.Equal(t, 2.0, v.Coefficient())
}

func TestRenderActivityTree(t *testing.T) {
	lines := RenderActivityTree(map[string]any{
		"status": "accepted",
		"attributes": map[string]any{
			"amount": "150",
			"old":    map[string]any{"amount": "100"},
		},
	})

	assert.Equal(t, []string{
		"attributes:",
		"  amount: 150",
		"  old:",
		"    amount: 100",
		"status: accepted",
	}, lines)
}

func TestBookingSeverity(t *testing.T) {
	assert.Equal(t, SeverityDanger, BookingSeverity(models.StatusRejected))
	assert.Equal(t, SeveritySuccess, BookingSeverity(models.StatusArrived))
	assert.Equal(t, SeverityInfo, BookingSeverity("weird"))
}
