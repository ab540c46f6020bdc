package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/config"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend answers every console call with canned data.
type fakeBackend struct {
	loginErr   error
	extraPerms []string
	self       *models.User
	selfCalls  int

	bookings []models.Booking
	services []models.Service
	users    []models.User
	deleted  []int64
	created  []api.BookingInput

	usersSaved    []api.UserInput
	servicesSaved []api.ServiceInput
	lastFilter    api.ServiceFilter
}

func (f *fakeBackend) Login(_ context.Context, in api.LoginInput) (*api.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	perms := []models.Permission{
		{Name: "reservation.view"},
		{Name: "reservation.delete"},
		{Name: "service.filter.name"},
		{Name: "bonus.view"},
		{Name: "bonus.coefficient.update"},
	}
	for _, p := range f.extraPerms {
		perms = append(perms, models.Permission{Name: p})
	}
	return &api.LoginResult{
		Token: "tok-1",
		User: &models.User{
			ID: 1, Name: "Tural", Surname: "I", Email: in.Email,
			Role: &models.Role{ID: 1, Name: "super_admin", Permissions: perms},
		},
	}, nil
}

func (f *fakeBackend) Logout(context.Context) error { return nil }

func (f *fakeBackend) SelfInfo(context.Context) (*models.User, error) {
	f.selfCalls++
	if f.self != nil {
		return f.self, nil
	}
	return &models.User{ID: 1, Name: "Tural", Surname: "I"}, nil
}

func (f *fakeBackend) ListBookings(context.Context, api.BookingFilter) (*models.Envelope[models.Booking], error) {
	return &models.Envelope[models.Booking]{
		Data: f.bookings,
		Meta: &models.Meta{CurrentPage: 1, LastPage: 1, Total: len(f.bookings)},
	}, nil
}

func (f *fakeBackend) CreateBooking(_ context.Context, in api.BookingInput) (*models.Booking, error) {
	f.created = append(f.created, in)
	return &models.Booking{ID: 100}, nil
}

func (f *fakeBackend) UpdateBooking(_ context.Context, id int64, _ api.BookingInput) (*models.Booking, error) {
	return &models.Booking{ID: id}, nil
}

func (f *fakeBackend) UpdateBookingStatus(context.Context, int64, string) error { return nil }

func (f *fakeBackend) DeleteBooking(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) GetBooking(_ context.Context, id int64) (*models.Booking, error) {
	for _, b := range f.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return &models.Booking{ID: id}, nil
}

func (f *fakeBackend) BookingHoursForDate(context.Context, time.Time) ([]models.BookingTime, error) {
	return []models.BookingTime{
		{ID: 1, Time: "10:00", ReserveCount: 2, IsActive: true},
		{ID: 2, Time: "11:00", ReserveCount: 0, IsActive: true},
	}, nil
}

func (f *fakeBackend) ListAdvanceTransfers(context.Context, api.BookingFilter) (*models.Envelope[models.AdvanceTransfer], error) {
	return &models.Envelope[models.AdvanceTransfer]{}, nil
}

func (f *fakeBackend) ListServices(_ context.Context, filter api.ServiceFilter) (*models.Envelope[models.Service], error) {
	f.lastFilter = filter
	return &models.Envelope[models.Service]{
		Data: f.services,
		Meta: &models.Meta{CurrentPage: 1, LastPage: 1, Total: len(f.services)},
	}, nil
}

func (f *fakeBackend) GetService(_ context.Context, id int64) (*models.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return &s, nil
		}
	}
	return &models.Service{ID: id}, nil
}

func (f *fakeBackend) CreateService(_ context.Context, in api.ServiceInput) (*models.Service, error) {
	f.servicesSaved = append(f.servicesSaved, in)
	return &models.Service{ID: 1}, nil
}

func (f *fakeBackend) UpdateService(_ context.Context, id int64, _ api.ServiceInput) (*models.Service, error) {
	return &models.Service{ID: id}, nil
}

func (f *fakeBackend) DeleteService(context.Context, int64) error { return nil }

func (f *fakeBackend) ListUsers(context.Context, int, int) (*models.Envelope[models.User], error) {
	return &models.Envelope[models.User]{
		Data: f.users,
		Meta: &models.Meta{CurrentPage: 1, LastPage: 1, Total: len(f.users)},
	}, nil
}

func (f *fakeBackend) CreateUser(_ context.Context, in api.UserInput) (*models.User, error) {
	f.usersSaved = append(f.usersSaved, in)
	return &models.User{ID: 9}, nil
}

func (f *fakeBackend) UpdateUser(_ context.Context, id int64, in api.UserInput) (*models.User, error) {
	in.ID = id
	f.usersSaved = append(f.usersSaved, in)
	return &models.User{ID: id}, nil
}

func (f *fakeBackend) DeleteUser(context.Context, int64) error { return nil }

func (f *fakeBackend) ListRoles(context.Context) ([]models.Role, error) {
	return []models.Role{{ID: 1, Name: "super_admin"}, {ID: 2, Name: "doctor"}}, nil
}

func (f *fakeBackend) ListServiceTypes(context.Context, int, int) (*models.Envelope[models.ServiceType], error) {
	return &models.Envelope[models.ServiceType]{}, nil
}

func (f *fakeBackend) CreateServiceType(context.Context, api.ServiceTypeInput) (*models.ServiceType, error) {
	return &models.ServiceType{ID: 1}, nil
}

func (f *fakeBackend) UpdateServiceType(_ context.Context, id int64, _ api.ServiceTypeInput) (*models.ServiceType, error) {
	return &models.ServiceType{ID: id}, nil
}

func (f *fakeBackend) DeleteServiceType(context.Context, int64) error { return nil }

func (f *fakeBackend) ListBookingTimes(context.Context) ([]models.BookingTime, error) {
	return nil, nil
}

func (f *fakeBackend) CreateBookingTime(context.Context, api.BookingTimeInput) (*models.BookingTime, error) {
	return &models.BookingTime{ID: 1}, nil
}

func (f *fakeBackend) UpdateBookingTime(_ context.Context, id int64, _ api.BookingTimeInput) (*models.BookingTime, error) {
	return &models.BookingTime{ID: id}, nil
}

func (f *fakeBackend) DeleteBookingTime(context.Context, int64) error { return nil }

func (f *fakeBackend) ListBonuses(context.Context, time.Time, time.Time) ([]models.Bonus, error) {
	return []models.Bonus{{Doctor: &models.User{Name: "Nigar"}, TotalAmount: 500}}, nil
}

func (f *fakeBackend) GetBonusCoefficient(context.Context) (*models.BonusCoefficient, error) {
	return &models.BonusCoefficient{Value: 5}, nil
}

func (f *fakeBackend) UpdateBonusCoefficient(context.Context, float64) error { return nil }

func (f *fakeBackend) ListExpenses(context.Context, int, int, time.Time, time.Time) (*models.Envelope[models.Expense], error) {
	return &models.Envelope[models.Expense]{}, nil
}

func (f *fakeBackend) CreateExpense(context.Context, api.ExpenseInput) (*models.Expense, error) {
	return &models.Expense{ID: 1}, nil
}

func (f *fakeBackend) UpdateExpense(_ context.Context, id int64, _ api.ExpenseInput) (*models.Expense, error) {
	return &models.Expense{ID: id}, nil
}

func (f *fakeBackend) DeleteExpense(context.Context, int64) error { return nil }

func (f *fakeBackend) ListLogs(context.Context, int, int, time.Time, time.Time) (*models.Envelope[models.LogEntry], error) {
	return &models.Envelope[models.LogEntry]{}, nil
}

func (f *fakeBackend) SearchDoctors(context.Context, string) ([]models.User, error) {
	return nil, nil
}

func (f *fakeBackend) SearchServiceTypes(context.Context, string) ([]models.ServiceType, error) {
	return nil, nil
}

func runScript(t *testing.T, backend *fakeBackend, script string) string {
	t.Helper()

	cfg := &config.Config{}
	bus := events.NewEventBus()
	sess := session.NewManager(session.NewMemoryRepository(), bus, nil)

	var out bytes.Buffer
	c := New(cfg, backend, sess, nil, nil, bus, nil, strings.NewReader(script), &out)
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestLoginBuildsPermittedTabs(t *testing.T) {
	out := runScript(t, &fakeBackend{}, "login admin@clinic.az pass\ntabs\nquit\n")

	assert.Contains(t, out, "Signed in as Tural I")
	assert.Contains(t, out, "bookings")
	assert.Contains(t, out, "services")
	assert.Contains(t, out, "bonuses")
	assert.NotContains(t, out, "expenses", "no expense.view permission")
	assert.NotContains(t, out, "Staff", "no user.view permission")
}

func TestCommandsRequireSession(t *testing.T) {
	out := runScript(t, &fakeBackend{}, "tabs\nquit\n")
	assert.Contains(t, out, "sign in first")
}

func TestOpenBookingsRendersTable(t *testing.T) {
	backend := &fakeBackend{bookings: []models.Booking{{
		ID:              12,
		Status:          models.StatusArrived,
		ReservationDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Time:            "09:30",
		ClientName:      "Leyla",
		Phone:           "501234567",
		AdvanceAmount:   "50",
	}}}

	out := runScript(t, backend, "login a@b.az p\nopen bookings\nquit\n")
	assert.Contains(t, out, "Leyla")
	assert.Contains(t, out, "2026-03-01")
	assert.Contains(t, out, "arrived [success]")
	assert.Contains(t, out, "50.00 AZN")
	assert.Contains(t, out, "1 total")
}

func TestDeleteGoesThroughView(t *testing.T) {
	backend := &fakeBackend{bookings: []models.Booking{{ID: 7, ClientName: "Aysel"}}}
	out := runScript(t, backend, "login a@b.az p\nopen bookings\ndelete 7\nquit\n")

	assert.Equal(t, []int64{7}, backend.deleted)
	assert.NotContains(t, strings.SplitAfter(out, "delete")[len(strings.SplitAfter(out, "delete"))-1], "Aysel",
		"row is gone from the rendered table after delete")
}

func TestBonusTabCoefficient(t *testing.T) {
	out := runScript(t, &fakeBackend{}, "login a@b.az p\nopen bonuses\ncoef 10\nquit\n")
	assert.Contains(t, out, "Nigar")
	assert.Contains(t, out, "coefficient: 10")
	assert.Contains(t, out, "50.00", "500 divided by the new coefficient")
}

func TestBookingAddGoesThroughForm(t *testing.T) {
	backend := &fakeBackend{}
	runScript(t, backend, "login a@b.az p\nopen bookings\nadd 2026-09-01 1 050-123-45-67 Ayan M\nquit\n")

	require.Len(t, backend.created, 1)
	in := backend.created[0]
	assert.Equal(t, "Ayan M", in.ClientName)
	assert.Equal(t, "0501234567", in.Phone, "phone is stripped to digits")
	assert.Equal(t, "2026-09-01", in.ReservationDate)
	assert.Equal(t, int64(1), in.TimeID)
}

func TestBookingAddRejectsFullSlot(t *testing.T) {
	backend := &fakeBackend{}
	out := runScript(t, backend, "login a@b.az p\nopen bookings\nadd 2026-09-01 2 0501234567 Ayan\nquit\n")

	assert.Contains(t, out, "slot unavailable")
	assert.Empty(t, backend.created)
}

type fakeCatalog struct{}

func (fakeCatalog) Catalog(context.Context, string) ([]models.CatalogEntry, error) {
	return []models.CatalogEntry{{RefID: 3, Name: "Dr. Nigar"}}, nil
}

func TestDoctorsCatalogCommand(t *testing.T) {
	bus := events.NewEventBus()
	sess := session.NewManager(session.NewMemoryRepository(), bus, nil)

	var out bytes.Buffer
	c := New(&config.Config{}, &fakeBackend{}, sess, nil, fakeCatalog{}, bus, nil,
		strings.NewReader("login a@b.az p\ndoctors\nquit\n"), &out)
	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Dr. Nigar")
}

func TestRestoredSessionRefetchesSelf(t *testing.T) {
	backend := &fakeBackend{self: &models.User{
		ID: 1, Name: "Tural", Surname: "I",
		Role: &models.Role{ID: 1, Name: "super_admin", Permissions: []models.Permission{
			{Name: "reservation.view"},
			{Name: "expense.view"},
		}},
	}}
	bus := events.NewEventBus()
	sess := session.NewManager(session.NewMemoryRepository(), bus, nil)
	// stale snapshot from a previous run, without expense.view
	require.NoError(t, sess.Establish(context.Background(), "tok-1", &models.User{
		ID: 1, Name: "Tural", Surname: "I",
		Role: &models.Role{ID: 1, Name: "super_admin", Permissions: []models.Permission{
			{Name: "reservation.view"},
		}},
	}))

	var out bytes.Buffer
	c := New(&config.Config{}, backend, sess, nil, nil, bus, nil,
		strings.NewReader("tabs\nquit\n"), &out)
	require.NoError(t, c.Run(context.Background()))

	assert.Equal(t, 1, backend.selfCalls)
	assert.Contains(t, out.String(), "Welcome back")
	assert.Contains(t, out.String(), "expenses", "tab set follows the refreshed permission set")
}

func TestUsersAddAndRoleChangeGoThroughForm(t *testing.T) {
	backend := &fakeBackend{
		extraPerms: []string{"user.view", "user.create", "user.update"},
		users: []models.User{{
			ID: 5, Name: "Aysel", Surname: "M", Email: "aysel@clinic.az",
			Role: &models.Role{ID: 2, Name: "doctor"},
		}},
	}
	out := runScript(t, backend,
		"login a@b.az p\nopen users\nadd new@clinic.az 2 secret12 Nigar H\nsetrole 5 1\nquit\n")

	require.Len(t, backend.usersSaved, 2)
	created := backend.usersSaved[0]
	assert.Equal(t, "new@clinic.az", created.Email)
	assert.Equal(t, int64(2), created.RoleID)
	assert.Equal(t, "Nigar", created.Name)
	assert.Equal(t, "secret12", created.PasswordConfirmation)

	updated := backend.usersSaved[1]
	assert.Equal(t, int64(5), updated.ID)
	assert.Equal(t, int64(1), updated.RoleID)
	assert.Empty(t, updated.Password, "password is not resent on a role change")
	assert.Contains(t, out, "Doctor", "roles render in the staff table")
}

func TestUsersAddRequiresPermission(t *testing.T) {
	backend := &fakeBackend{extraPerms: []string{"user.view"}}
	out := runScript(t, backend, "login a@b.az p\nopen users\nadd new@clinic.az 2 secret12 Nigar H\nquit\n")

	assert.Contains(t, out, "no permission")
	assert.Empty(t, backend.usersSaved)
}

func TestServiceAddGoesThroughForm(t *testing.T) {
	backend := &fakeBackend{extraPerms: []string{"service.create"}}
	runScript(t, backend, "login a@b.az p\nopen services\nadd cash 50 1,3 0501234567 Leyla A\nquit\n")

	require.Len(t, backend.servicesSaved, 1)
	in := backend.servicesSaved[0]
	assert.Equal(t, "cash", in.PaymentType)
	assert.Equal(t, "50", in.Amount)
	assert.Equal(t, []int64{1, 3}, in.ServiceTypeIDs)
	assert.Equal(t, "Leyla A", in.ClientName)
}

func TestServiceTypeFilterCommand(t *testing.T) {
	backend := &fakeBackend{extraPerms: []string{"service.filter.type"}}
	runScript(t, backend, "login a@b.az p\nopen services\ntype 7\nquit\n")
	assert.Equal(t, int64(7), backend.lastFilter.ServiceTypeID)
}

func TestUnknownTab(t *testing.T) {
	out := runScript(t, &fakeBackend{}, "login a@b.az p\nopen nonsense\nquit\n")
	assert.Contains(t, out, "no such tab")
}
