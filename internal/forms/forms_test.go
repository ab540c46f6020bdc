package forms

import (
	"context"
	"testing"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFormValidation(t *testing.T) {
	f := UserForm{}
	errs := f.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "surname")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "role")
	assert.Contains(t, errs, "password")

	f = UserForm{
		Name:                 "Aysel",
		Surname:              "Mammadova",
		Email:                "aysel@clinic.az",
		RoleID:               2,
		Password:             "secret1",
		PasswordConfirmation: "secret2",
	}
	errs = f.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs, "password_confirmation")

	f.PasswordConfirmation = "secret1"
	assert.True(t, f.Validate().Ok())
}

func TestUserFormEditSkipsPasswordRequirement(t *testing.T) {
	f := EditUser(&models.User{
		ID: 7, Name: "Aysel", Surname: "Mammadova", Email: "aysel@clinic.az",
		Role: &models.Role{ID: 3},
	})
	assert.True(t, f.IsEdit())
	assert.True(t, f.Validate().Ok(), "existing users keep their password when the field is blank")
}

type recordingUserSaver struct {
	created *api.UserInput
	updated *api.UserInput
}

func (r *recordingUserSaver) Create(_ context.Context, in api.UserInput) (*models.User, error) {
	r.created = &in
	return &models.User{ID: 1}, nil
}

func (r *recordingUserSaver) Update(_ context.Context, id int64, in api.UserInput) (*models.User, error) {
	r.updated = &in
	return &models.User{ID: id}, nil
}

func TestUserFormSubmitBranchesOnID(t *testing.T) {
	saver := &recordingUserSaver{}
	f := UserForm{
		Name: "Aysel", Surname: "M", Email: "a@b.az", RoleID: 1,
		Password: "x", PasswordConfirmation: "x",
	}
	_, err := f.Submit(context.Background(), saver)
	require.NoError(t, err)
	require.NotNil(t, saver.created)
	assert.Nil(t, saver.updated)

	f.ID = 5
	_, err = f.Submit(context.Background(), saver)
	require.NoError(t, err)
	require.NotNil(t, saver.updated)
}

func TestUserFormSubmitRejectsInvalid(t *testing.T) {
	saver := &recordingUserSaver{}
	f := UserForm{}
	_, err := f.Submit(context.Background(), saver)
	require.Error(t, err)
	assert.Nil(t, saver.created)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "email")
}

type fakeSlotLoader struct{ times []models.BookingTime }

func (f *fakeSlotLoader) BookingHoursForDate(context.Context, time.Time) ([]models.BookingTime, error) {
	return f.times, nil
}

func TestBookingFormSlotDerivation(t *testing.T) {
	loader := &fakeSlotLoader{times: []models.BookingTime{
		{ID: 1, Time: "09:00", ReserveCount: 2, IsActive: true},
		{ID: 2, Time: "09:30", ReserveCount: 0, IsActive: true},
		{ID: 3, Time: "10:00", ReserveCount: 5, IsActive: false},
	}}

	f := BookingForm{Date: time.Now()}
	opts, err := f.LoadSlots(context.Background(), loader)
	require.NoError(t, err)
	require.Len(t, opts, 3)
	assert.False(t, opts[0].Disabled)
	assert.True(t, opts[1].Disabled, "full slot is disabled")
	assert.True(t, opts[2].Disabled, "inactive slot is disabled")
}

func TestBookingFormEditKeepsOwnSlotSelectable(t *testing.T) {
	loader := &fakeSlotLoader{times: []models.BookingTime{
		{ID: 2, Time: "09:30", ReserveCount: 0, IsActive: true},
	}}

	f := EditBooking(&models.Booking{ID: 4, ClientName: "Leyla", Phone: "501234567",
		ReservationDate: time.Now()}, 2)
	opts, err := f.LoadSlots(context.Background(), loader)
	require.NoError(t, err)
	assert.False(t, opts[0].Disabled, "the slot the booking already holds stays open on edit")
	assert.True(t, f.Validate().Ok())
}

func TestBookingFormRejectsDisabledSlot(t *testing.T) {
	loader := &fakeSlotLoader{times: []models.BookingTime{
		{ID: 2, Time: "09:30", ReserveCount: 0, IsActive: true},
	}}

	f := BookingForm{ClientName: "Leyla", Phone: "50 123 45 67", Date: time.Now(), TimeID: 2}
	_, err := f.LoadSlots(context.Background(), loader)
	require.NoError(t, err)

	errs := f.Validate()
	assert.Equal(t, "slot unavailable", errs["time"])
}

func TestServiceFormMixedSplitMustAddUp(t *testing.T) {
	f := ServiceForm{
		ClientName: "Leyla", Phone: "501234567",
		ServiceTypeIDs: []int64{1},
		Amount:         "150", PaymentType: PaymentMixed,
		CashAmount: "100", CardAmount: "40",
	}
	errs := f.Validate()
	assert.Equal(t, "cash and card must add up to the total", errs["split"])

	f.CardAmount = "50"
	assert.True(t, f.Validate().Ok())
}

func TestServiceFormCashFillsSplitFromTotal(t *testing.T) {
	f := ServiceForm{
		ClientName: "Leyla", Phone: "501234567",
		ServiceTypeIDs: []int64{1},
		Amount:         "80", PaymentType: PaymentCash,
	}
	in := f.input()
	assert.Equal(t, "80", in.CashAmount)
	assert.Empty(t, in.CardAmount)
}

func TestServiceFormRejectNeedsComment(t *testing.T) {
	f := ServiceForm{
		ClientName: "Leyla", Phone: "501234567",
		ServiceTypeIDs: []int64{1},
		Amount:         "80", PaymentType: PaymentCash,
		Status: "rejected",
	}
	assert.Contains(t, f.Validate(), "reject_comment")

	f.RejectComment = "duplicate entry"
	assert.True(t, f.Validate().Ok())
}

func TestExpenseFormValidation(t *testing.T) {
	f := ExpenseForm{Name: " ", Amount: "0"}
	errs := f.Validate()
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "amount")

	f = ExpenseForm{Name: "Gloves", Amount: "12.505"}
	assert.Contains(t, f.Validate(), "amount", "more than two fraction digits")

	f.Amount = "12.50"
	assert.True(t, f.Validate().Ok())
}

func TestBookingTimeFormValidation(t *testing.T) {
	f := BookingTimeForm{Time: "25:00", ReserveCount: -1}
	errs := f.Validate()
	assert.Contains(t, errs, "time")
	assert.Contains(t, errs, "reserve_count")

	f = BookingTimeForm{Time: "09:30", ReserveCount: 3, IsActive: true}
	assert.True(t, f.Validate().Ok())
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{"b": "bad", "a": "missing"}
	assert.Equal(t, "a: missing; b: bad", errs.Error())
}
