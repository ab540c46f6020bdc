package forms

import (
	"context"
	"strings"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// UserForm is the staff dialog. On create the password pair is required; on
// edit it is optional and only sent when filled.
type UserForm struct {
	ID                   int64
	Name                 string
	Surname              string
	Email                string
	RoleID               int64
	IsVisible            bool
	Password             string
	PasswordConfirmation string
}

// EditUser preloads the dialog from an existing row.
func EditUser(u *models.User) UserForm {
	f := UserForm{
		ID:        u.ID,
		Name:      u.Name,
		Surname:   u.Surname,
		Email:     u.Email,
		IsVisible: u.IsVisible,
	}
	if u.Role != nil {
		f.RoleID = u.Role.ID
	}
	return f
}

func (f *UserForm) IsEdit() bool { return f.ID > 0 }

func (f *UserForm) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "required"
	}
	if strings.TrimSpace(f.Surname) == "" {
		errs["surname"] = "required"
	}
	if !validEmail(f.Email) {
		errs["email"] = "invalid email"
	}
	if f.RoleID <= 0 {
		errs["role"] = "required"
	}
	if !f.IsEdit() && f.Password == "" {
		errs["password"] = "required"
	}
	if f.Password != "" && f.Password != f.PasswordConfirmation {
		errs["password_confirmation"] = "passwords do not match"
	}
	return errs
}

func (f *UserForm) input() api.UserInput {
	return api.UserInput{
		ID:                   f.ID,
		Name:                 strings.TrimSpace(f.Name),
		Surname:              strings.TrimSpace(f.Surname),
		Email:                strings.TrimSpace(f.Email),
		RoleID:               f.RoleID,
		IsVisible:            f.IsVisible,
		Password:             f.Password,
		PasswordConfirmation: f.PasswordConfirmation,
	}
}

type userSaver interface {
	Create(ctx context.Context, input api.UserInput) (*models.User, error)
	Update(ctx context.Context, id int64, input api.UserInput) (*models.User, error)
}

// Submit validates and dispatches to create or update depending on whether
// the dialog was opened on an existing row.
func (f *UserForm) Submit(ctx context.Context, view userSaver) (*models.User, error) {
	if errs := f.Validate(); !errs.Ok() {
		return nil, errs
	}
	if f.IsEdit() {
		return view.Update(ctx, f.ID, f.input())
	}
	return view.Create(ctx, f.input())
}
