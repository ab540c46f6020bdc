package views

import (
	"context"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/domain"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/permissions"

	"github.com/rs/zerolog"
)

type UsersAPI interface {
	ListUsers(ctx context.Context, page, size int) (*models.Envelope[models.User], error)
	CreateUser(ctx context.Context, input api.UserInput) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, input api.UserInput) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListRoles(ctx context.Context) ([]models.Role, error)
}

// UsersView is the staff administration table. It has no filters, only
// pagination and the create/edit dialog.
type UsersView struct {
	List *ListState[models.User]

	api   UsersAPI
	perms []string
	bus   domain.EventPublisher
	log   zerolog.Logger
}

func NewUsersView(client UsersAPI, perms []string, bus domain.EventPublisher, logger *zerolog.Logger) *UsersView {
	v := &UsersView{api: client, perms: perms, bus: bus}
	if logger != nil {
		v.log = logger.With().Str("view", "users").Logger()
	}
	v.List = newListState("users", v.fetch, logger)
	return v
}

func (v *UsersView) fetch(ctx context.Context, page int) ([]models.User, *models.Meta, error) {
	env, err := v.api.ListUsers(ctx, page, models.DefaultPageSize)
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Meta, nil
}

func (v *UsersView) CanCreate() bool { return permissions.Has(v.perms, permissions.PermUserCreate) }
func (v *UsersView) CanUpdate() bool { return permissions.Has(v.perms, permissions.PermUserUpdate) }
func (v *UsersView) CanDelete() bool { return permissions.Has(v.perms, permissions.PermUserDelete) }

// Roles loads the role dropdown for the user dialog.
func (v *UsersView) Roles(ctx context.Context) ([]models.Role, error) {
	return v.api.ListRoles(ctx)
}

func (v *UsersView) Create(ctx context.Context, input api.UserInput) (*models.User, error) {
	created, err := v.api.CreateUser(ctx, input)
	if err != nil {
		return nil, err
	}
	v.List.Prepend(*created)
	v.publish(created.ID)
	return created, nil
}

func (v *UsersView) Update(ctx context.Context, id int64, input api.UserInput) (*models.User, error) {
	updated, err := v.api.UpdateUser(ctx, id, input)
	if err != nil {
		return nil, err
	}
	v.publish(id)
	if err := v.List.ResetToFirstPage(ctx); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("refresh after update failed")
	}
	return updated, nil
}

func (v *UsersView) Delete(ctx context.Context, id int64) {
	v.List.RemoveWhere(func(u models.User) bool { return u.ID == id })
	if err := v.api.DeleteUser(ctx, id); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("delete failed")
	}
}

func (v *UsersView) publish(id int64) {
	if v.bus == nil {
		return
	}
	_ = v.bus.PublishJSON(events.EventUserSaved, events.EntityEventPayload{
		Entity: "user",
		ID:     id,
		At:     time.Now(),
	})
}
