package views

import (
	"context"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/rs/zerolog"
)

type ServiceTypesAPI interface {
	ListServiceTypes(ctx context.Context, page, size int) (*models.Envelope[models.ServiceType], error)
	CreateServiceType(ctx context.Context, input api.ServiceTypeInput) (*models.ServiceType, error)
	UpdateServiceType(ctx context.Context, id int64, input api.ServiceTypeInput) (*models.ServiceType, error)
	DeleteServiceType(ctx context.Context, id int64) error
}

// ServiceTypesView is the price-list catalog table.
type ServiceTypesView struct {
	List *ListState[models.ServiceType]

	api ServiceTypesAPI
	log zerolog.Logger
}

func NewServiceTypesView(client ServiceTypesAPI, logger *zerolog.Logger) *ServiceTypesView {
	v := &ServiceTypesView{api: client}
	if logger != nil {
		v.log = logger.With().Str("view", "service_types").Logger()
	}
	v.List = newListState("service_types", v.fetch, logger)
	return v
}

func (v *ServiceTypesView) fetch(ctx context.Context, page int) ([]models.ServiceType, *models.Meta, error) {
	env, err := v.api.ListServiceTypes(ctx, page, models.DefaultPageSize)
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Meta, nil
}

func (v *ServiceTypesView) Create(ctx context.Context, input api.ServiceTypeInput) (*models.ServiceType, error) {
	created, err := v.api.CreateServiceType(ctx, input)
	if err != nil {
		return nil, err
	}
	v.List.Prepend(*created)
	return created, nil
}

func (v *ServiceTypesView) Update(ctx context.Context, id int64, input api.ServiceTypeInput) (*models.ServiceType, error) {
	updated, err := v.api.UpdateServiceType(ctx, id, input)
	if err != nil {
		return nil, err
	}
	if err := v.List.ResetToFirstPage(ctx); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("refresh after update failed")
	}
	return updated, nil
}

func (v *ServiceTypesView) Delete(ctx context.Context, id int64) {
	v.List.RemoveWhere(func(t models.ServiceType) bool { return t.ID == id })
	if err := v.api.DeleteServiceType(ctx, id); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("delete failed")
	}
}
