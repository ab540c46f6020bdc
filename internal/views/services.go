package views

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/domain"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/permissions"

	"github.com/rs/zerolog"
)

type ServicesAPI interface {
	ListServices(ctx context.Context, filter api.ServiceFilter) (*models.Envelope[models.Service], error)
	CreateService(ctx context.Context, input api.ServiceInput) (*models.Service, error)
	UpdateService(ctx context.Context, id int64, input api.ServiceInput) (*models.Service, error)
	DeleteService(ctx context.Context, id int64) error
}

// ServicesView is the billing table. Every filter control is individually
// permission-gated; setters on controls the session lacks are no-ops.
type ServicesView struct {
	List *ListState[models.Service]

	api      ServicesAPI
	perms    []string
	bus      domain.EventPublisher
	log      zerolog.Logger
	debounce *Debouncer

	mu     sync.Mutex
	filter api.ServiceFilter
}

func NewServicesView(client ServicesAPI, perms []string, bus domain.EventPublisher, logger *zerolog.Logger, debounce time.Duration) *ServicesView {
	v := &ServicesView{
		api:      client,
		perms:    perms,
		bus:      bus,
		debounce: NewDebouncer(debounce),
	}
	if logger != nil {
		v.log = logger.With().Str("view", "services").Logger()
	}
	v.filter = api.ServiceFilter{
		Size: models.DefaultPageSize,
		From: today(),
		To:   today(),
	}
	v.List = newListState("services", v.fetch, logger)
	return v
}

func (v *ServicesView) fetch(ctx context.Context, page int) ([]models.Service, *models.Meta, error) {
	v.mu.Lock()
	filter := v.filter
	v.mu.Unlock()
	filter.Page = page

	env, err := v.api.ListServices(ctx, filter)
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Meta, nil
}

func (v *ServicesView) CanCreate() bool { return permissions.Has(v.perms, permissions.PermServiceCreate) }
func (v *ServicesView) CanUpdate() bool { return permissions.Has(v.perms, permissions.PermServiceUpdate) }
func (v *ServicesView) CanDelete() bool { return permissions.Has(v.perms, permissions.PermServiceDelete) }

// HasFilters reports whether the session carries any filter control at all;
// a filterless session renders the plain day table.
func (v *ServicesView) HasFilters() bool { return permissions.HaveFilterPermissions(v.perms) }

func (v *ServicesView) SetDateRange(ctx context.Context, from, to time.Time) error {
	if !permissions.Has(v.perms, permissions.PermServiceFilterDate) {
		return nil
	}
	v.mu.Lock()
	v.filter.From = from
	v.filter.To = to
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

func (v *ServicesView) SetClientNameFilter(ctx context.Context, value string) {
	if !permissions.Has(v.perms, permissions.PermServiceFilterName) {
		return
	}
	v.mu.Lock()
	v.filter.ClientName = value
	v.mu.Unlock()
	v.debounce.Trigger(func() {
		if err := v.List.ResetToFirstPage(ctx); err != nil {
			v.log.Error().Err(err).Msg("debounced refresh failed")
		}
	})
}

func (v *ServicesView) SetPhoneFilter(ctx context.Context, value string) {
	if !permissions.Has(v.perms, permissions.PermServiceFilterPhone) {
		return
	}
	v.mu.Lock()
	v.filter.Phone = value
	v.mu.Unlock()
	v.debounce.Trigger(func() {
		if err := v.List.ResetToFirstPage(ctx); err != nil {
			v.log.Error().Err(err).Msg("debounced refresh failed")
		}
	})
}

func (v *ServicesView) SetStatusFilter(ctx context.Context, status string) error {
	if !permissions.Has(v.perms, permissions.PermServiceFilterStatus) {
		return nil
	}
	v.mu.Lock()
	v.filter.Status = status
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

func (v *ServicesView) SetServiceTypeFilter(ctx context.Context, id int64) error {
	if !permissions.Has(v.perms, permissions.PermServiceFilterType) {
		return nil
	}
	v.mu.Lock()
	v.filter.ServiceTypeID = id
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

func (v *ServicesView) SetDoctorFilter(ctx context.Context, id int64) error {
	if !permissions.Has(v.perms, permissions.PermServiceFilterDoctor) {
		return nil
	}
	v.mu.Lock()
	v.filter.DoctorID = id
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}

func (v *ServicesView) Filter() api.ServiceFilter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

func (v *ServicesView) Create(ctx context.Context, input api.ServiceInput) (*models.Service, error) {
	created, err := v.api.CreateService(ctx, input)
	if err != nil {
		return nil, err
	}
	v.List.Prepend(*created)
	v.publish(events.EventServiceCreated, created.ID)
	return created, nil
}

func (v *ServicesView) Update(ctx context.Context, id int64, input api.ServiceInput) (*models.Service, error) {
	updated, err := v.api.UpdateService(ctx, id, input)
	if err != nil {
		return nil, err
	}
	v.publish(events.EventServiceUpdated, id)
	if err := v.List.ResetToFirstPage(ctx); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("refresh after update failed")
	}
	return updated, nil
}

// Delete is optimistic: the row disappears immediately, server errors are
// only logged.
func (v *ServicesView) Delete(ctx context.Context, id int64) {
	v.List.RemoveWhere(func(s models.Service) bool { return s.ID == id })
	if err := v.api.DeleteService(ctx, id); err != nil {
		v.log.Error().Err(err).Int64("id", id).Msg("delete failed")
		return
	}
	v.publish(events.EventServiceDeleted, id)
}

// Totals sums the current page's amounts for the table footer. Amounts
// arrive as decimal strings; unparseable ones count as zero.
func (v *ServicesView) Totals() (amount, cash, card float64) {
	for _, s := range v.List.Rows() {
		amount += parseAmount(s.Amount)
		cash += parseAmount(s.CashAmount)
		card += parseAmount(s.CardAmount)
	}
	return amount, cash, card
}

func parseAmount(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

func (v *ServicesView) publish(event string, id int64) {
	if v.bus == nil {
		return
	}
	_ = v.bus.PublishJSON(event, events.EntityEventPayload{
		Entity: "service",
		ID:     id,
		At:     time.Now(),
	})
}
