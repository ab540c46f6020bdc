package views

import (
	"context"
	"sync"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/rs/zerolog"
)

type AdvancesAPI interface {
	ListAdvanceTransfers(ctx context.Context, filter api.BookingFilter) (*models.Envelope[models.AdvanceTransfer], error)
}

// AdvancesView is the read-only list of advance payments carried over from
// reservations.
type AdvancesView struct {
	List *ListState[models.AdvanceTransfer]

	api AdvancesAPI
	log zerolog.Logger

	mu       sync.Mutex
	from, to time.Time
}

func NewAdvancesView(client AdvancesAPI, logger *zerolog.Logger) *AdvancesView {
	v := &AdvancesView{
		api:  client,
		from: today(),
		to:   today(),
	}
	if logger != nil {
		v.log = logger.With().Str("view", "advances").Logger()
	}
	v.List = newListState("advances", v.fetch, logger)
	return v
}

func (v *AdvancesView) fetch(ctx context.Context, page int) ([]models.AdvanceTransfer, *models.Meta, error) {
	v.mu.Lock()
	from, to := v.from, v.to
	v.mu.Unlock()

	env, err := v.api.ListAdvanceTransfers(ctx, api.BookingFilter{
		Page: page,
		Size: models.DefaultPageSize,
		From: from,
		To:   to,
	})
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Meta, nil
}

func (v *AdvancesView) SetDateRange(ctx context.Context, from, to time.Time) error {
	v.mu.Lock()
	v.from, v.to = from, to
	v.mu.Unlock()
	return v.List.ResetToFirstPage(ctx)
}
