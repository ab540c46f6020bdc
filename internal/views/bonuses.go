package views

import (
	"context"
	"sync"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/domain"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/permissions"

	"github.com/rs/zerolog"
)

type BonusesAPI interface {
	ListBonuses(ctx context.Context, from, to time.Time) ([]models.Bonus, error)
	GetBonusCoefficient(ctx context.Context) (*models.BonusCoefficient, error)
	UpdateBonusCoefficient(ctx context.Context, value float64) error
}

// BonusRow is one doctor's bonus for the selected range, already divided by
// the current coefficient.
type BonusRow struct {
	Doctor      string
	TotalAmount float64
	Bonus       float64
	Days        []models.BonusDay
}

// BonusesView is the per-doctor bonus table with the editable coefficient.
// Bonus values are derived locally from the raw totals, so changing the
// coefficient re-renders without another list fetch.
type BonusesView struct {
	api   BonusesAPI
	perms []string
	bus   domain.EventPublisher
	log   zerolog.Logger

	mu          sync.Mutex
	from, to    time.Time
	bonuses     []models.Bonus
	coefficient float64
	state       State
	err         error
}

func NewBonusesView(client BonusesAPI, perms []string, bus domain.EventPublisher, logger *zerolog.Logger) *BonusesView {
	v := &BonusesView{
		api:         client,
		perms:       perms,
		bus:         bus,
		coefficient: 1,
		from:        today(),
		to:          today(),
		state:       StateIdle,
	}
	if logger != nil {
		v.log = logger.With().Str("view", "bonuses").Logger()
	}
	return v
}

func (v *BonusesView) CanEditCoefficient() bool {
	return permissions.Has(v.perms, permissions.PermBonusCoefficientEdit)
}

// Refresh loads the coefficient and the bonus totals for the current range.
// A missing coefficient falls back to 1 so rendering never divides by zero.
func (v *BonusesView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.state = StateLoading
	from, to := v.from, v.to
	v.mu.Unlock()

	coefficient := 1.0
	if c, err := v.api.GetBonusCoefficient(ctx); err != nil {
		v.log.Warn().Err(err).Msg("coefficient fetch failed, using 1")
	} else if c != nil && c.Value > 0 {
		coefficient = c.Value
	}

	bonuses, err := v.api.ListBonuses(ctx, from, to)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.coefficient = coefficient
	if err != nil {
		v.state = StateError
		v.err = err
		v.log.Error().Err(err).Msg("fetch failed")
		return err
	}
	v.state = StateLoaded
	v.err = nil
	v.bonuses = bonuses
	return nil
}

func (v *BonusesView) SetDateRange(ctx context.Context, from, to time.Time) error {
	v.mu.Lock()
	v.from, v.to = from, to
	v.mu.Unlock()
	return v.Refresh(ctx)
}

// SetCoefficient applies the new divisor locally right away and pushes it to
// the server in the background. A failed save is logged; the local value is
// kept so the rendered numbers stay consistent with what the operator set.
func (v *BonusesView) SetCoefficient(ctx context.Context, value float64) {
	if !v.CanEditCoefficient() || value <= 0 {
		return
	}

	v.mu.Lock()
	changed := v.coefficient != value
	v.coefficient = value
	v.mu.Unlock()
	if !changed {
		return
	}

	go func() {
		if err := v.api.UpdateBonusCoefficient(ctx, value); err != nil {
			v.log.Error().Err(err).Float64("value", value).Msg("coefficient save failed")
			return
		}
		if v.bus != nil {
			_ = v.bus.PublishJSON(events.EventCoefficientChanged, events.EntityEventPayload{
				Entity: "bonus_coefficient",
				At:     time.Now(),
			})
		}
	}()
}

func (v *BonusesView) Coefficient() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.coefficient
}

func (v *BonusesView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Rows renders the table with bonus values at the current coefficient.
func (v *BonusesView) Rows() []BonusRow {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]BonusRow, 0, len(v.bonuses))
	for i := range v.bonuses {
		b := &v.bonuses[i]
		rows = append(rows, BonusRow{
			Doctor:      b.Doctor.FullName(),
			TotalAmount: b.TotalAmount,
			Bonus:       b.Value(v.coefficient),
			Days:        b.Days,
		})
	}
	return rows
}
