package session

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/domain"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/rs/zerolog"
)

// FailoverRepository prefers the primary (redis) store and drops to the
// fallback when it errors, retrying the primary after a minute.
type FailoverRepository struct {
	primary   domain.SessionRepository
	fallback  domain.SessionRepository
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64 // unix nanos
}

func NewFailoverRepository(primary, fallback domain.SessionRepository, logger *zerolog.Logger) *FailoverRepository {
	return &FailoverRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverRepository) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary session store failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(time.Now().UnixNano())
}

func (r *FailoverRepository) shouldRetryPrimary() bool {
	return time.Since(time.Unix(0, r.lastCheck.Load())) > time.Minute
}

func (r *FailoverRepository) GetSession(ctx context.Context) (*models.Session, error) {
	if !r.isDown.Load() {
		session, err := r.primary.GetSession(ctx)
		if err == nil {
			return session, nil
		}
		r.markDown(err)
	} else if r.shouldRetryPrimary() {
		session, err := r.primary.GetSession(ctx)
		if err == nil {
			r.isDown.Store(false)
			return session, nil
		}
		r.lastCheck.Store(time.Now().UnixNano())
	}

	return r.fallback.GetSession(ctx)
}

func (r *FailoverRepository) SetSession(ctx context.Context, session *models.Session) error {
	if !r.isDown.Load() {
		err := r.primary.SetSession(ctx, session)
		if err == nil {
			// mirror into memory so a later failover still sees the session
			_ = r.fallback.SetSession(ctx, session)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.SetSession(ctx, session)
}

func (r *FailoverRepository) ClearSession(ctx context.Context) error {
	fallbackErr := r.fallback.ClearSession(ctx)
	if !r.isDown.Load() {
		if err := r.primary.ClearSession(ctx); err != nil {
			r.markDown(err)
			return fallbackErr
		}
		return nil
	}
	return fallbackErr
}

func (r *FailoverRepository) GetViewState(ctx context.Context, view string) (*models.ViewState, error) {
	if !r.isDown.Load() {
		state, err := r.primary.GetViewState(ctx, view)
		if err == nil {
			return state, nil
		}
		r.markDown(err)
	}
	return r.fallback.GetViewState(ctx, view)
}

func (r *FailoverRepository) SetViewState(ctx context.Context, state *models.ViewState) error {
	if !r.isDown.Load() {
		err := r.primary.SetViewState(ctx, state)
		if err == nil {
			_ = r.fallback.SetViewState(ctx, state)
			return nil
		}
		r.markDown(err)
	}
	return r.fallback.SetViewState(ctx, state)
}
