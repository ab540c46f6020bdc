package session

import (
	"context"
	"sync"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/domain"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/events"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/logging"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Manager owns the current session. It is the client's oauth2.TokenSource and
// the single place that clears stored credentials when the backend reports
// USER_NOT_AUTHORIZED.
type Manager struct {
	repo     domain.SessionRepository
	eventBus domain.EventPublisher
	log      zerolog.Logger

	mu      sync.RWMutex
	current *models.Session
}

var _ oauth2.TokenSource = (*Manager)(nil)

func NewManager(repo domain.SessionRepository, eventBus domain.EventPublisher, logger *zerolog.Logger) *Manager {
	return &Manager{repo: repo, eventBus: eventBus, log: logging.Component(logger, "session")}
}

// Load restores a previously stored session, if any.
func (m *Manager) Load(ctx context.Context) error {
	session, err := m.repo.GetSession(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()

	if session != nil {
		m.log.Info().Str("user", session.User.FullName()).Msg("session restored")
	}
	return nil
}

// Establish stores a fresh session after login + self-info.
func (m *Manager) Establish(ctx context.Context, token string, user *models.User) error {
	session := &models.Session{
		Token:       token,
		User:        user,
		Permissions: user.PermissionNames(),
		SavedAt:     time.Now(),
	}
	if err := m.repo.SetSession(ctx, session); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = session
	m.mu.Unlock()
	return nil
}

// RefreshUser replaces the stored self snapshot and permission set while
// keeping the token. Used after a self-info fetch on a restored session so a
// role change server-side takes effect without a fresh login.
func (m *Manager) RefreshUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	if m.current == nil {
		m.mu.Unlock()
		return nil
	}
	m.current.User = user
	m.current.Permissions = user.PermissionNames()
	m.current.SavedAt = time.Now()
	session := m.current
	m.mu.Unlock()

	return m.repo.SetSession(ctx, session)
}

// Token implements oauth2.TokenSource over the stored bearer token.
func (m *Manager) Token() (*oauth2.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil || m.current.Token == "" {
		return nil, api.ErrNoToken
	}
	return &oauth2.Token{AccessToken: m.current.Token, TokenType: "Bearer"}, nil
}

func (m *Manager) Authorized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.Token != ""
}

func (m *Manager) User() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	return m.current.User
}

func (m *Manager) Permissions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	return m.current.Permissions
}

// Clear wipes the session everywhere and announces the logout. Wired as the
// client's unauthorized hook.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	hadSession := m.current != nil
	m.current = nil
	m.mu.Unlock()

	if err := m.repo.ClearSession(ctx); err != nil {
		m.log.Error().Err(err).Msg("clear stored session")
	}
	if hadSession {
		_ = m.eventBus.PublishJSON(events.EventSessionExpired, events.EntityEventPayload{
			Entity: "session",
			At:     time.Now(),
		})
	}
}

func (m *Manager) SaveViewState(ctx context.Context, state *models.ViewState) {
	if err := m.repo.SetViewState(ctx, state); err != nil {
		m.log.Warn().Err(err).Str("view", state.View).Msg("save view state")
	}
}

func (m *Manager) LoadViewState(ctx context.Context, view string) *models.ViewState {
	state, err := m.repo.GetViewState(ctx, view)
	if err != nil {
		m.log.Warn().Err(err).Str("view", view).Msg("load view state")
		return nil
	}
	return state
}
