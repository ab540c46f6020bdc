package session

import (
	"context"
	"sync"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// MemoryRepository keeps the session in process memory. It is the fallback
// when redis is unreachable; state then lives only until the console exits.
type MemoryRepository struct {
	mu      sync.RWMutex
	session *models.Session
	views   map[string]*models.ViewState
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{views: make(map[string]*models.ViewState)}
}

func (r *MemoryRepository) GetSession(ctx context.Context) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.session, nil
}

func (r *MemoryRepository) SetSession(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = session
	return nil
}

func (r *MemoryRepository) ClearSession(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = nil
	return nil
}

func (r *MemoryRepository) GetViewState(ctx context.Context, view string) (*models.ViewState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.views[view], nil
}

func (r *MemoryRepository) SetViewState(ctx context.Context, state *models.ViewState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[state.View] = state
	return nil
}
