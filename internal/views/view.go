package views

import (
	"context"
	"sync"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/metrics"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/rs/zerolog"
)

// State is a table's fetch lifecycle. Any dependency change (filters, date
// range, page) re-enters Loading.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// fetchFunc loads one server page of rows.
type fetchFunc[T any] func(ctx context.Context, page int) ([]T, *models.Meta, error)

// ListState drives one paginated table: rows, server-side meta, lifecycle
// state. Pages are 1-indexed on the server; UI paginator events arrive
// 0-indexed and are translated in PageEvent.
type ListState[T any] struct {
	mu    sync.Mutex
	name  string
	state State
	rows  []T
	meta  *models.Meta
	page  int
	err   error
	fetch fetchFunc[T]
	log   zerolog.Logger
}

func newListState[T any](name string, fetch fetchFunc[T], logger *zerolog.Logger) *ListState[T] {
	var log zerolog.Logger
	if logger != nil {
		log = logger.With().Str("view", name).Logger()
	}
	return &ListState[T]{
		name:  name,
		state: StateIdle,
		page:  1,
		fetch: fetch,
		log:   log,
	}
}

// Refresh re-fetches the current page. A failed fetch leaves the previous
// rows in place and records the error; there is no retry.
func (l *ListState[T]) Refresh(ctx context.Context) error {
	l.mu.Lock()
	l.state = StateLoading
	page := l.page
	l.mu.Unlock()

	metrics.IncViewRefresh(l.name)
	rows, meta, err := l.fetch(ctx, page)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		l.state = StateError
		l.err = err
		l.log.Error().Err(err).Int("page", page).Msg("fetch failed")
		return err
	}

	l.state = StateLoaded
	l.err = nil
	l.rows = rows
	l.meta = meta
	return nil
}

// PageEvent handles a 0-indexed paginator event.
func (l *ListState[T]) PageEvent(ctx context.Context, uiPage int) error {
	l.mu.Lock()
	l.page = uiPage + 1
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// ResetToFirstPage jumps back to page 1 and refetches; update dialogs call
// this after a successful save.
func (l *ListState[T]) ResetToFirstPage(ctx context.Context) error {
	l.mu.Lock()
	l.page = 1
	l.mu.Unlock()
	return l.Refresh(ctx)
}

// RemoveWhere drops matching rows locally without waiting for the server.
func (l *ListState[T]) RemoveWhere(match func(T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.rows[:0]
	for _, row := range l.rows {
		if !match(row) {
			kept = append(kept, row)
		}
	}
	l.rows = kept
	if l.meta != nil && l.meta.Total > 0 {
		l.meta.Total--
	}
}

// Prepend puts a freshly created row at the top of the current page.
func (l *ListState[T]) Prepend(row T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append([]T{row}, l.rows...)
	if l.meta != nil {
		l.meta.Total++
	}
}

func (l *ListState[T]) Rows() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.rows))
	copy(out, l.rows)
	return out
}

func (l *ListState[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *ListState[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *ListState[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

func (l *ListState[T]) Meta() *models.Meta {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.meta
}

// Debouncer coalesces rapid input changes: only the last function scheduled
// within the quiet window runs. Bounds the request rate of text filters.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = time.Duration(models.FilterDebounceMillis) * time.Millisecond
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet window, cancelling any pending run.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
