package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSheets struct {
	mu       sync.Mutex
	upserts  []int64
	deletes  []int64
	replaces int
	err      error
}

func (f *fakeSheets) UpsertBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, b.ID)
	return nil
}

func (f *fakeSheets) DeleteBookingRow(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeSheets) ReplaceBookingsSheet(context.Context, []models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.replaces++
	return nil
}

func newTestWorker(t *testing.T, sheets SheetsClient) (*MirrorWorker, *store.Store) {
	t.Helper()
	db, err := store.New(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	w := NewMirrorWorker(db, sheets, func(context.Context) ([]models.Booking, error) {
		return []models.Booking{{ID: 1}}, nil
	}, nil, RetryPolicy{MaxRetries: 3, InitialDelay: time.Minute}, nil)
	return w, db
}

func TestRetryPolicyBackoff(t *testing.T) {
	p := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, MaxDelay: 5 * time.Second}
	assert.Equal(t, time.Second, p.NextDelay(1))
	assert.Equal(t, 2*time.Second, p.NextDelay(2))
	assert.Equal(t, 4*time.Second, p.NextDelay(3))
	assert.Equal(t, 5*time.Second, p.NextDelay(4), "clamped to MaxDelay")
	assert.Equal(t, time.Second, p.NextDelay(0))
}

func TestEnqueueValidation(t *testing.T) {
	w, _ := newTestWorker(t, &fakeSheets{})
	ctx := context.Background()

	assert.Error(t, w.EnqueueTask(ctx, "bogus", 1, nil))
	assert.Error(t, w.EnqueueTask(ctx, TaskUpsert, 0, nil))
	assert.NoError(t, w.EnqueueTask(ctx, TaskReplace, 0, nil))
	assert.NoError(t, w.EnqueueTask(ctx, TaskUpsert, 0, &models.Booking{ID: 7}))
}

func TestEnqueuePersistsAndProcesses(t *testing.T) {
	sheets := &fakeSheets{}
	w, db := newTestWorker(t, sheets)
	ctx := context.Background()

	require.NoError(t, w.EnqueueTask(ctx, TaskUpsert, 0, &models.Booking{ID: 42}))
	require.NoError(t, w.EnqueueTask(ctx, TaskDelete, 42, nil))

	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	for i := range tasks {
		w.processTask(ctx, &tasks[i])
	}

	assert.Equal(t, []int64{42}, sheets.upserts)
	assert.Equal(t, []int64{42}, sheets.deletes)

	tasks, err = db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, tasks, "completed tasks leave the pending set")
}

func TestFailedTaskGoesToRetry(t *testing.T) {
	sheets := &fakeSheets{err: errors.New("quota")}
	w, db := newTestWorker(t, sheets)
	ctx := context.Background()

	require.NoError(t, w.EnqueueTask(ctx, TaskUpsert, 0, &models.Booking{ID: 1}))
	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	w.processTask(ctx, &tasks[0])

	// Retry is scheduled in the future, so the pending set is empty now.
	pending, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestReplaceTaskUsesLister(t *testing.T) {
	sheets := &fakeSheets{}
	w, db := newTestWorker(t, sheets)
	ctx := context.Background()

	require.NoError(t, w.EnqueueTask(ctx, TaskReplace, 0, nil))
	tasks, err := db.GetPendingSyncTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	w.processTask(ctx, &tasks[0])
	assert.Equal(t, 1, sheets.replaces)
}
