// Package worker pushes reservation changes into the reception spreadsheet
// asynchronously, so a slow or unreachable Sheets API never blocks the
// console.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/logging"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/store"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	TaskUpsert  = "upsert"
	TaskDelete  = "delete"
	TaskReplace = "replace"
)

// mirrorPayload is persisted in SyncTask.Payload as JSON.
type mirrorPayload struct {
	BookingID int64           `json:"booking_id"`
	Booking   *models.Booking `json:"booking,omitempty"`
}

// SheetsClient is the spreadsheet surface the worker drives.
type SheetsClient interface {
	UpsertBooking(ctx context.Context, booking *models.Booking) error
	DeleteBookingRow(ctx context.Context, bookingID int64) error
	ReplaceBookingsSheet(ctx context.Context, bookings []models.Booking) error
}

// BookingLister supplies the full current page set for replace tasks.
type BookingLister func(ctx context.Context) ([]models.Booking, error)

// MirrorWorker consumes sync_queue tasks and applies them to the
// spreadsheet. Tasks ride through redis when it is up and fall back to an
// in-memory channel; the sqlite queue row is the source of truth either way.
type MirrorWorker struct {
	db     *store.Store
	sheets SheetsClient
	list   BookingLister
	redis  *redis.Client
	retry  RetryPolicy

	queue         chan models.SyncTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	batchSize     int
	log           zerolog.Logger
}

func NewMirrorWorker(db *store.Store, sheets SheetsClient, list BookingLister, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *MirrorWorker {
	if retry.MaxRetries == 0 {
		retry.MaxRetries = 5
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = time.Minute
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = 2
	}

	w := &MirrorWorker{
		db:            db,
		sheets:        sheets,
		list:          list,
		redis:         redisClient,
		retry:         retry,
		queue:         make(chan models.SyncTask, models.WorkerQueueSize),
		redisQueueKey: "mirror:queue",
		deadLetterKey: "mirror:deadletter",
		pollInterval:  2 * time.Second,
		batchSize:     20,
	}
	w.log = logging.Component(logger, "mirror_worker")
	return w
}

// EnqueueTask persists the task and schedules it. Satisfies
// domain.SyncWorker.
func (w *MirrorWorker) EnqueueTask(ctx context.Context, taskType string, bookingID int64, booking *models.Booking) error {
	switch taskType {
	case TaskUpsert, TaskDelete, TaskReplace:
	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}
	if taskType != TaskReplace && bookingID == 0 && (booking == nil || booking.ID == 0) {
		return errors.New("booking id is required")
	}

	payload := mirrorPayload{BookingID: bookingID, Booking: booking}
	if payload.BookingID == 0 && booking != nil {
		payload.BookingID = booking.ID
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	task := models.SyncTask{
		TaskType:  taskType,
		BookingID: payload.BookingID,
		Payload:   string(payloadBytes),
		Status:    "pending",
		CreatedAt: time.Now(),
	}
	if err := w.db.CreateSyncTask(ctx, &task); err != nil {
		return fmt.Errorf("persist sync task: %w", err)
	}

	if w.redis != nil {
		if err := w.pushRedis(ctx, task); err != nil {
			w.log.Warn().Err(err).Msg("redis push failed, fallback to memory queue")
		} else {
			return nil
		}
	}

	select {
	case w.queue <- task:
	default:
		w.log.Warn().Int64("task_id", task.ID).Msg("in-memory queue full, task left to polling")
	}
	return nil
}

// Start launches the main loop; stops when ctx is done.
func (w *MirrorWorker) Start(ctx context.Context) {
	w.log.Info().Msg("started")
	defer w.log.Info().Msg("stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, &t)
			continue
		}
		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, &t)
			continue
		}

		tasks, err := w.db.GetPendingSyncTasks(ctx, w.batchSize)
		if err != nil {
			w.log.Error().Err(err).Msg("fetch pending failed")
			w.sleep(ctx)
			continue
		}
		if len(tasks) == 0 {
			w.sleep(ctx)
			continue
		}
		for i := range tasks {
			w.processTask(ctx, &tasks[i])
		}
	}
}

func (w *MirrorWorker) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(w.pollInterval):
	}
}

func (w *MirrorWorker) tryLocalQueue() (models.SyncTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return models.SyncTask{}, false
	}
}

func (w *MirrorWorker) tryRedis(ctx context.Context) (models.SyncTask, bool) {
	if w.redis == nil {
		return models.SyncTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && !errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("redis BRPOP error")
		}
		return models.SyncTask{}, false
	}
	if len(res) != 2 {
		return models.SyncTask{}, false
	}
	var task models.SyncTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.log.Error().Err(err).Msg("decode redis task failed")
		return models.SyncTask{}, false
	}
	return task, true
}

func (w *MirrorWorker) processTask(ctx context.Context, task *models.SyncTask) {
	var payload mirrorPayload
	if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
		w.failTask(ctx, task, fmt.Errorf("decode payload: %w", err))
		return
	}

	if err := w.apply(ctx, task.TaskType, payload); err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, "completed", "", nil); err != nil {
		w.log.Error().Err(err).Int64("task_id", task.ID).Msg("mark completed failed")
	}
}

func (w *MirrorWorker) apply(ctx context.Context, taskType string, payload mirrorPayload) error {
	switch taskType {
	case TaskUpsert:
		if payload.Booking == nil {
			return errors.New("booking payload missing")
		}
		return w.sheets.UpsertBooking(ctx, payload.Booking)
	case TaskDelete:
		if payload.BookingID == 0 {
			return errors.New("booking id missing")
		}
		return w.sheets.DeleteBookingRow(ctx, payload.BookingID)
	case TaskReplace:
		if w.list == nil {
			return errors.New("no booking lister configured")
		}
		bookings, err := w.list(ctx)
		if err != nil {
			return fmt.Errorf("list bookings: %w", err)
		}
		return w.sheets.ReplaceBookingsSheet(ctx, bookings)
	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}
}

func (w *MirrorWorker) retryOrFail(ctx context.Context, task *models.SyncTask, cause error) {
	attempt := task.RetryCount + 1
	if attempt >= w.retry.MaxRetries {
		w.failTask(ctx, task, cause)
		return
	}

	nextTime := time.Now().Add(w.retry.NextDelay(attempt))
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, "retry", cause.Error(), &nextTime); err != nil {
		w.log.Error().Err(err).Int64("task_id", task.ID).Msg("mark retry failed")
	}
}

func (w *MirrorWorker) failTask(ctx context.Context, task *models.SyncTask, cause error) {
	if err := w.db.UpdateSyncTaskStatus(ctx, task.ID, "failed", cause.Error(), nil); err != nil {
		w.log.Error().Err(err).Int64("task_id", task.ID).Msg("mark failed failed")
	}
	w.pushDeadLetter(ctx, task)
}

func (w *MirrorWorker) pushRedis(ctx context.Context, task models.SyncTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.redisQueueKey, data).Err()
}

func (w *MirrorWorker) pushDeadLetter(ctx context.Context, task *models.SyncTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.log.Error().Err(err).Int64("task_id", task.ID).Msg("encode deadletter failed")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.log.Error().Err(err).Int64("task_id", task.ID).Msg("deadletter push failed")
	}
}
