package domain

import (
	"context"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// SessionRepository is the console's persistent client storage: one session
// plus per-view UI state. Get methods return (nil, nil) when nothing is stored.
type SessionRepository interface {
	GetSession(ctx context.Context) (*models.Session, error)
	SetSession(ctx context.Context, session *models.Session) error
	ClearSession(ctx context.Context) error
	GetViewState(ctx context.Context, view string) (*models.ViewState, error)
	SetViewState(ctx context.Context, state *models.ViewState) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// SheetsWriter mirrors booking pages into a spreadsheet.
type SheetsWriter interface {
	ReplaceBookingsSheet(ctx context.Context, bookings []models.Booking) error
	AppendBooking(ctx context.Context, booking *models.Booking) error
}

// SyncWorker queues spreadsheet mirror tasks.
type SyncWorker interface {
	EnqueueTask(ctx context.Context, taskType string, bookingID int64, booking *models.Booking) error
}

// ExportJournal records downloaded report files.
type ExportJournal interface {
	RecordExport(ctx context.Context, kind, path string, from, to time.Time) error
	RecentExports(ctx context.Context, limit int) ([]models.ExportRecord, error)
}
