package models

import "time"

// SyncTask represents a queued spreadsheet mirror job.
type SyncTask struct {
	ID          int64      `json:"id"`
	TaskType    string     `json:"task_type"`
	BookingID   int64      `json:"booking_id"`
	Payload     string     `json:"payload"`
	Status      string     `json:"status"`
	RetryCount  int        `json:"retry_count"`
	LastError   *string    `json:"last_error"`
	CreatedAt   time.Time  `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at"`
	NextRetryAt *time.Time `json:"next_retry_at"`
}

// ExportRecord is a journal row for a downloaded report file.
type ExportRecord struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	FilePath  string    `json:"file_path"`
	FromDate  string    `json:"from_date"`
	ToDate    string    `json:"to_date"`
	CreatedAt time.Time `json:"created_at"`
}

// CatalogEntry is a locally cached lookup row used to populate filter
// dropdowns when the backend is slow or unreachable.
type CatalogEntry struct {
	ID        int64     `json:"id" yaml:"-"`
	Kind      string    `json:"kind" yaml:"-"` // doctors, service_types
	RefID     int64     `json:"ref_id" yaml:"ref_id"`
	Name      string    `json:"name" yaml:"name"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}
