package store

import (
	"context"
	"fmt"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// RecordExport journals a downloaded report file.
func (s *Store) RecordExport(ctx context.Context, kind, path string, from, to time.Time) error {
	query := `INSERT INTO exports (kind, file_path, from_date, to_date, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, kind, path, format.Date(from), format.Date(to), time.Now())
	if err != nil {
		return fmt.Errorf("failed to record export: %w", err)
	}
	return nil
}

// RecentExports lists the latest journal rows, newest first.
func (s *Store) RecentExports(ctx context.Context, limit int) ([]models.ExportRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, kind, file_path, from_date, to_date, created_at
              FROM exports ORDER BY created_at DESC, id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	var records []models.ExportRecord
	for rows.Next() {
		var r models.ExportRecord
		if err := rows.Scan(&r.ID, &r.Kind, &r.FilePath, &r.FromDate, &r.ToDate, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
