package store

import (
	"context"
	"fmt"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

const (
	CatalogDoctors      = "doctors"
	CatalogServiceTypes = "service_types"
)

// ReplaceCatalog swaps the cached lookup rows of one kind in a single
// transaction so dropdown readers never see a half-written catalog.
func (s *Store) ReplaceCatalog(ctx context.Context, kind string, entries []models.CatalogEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog WHERE kind = ?`, kind); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	now := time.Now()
	for _, entry := range entries {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO catalog (kind, ref_id, name, updated_at) VALUES (?, ?, ?, ?)`,
			kind, entry.RefID, entry.Name, now)
		if err != nil {
			return fmt.Errorf("failed to insert catalog entry: %w", err)
		}
	}

	return tx.Commit()
}

// Catalog returns the cached rows of one kind ordered by name.
func (s *Store) Catalog(ctx context.Context, kind string) ([]models.CatalogEntry, error) {
	query := `SELECT id, kind, ref_id, name, updated_at FROM catalog WHERE kind = ? ORDER BY name`
	rows, err := s.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	defer rows.Close()

	var entries []models.CatalogEntry
	for rows.Next() {
		var e models.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.RefID, &e.Name, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
