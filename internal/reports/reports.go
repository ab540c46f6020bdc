// Package reports drives report downloads: the backend renders the Excel
// workbook, this side saves it, journals it and can summarize its contents.
package reports

import (
	"context"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/domain"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/logging"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/metrics"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/permissions"

	"github.com/rs/zerolog"
)

const (
	KindDaily    = "daily"
	KindGeneral  = "general"
	KindBonus    = "bonus"
	KindServices = "services"
)

// Downloader is the slice of the backend client the report manager needs.
type Downloader interface {
	DownloadDailyReport(ctx context.Context, destDir string, date time.Time) (string, error)
	DownloadGeneralReport(ctx context.Context, destDir string, from, to time.Time) (string, error)
	DownloadBonusReport(ctx context.Context, destDir string, from, to time.Time) (string, error)
	DownloadServicesExport(ctx context.Context, destDir string, filter api.ServiceFilter) (string, error)
}

// Manager downloads report workbooks into the exports directory. A failed
// download is logged and reported as an empty path, never as an error: a
// broken export must not take the table it was triggered from down with it.
type Manager struct {
	client  Downloader
	journal domain.ExportJournal
	perms   func() []string
	destDir string
	log     zerolog.Logger
}

// perms is read per call because the permission set only exists once someone
// signs in.
func NewManager(client Downloader, journal domain.ExportJournal, perms func() []string, destDir string, logger *zerolog.Logger) *Manager {
	m := &Manager{
		client:  client,
		journal: journal,
		perms:   perms,
		destDir: destDir,
	}
	m.log = logging.Component(logger, "reports")
	return m
}

func (m *Manager) CanExport() bool {
	if m.perms == nil {
		return false
	}
	return permissions.Has(m.perms(), permissions.PermReportExport)
}

// Daily fetches the one-day revenue report.
func (m *Manager) Daily(ctx context.Context, date time.Time) string {
	if !m.CanExport() {
		return ""
	}
	path, err := m.client.DownloadDailyReport(ctx, m.destDir, date)
	return m.finish(ctx, KindDaily, path, err, date, date)
}

// General fetches the date-range summary report.
func (m *Manager) General(ctx context.Context, from, to time.Time) string {
	if !m.CanExport() {
		return ""
	}
	path, err := m.client.DownloadGeneralReport(ctx, m.destDir, from, to)
	return m.finish(ctx, KindGeneral, path, err, from, to)
}

// Bonus fetches the per-doctor bonus report.
func (m *Manager) Bonus(ctx context.Context, from, to time.Time) string {
	if !m.CanExport() {
		return ""
	}
	path, err := m.client.DownloadBonusReport(ctx, m.destDir, from, to)
	return m.finish(ctx, KindBonus, path, err, from, to)
}

// Services exports the billing table under its current filter.
func (m *Manager) Services(ctx context.Context, filter api.ServiceFilter) string {
	if !m.CanExport() {
		return ""
	}
	path, err := m.client.DownloadServicesExport(ctx, m.destDir, filter)
	return m.finish(ctx, KindServices, path, err, filter.From, filter.To)
}

func (m *Manager) finish(ctx context.Context, kind, path string, err error, from, to time.Time) string {
	if err != nil {
		m.log.Error().Err(err).Str("kind", kind).Msg("export failed")
		return ""
	}

	metrics.IncExportDownload(kind)
	if m.journal != nil {
		if jerr := m.journal.RecordExport(ctx, kind, path, from, to); jerr != nil {
			m.log.Warn().Err(jerr).Str("path", path).Msg("journal write failed")
		}
	}
	m.log.Info().Str("kind", kind).Str("path", path).Msg("report saved")
	return path
}

// History lists the most recent journal entries, newest first.
func (m *Manager) History(ctx context.Context, limit int) []models.ExportRecord {
	if m.journal == nil {
		return nil
	}
	records, err := m.journal.RecentExports(ctx, limit)
	if err != nil {
		m.log.Warn().Err(err).Msg("journal read failed")
		return nil
	}
	return records
}
