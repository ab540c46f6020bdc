package reports

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/api"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeDownloader struct {
	path string
	err  error
}

func (f *fakeDownloader) DownloadDailyReport(context.Context, string, time.Time) (string, error) {
	return f.path, f.err
}

func (f *fakeDownloader) DownloadGeneralReport(context.Context, string, time.Time, time.Time) (string, error) {
	return f.path, f.err
}

func (f *fakeDownloader) DownloadBonusReport(context.Context, string, time.Time, time.Time) (string, error) {
	return f.path, f.err
}

func (f *fakeDownloader) DownloadServicesExport(context.Context, string, api.ServiceFilter) (string, error) {
	return f.path, f.err
}

func newJournal(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDailyRecordsJournalEntry(t *testing.T) {
	journal := newJournal(t)
	m := NewManager(&fakeDownloader{path: "/tmp/daily_report_2026-03-01.xlsx"},
		journal, func() []string { return []string{"report.export"} }, t.TempDir(), nil)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	path := m.Daily(context.Background(), day)
	assert.NotEmpty(t, path)

	records := m.History(context.Background(), 10)
	require.Len(t, records, 1)
	assert.Equal(t, KindDaily, records[0].Kind)
	assert.Equal(t, "2026-03-01", records[0].FromDate)
}

func TestFailedDownloadIsSwallowed(t *testing.T) {
	journal := newJournal(t)
	m := NewManager(&fakeDownloader{err: errors.New("502")},
		journal, func() []string { return []string{"report.export"} }, t.TempDir(), nil)

	path := m.General(context.Background(), time.Now(), time.Now())
	assert.Empty(t, path, "a failed export yields no path and no error")
	assert.Empty(t, m.History(context.Background(), 10))
}

func TestExportNeedsPermission(t *testing.T) {
	m := NewManager(&fakeDownloader{path: "/tmp/x.xlsx"}, newJournal(t), nil, t.TempDir(), nil)
	assert.False(t, m.CanExport())
	assert.Empty(t, m.Daily(context.Background(), time.Now()))
}

func TestOpenPreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily_report_2026-03-01.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Client", "Amount"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"Leyla", "150.00"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"Aysel", "80.00"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	p, err := OpenPreview(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Client", "Amount"}, p.Headers)
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, "Leyla", p.Rows[0][0])
}

func TestOpenPreviewMissingFile(t *testing.T) {
	_, err := OpenPreview(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
