package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
)

// Export endpoints return a binary spreadsheet body when called with
// excel_export=true. The client streams it to destDir under the conventional
// filename and returns the saved path.

func (c *Client) DownloadDailyReport(ctx context.Context, destDir string, date time.Time) (string, error) {
	q := url.Values{}
	q.Set("excel_export", "true")
	q.Set("date", format.Date(date))

	name := fmt.Sprintf("daily_report_%s.xlsx", format.Date(date))
	return c.downloadExport(ctx, "exports.daily", c.endpoint("/reports/daily", q), destDir, name)
}

func (c *Client) DownloadGeneralReport(ctx context.Context, destDir string, from, to time.Time) (string, error) {
	q := url.Values{}
	q.Set("excel_export", "true")
	q.Set("from_date", format.Date(from))
	q.Set("to_date", format.Date(to))

	name := fmt.Sprintf("general_report_%s_%s.xlsx", format.Date(from), format.Date(to))
	return c.downloadExport(ctx, "exports.general", c.endpoint("/reports/general", q), destDir, name)
}

func (c *Client) DownloadBonusReport(ctx context.Context, destDir string, from, to time.Time) (string, error) {
	q := url.Values{}
	q.Set("excel_export", "true")
	q.Set("from_date", format.Date(from))
	q.Set("to_date", format.Date(to))

	name := fmt.Sprintf("bonus_report_%s_%s.xlsx", format.Date(from), format.Date(to))
	return c.downloadExport(ctx, "exports.bonus", c.endpoint("/reports/bonus", q), destDir, name)
}

func (c *Client) DownloadServicesExport(ctx context.Context, destDir string, filter ServiceFilter) (string, error) {
	q := filter.query()
	q.Set("excel_export", "true")

	name := fmt.Sprintf("services_%s.xlsx", time.Now().Format("2006-01-02"))
	return c.downloadExport(ctx, "exports.services", c.endpoint("/services", q), destDir, name)
}

func (c *Client) downloadExport(ctx context.Context, operation, endpoint, destDir, filename string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	if err := c.addHeaders(req); err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("operation", operation).Msg("export request failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		err := c.decodeError(operation, resp)
		c.log.Error().Err(err).Str("operation", operation).Msg("export rejected")
		return "", err
	}

	path := filepath.Join(destDir, filename)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create export file: %w", err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("write export file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}

	c.log.Info().
		Str("operation", operation).
		Str("file_path", path).
		Dur("elapsed", time.Since(started)).
		Msg("export saved")

	return path, nil
}
