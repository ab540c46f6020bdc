package api

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// ListLogs pages through the activity log: service snapshots with their price
// differences and raw activity payloads.
func (c *Client) ListLogs(ctx context.Context, page, size int, from, to time.Time) (*models.Envelope[models.LogEntry], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
	if !from.IsZero() {
		q.Set("from_date", format.Date(from))
	}
	if !to.IsZero() {
		q.Set("to_date", format.Date(to))
	}

	var out models.Envelope[models.LogEntry]
	err := c.doGet(ctx, "logs.list", c.endpoint("/logs", q), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
