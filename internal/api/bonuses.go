package api

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// ListBonuses returns the per-doctor totals with day breakdowns for a period.
func (c *Client) ListBonuses(ctx context.Context, from, to time.Time) ([]models.Bonus, error) {
	q := url.Values{}
	if !from.IsZero() {
		q.Set("from_date", format.Date(from))
	}
	if !to.IsZero() {
		q.Set("to_date", format.Date(to))
	}

	var out models.Envelope[models.Bonus]
	err := c.doGet(ctx, "bonuses.list", c.endpoint("/bonuses", q), &out)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) GetBonusCoefficient(ctx context.Context) (*models.BonusCoefficient, error) {
	var out models.Single[models.BonusCoefficient]
	err := c.doGet(ctx, "bonuses.coefficient", c.endpoint("/settings/bonus-coefficient", nil), &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateBonusCoefficient patches the global divisor. The bonuses view calls
// this on every value change, fire-and-forget.
func (c *Client) UpdateBonusCoefficient(ctx context.Context, value float64) error {
	body := map[string]float64{"value": value}
	return c.doJSON(ctx, "bonuses.coefficient_update", http.MethodPatch,
		c.endpoint("/settings/bonus-coefficient", nil), body, nil)
}
