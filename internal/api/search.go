package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

// Input-search lookups populate filter dropdowns. Responses are cached in
// redis when configured; a stale dropdown is harmless and the queries are hot.

func (c *Client) SearchDoctors(ctx context.Context, term string) ([]models.User, error) {
	cacheKey := fmt.Sprintf("search:doctors:%s", term)

	var out models.Envelope[models.User]
	if c.readCache(ctx, cacheKey, &out) {
		return out.Data, nil
	}

	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	err := c.doGet(ctx, "search.doctors", c.endpoint("/users/input-search", q), &out)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, out)
	return out.Data, nil
}

func (c *Client) SearchServiceTypes(ctx context.Context, term string) ([]models.ServiceType, error) {
	cacheKey := fmt.Sprintf("search:service_types:%s", term)

	var out models.Envelope[models.ServiceType]
	if c.readCache(ctx, cacheKey, &out) {
		return out.Data, nil
	}

	q := url.Values{}
	if term != "" {
		q.Set("q", term)
	}
	err := c.doGet(ctx, "search.service_types", c.endpoint("/service-types/input-search", q), &out)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, out)
	return out.Data, nil
}
