package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

type ServiceTypeInput struct {
	ID           int64  `json:"id,omitempty"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	ShowCustomer bool   `json:"show_customer"`
}

func (c *Client) ListServiceTypes(ctx context.Context, page, size int) (*models.Envelope[models.ServiceType], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}

	var out models.Envelope[models.ServiceType]
	err := c.doGet(ctx, "service_types.list", c.endpoint("/service-types", q), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateServiceType(ctx context.Context, input ServiceTypeInput) (*models.ServiceType, error) {
	var out models.Single[models.ServiceType]
	err := c.doJSON(ctx, "service_types.create", http.MethodPost, c.endpoint("/service-types", nil), input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateServiceType(ctx context.Context, id int64, input ServiceTypeInput) (*models.ServiceType, error) {
	var out models.Single[models.ServiceType]
	endpoint := c.endpoint(fmt.Sprintf("/service-types/%d", id), nil)
	err := c.doJSON(ctx, "service_types.update", http.MethodPut, endpoint, input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteServiceType(ctx context.Context, id int64) error {
	endpoint := c.endpoint(fmt.Sprintf("/service-types/%d", id), nil)
	return c.do(ctx, "service_types.delete", http.MethodDelete, endpoint, nil, nil)
}
