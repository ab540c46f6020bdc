package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/format"
	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

type ServiceFilter struct {
	Page          int
	Size          int
	From          time.Time
	To            time.Time
	ClientName    string
	Phone         string
	Status        string
	ServiceTypeID int64
	DoctorID      int64
}

func (f ServiceFilter) query() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(f.Page, 1)))
	if f.Size > 0 {
		q.Set("size", strconv.Itoa(f.Size))
	}
	if !f.From.IsZero() {
		q.Set("from_date", format.Date(f.From))
	}
	if !f.To.IsZero() {
		q.Set("to_date", format.Date(f.To))
	}
	if f.ClientName != "" {
		q.Set("client_name", f.ClientName)
	}
	if f.Phone != "" {
		q.Set("phone", format.DigitsOnly(f.Phone))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.ServiceTypeID > 0 {
		q.Set("service_type_id", strconv.FormatInt(f.ServiceTypeID, 10))
	}
	if f.DoctorID > 0 {
		q.Set("doctor_id", strconv.FormatInt(f.DoctorID, 10))
	}
	return q
}

// ServiceInput is the service dialog payload with its cash/card split.
type ServiceInput struct {
	ID             int64   `json:"id,omitempty"`
	ClientName     string  `json:"client_name"`
	Phone          string  `json:"phone"`
	Status         string  `json:"status,omitempty"`
	Amount         string  `json:"amount"`
	CashAmount     string  `json:"cash_amount,omitempty"`
	CardAmount     string  `json:"card_amount,omitempty"`
	PaymentType    string  `json:"payment_type"`
	ServiceTypeIDs []int64 `json:"service_type_ids"`
	UserID         int64   `json:"user_id,omitempty"`
	RejectComment  string  `json:"reject_comment,omitempty"`
}

func (c *Client) ListServices(ctx context.Context, filter ServiceFilter) (*models.Envelope[models.Service], error) {
	var out models.Envelope[models.Service]
	err := c.doGet(ctx, "services.list", c.endpoint("/services", filter.query()), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetService(ctx context.Context, id int64) (*models.Service, error) {
	var out models.Single[models.Service]
	endpoint := c.endpoint(fmt.Sprintf("/services/%d", id), nil)
	if err := c.doGet(ctx, "services.get", endpoint, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) CreateService(ctx context.Context, input ServiceInput) (*models.Service, error) {
	var out models.Single[models.Service]
	err := c.doJSON(ctx, "services.create", http.MethodPost, c.endpoint("/services", nil), input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateService(ctx context.Context, id int64, input ServiceInput) (*models.Service, error) {
	var out models.Single[models.Service]
	endpoint := c.endpoint(fmt.Sprintf("/services/%d", id), nil)
	err := c.doJSON(ctx, "services.update", http.MethodPut, endpoint, input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	endpoint := c.endpoint(fmt.Sprintf("/services/%d", id), nil)
	return c.do(ctx, "services.delete", http.MethodDelete, endpoint, nil, nil)
}
