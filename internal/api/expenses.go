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

type ExpenseInput struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Amount      string `json:"amount"`
}

func (c *Client) ListExpenses(ctx context.Context, page, size int, from, to time.Time) (*models.Envelope[models.Expense], error) {
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

	var out models.Envelope[models.Expense]
	err := c.doGet(ctx, "expenses.list", c.endpoint("/expenses", q), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateExpense(ctx context.Context, input ExpenseInput) (*models.Expense, error) {
	var out models.Single[models.Expense]
	err := c.doJSON(ctx, "expenses.create", http.MethodPost, c.endpoint("/expenses", nil), input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, input ExpenseInput) (*models.Expense, error) {
	var out models.Single[models.Expense]
	endpoint := c.endpoint(fmt.Sprintf("/expenses/%d", id), nil)
	err := c.doJSON(ctx, "expenses.update", http.MethodPut, endpoint, input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	endpoint := c.endpoint(fmt.Sprintf("/expenses/%d", id), nil)
	return c.do(ctx, "expenses.delete", http.MethodDelete, endpoint, nil, nil)
}
