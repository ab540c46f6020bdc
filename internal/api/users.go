package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

type UserInput struct {
	ID                   int64  `json:"id,omitempty"`
	Name                 string `json:"name"`
	Surname              string `json:"surname"`
	Email                string `json:"email"`
	RoleID               int64  `json:"role_id"`
	IsVisible            bool   `json:"is_visible"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context, page, size int) (*models.Envelope[models.User], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}

	var out models.Envelope[models.User]
	err := c.doGet(ctx, "users.list", c.endpoint("/users", q), &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUser(ctx context.Context, input UserInput) (*models.User, error) {
	var out models.Single[models.User]
	err := c.doJSON(ctx, "users.create", http.MethodPost, c.endpoint("/users", nil), input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) (*models.User, error) {
	var out models.Single[models.User]
	endpoint := c.endpoint(fmt.Sprintf("/users/%d", id), nil)
	err := c.doJSON(ctx, "users.update", http.MethodPut, endpoint, input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	endpoint := c.endpoint(fmt.Sprintf("/users/%d", id), nil)
	return c.do(ctx, "users.delete", http.MethodDelete, endpoint, nil, nil)
}

// SelfInfo returns the authenticated user with the role's permission list;
// the console gates every tab and control on it.
func (c *Client) SelfInfo(ctx context.Context) (*models.User, error) {
	var out models.Single[models.User]
	err := c.doGet(ctx, "users.self", c.endpoint("/users/self-info", nil), &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) ListRoles(ctx context.Context) ([]models.Role, error) {
	var out models.Envelope[models.Role]
	err := c.doGet(ctx, "roles.list", c.endpoint("/roles", nil), &out)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}
