package api

import (
	"context"
	"net/http"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// Login exchanges credentials for a bearer token. This is the only call that
// goes out without one.
func (c *Client) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	var out models.Single[LoginResult]
	err := c.doJSON(ctx, "auth.login", http.MethodPost, c.endpoint("/login", nil), input, &out)
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Logout invalidates the token server-side; local state is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "auth.logout", http.MethodPost, c.endpoint("/logout", nil), nil, nil)
}
