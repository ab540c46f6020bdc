package api

import (
	"errors"
	"fmt"
)

// messageUserNotAuthorized is the backend global message that means the stored
// token is no longer valid.
const messageUserNotAuthorized = "USER_NOT_AUTHORIZED"

var (
	// ErrUnauthorized forces a logout: the session must be cleared and the
	// operator returned to login.
	ErrUnauthorized = errors.New("user not authorized")

	// ErrNoToken is returned by a token source when no session exists yet.
	ErrNoToken = errors.New("no stored token")
)

// APIError is a backend failure with the server-provided message.
type APIError struct {
	Status    int
	Message   string
	Operation string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Operation, e.Message, e.Status)
}
