package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned by Login when the username or password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession is returned when a session token is unknown.
	ErrInvalidSession = errors.New("invalid_session")
	// ErrSessionExpired is returned when a session token has passed its expiry.
	ErrSessionExpired = errors.New("session_expired")
)

// ValidationError reports a missing or malformed required field. Handlers
// show Message next to the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field string) error {
	return &ValidationError{Field: field, Message: field + " is required"}
}
