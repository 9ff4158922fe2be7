package types

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrValidation         = errors.New("invalid request")
	ErrExportUnavailable  = errors.New("export sink not configured")
	ErrInvalidCredentials = fmt.Errorf("%w: incorrect username or password", ErrValidation)

	// Registration reports a taken username as a bad request, not a conflict.
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", ErrValidation)
)
