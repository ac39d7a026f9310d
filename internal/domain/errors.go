package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalid      = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnreachable  = errors.New("service unreachable")

	ErrUserExists     = fmt.Errorf("%w: user already exists", ErrInvalid)
	ErrEmptyText      = fmt.Errorf("%w: task text is empty", ErrInvalid)
	ErrNoSession      = fmt.Errorf("%w: not logged in", ErrUnauthorized)
	ErrSecretNotFound = errors.New("secret not found")
	ErrNotEditing     = errors.New("no task is being edited")
)
