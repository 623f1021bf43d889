package users

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven los adapters cuando el username no existe.
var ErrNotFound = errors.New("user not found")

// Repository resuelve usuarios por login handle.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (User, error)
}
