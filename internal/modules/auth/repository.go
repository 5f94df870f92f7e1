package auth

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrDuplicate          = errors.New("admin already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type Repository interface {
	GetAdminByEmail(ctx context.Context, email string) (*Admin, error)
	CreateAdmin(ctx context.Context, admin *Admin) error
}
