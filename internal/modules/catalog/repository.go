package catalog

import (
	"context"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrUnknownCategory = errors.New("category does not exist")
	ErrCategoryInUse   = errors.New("category still has products")
	ErrDuplicate       = errors.New("already exists")
	ErrInvalid         = errors.New("invalid request")
	ErrUnavailable     = errors.New("catalog unavailable")
)

// Repository defines persistence for products and categories.
type Repository interface {
	// ListProducts returns every product, newest first, with its category name resolved.
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id string) error

	// ListCategories returns every category ordered by name.
	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error
}
