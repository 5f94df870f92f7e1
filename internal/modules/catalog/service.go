package catalog

import (
	"context"
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service defines catalog business logic.
type Service interface {
	// ListProducts never returns a nil slice. When the repository fails it logs, returns an
	// empty listing and an error wrapping ErrUnavailable so callers can degrade gracefully.
	ListProducts(ctx context.Context, f ProductFilter) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, req ProductRequest) (*Product, error)
	UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error

	// ListCategories fails open like ListProducts.
	ListCategories(ctx context.Context) ([]*Category, error)
	CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error)
	UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

const defaultRating = 5

var validate = validator.New()

type service struct {
	repo Repository
	log  *logrus.Logger
}

func NewService(repo Repository, logger *logrus.Logger) Service {
	return &service{repo: repo, log: logger}
}

func (s *service) ListProducts(ctx context.Context, f ProductFilter) ([]*Product, error) {
	all, err := s.repo.ListProducts(ctx)
	if err != nil {
		s.log.WithError(err).Error("Error fetching products")
		return []*Product{}, errors.Wrap(ErrUnavailable, err.Error())
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	products := make([]*Product, 0, len(all))
	for _, p := range all {
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Description), query) {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.OnSale && !p.OnSale {
			continue
		}
		if f.Popular && !p.Popular {
			continue
		}
		products = append(products, p)
	}

	sortProducts(products, f.Sort)
	return products, nil
}

func sortProducts(products []*Product, order SortOrder) {
	switch order {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b *Product) int {
			return a.UnitPrice().Cmp(b.UnitPrice())
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b *Product) int {
			return b.UnitPrice().Cmp(a.UnitPrice())
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b *Product) int {
			return b.Rating - a.Rating
		})
	default:
		slices.SortStableFunc(products, func(a, b *Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, req ProductRequest) (*Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	p := &Product{ID: uuid.NewString()}
	applyProduct(p, req)
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetProduct(ctx, p.ID)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req ProductRequest) (*Product, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	applyProduct(p, req)
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetProduct(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.log.WithError(err).Error("Error fetching categories")
		return []*Category{}, errors.Wrap(ErrUnavailable, err.Error())
	}
	return categories, nil
}

func (s *service) CreateCategory(ctx context.Context, req CategoryRequest) (*Category, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}
	c := &Category{ID: uuid.NewString(), Name: strings.TrimSpace(req.Name), Icon: req.Icon}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, req CategoryRequest) (*Category, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Icon = req.Icon
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.repo.DeleteCategory(ctx, id)
}

func validateProduct(req ProductRequest) error {
	if err := validate.Struct(req); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if req.Price.IsNegative() {
		return errors.Wrap(ErrInvalid, "price must not be negative")
	}
	if req.SalePrice.Valid && req.SalePrice.Decimal.IsNegative() {
		return errors.Wrap(ErrInvalid, "sale price must not be negative")
	}
	return nil
}

func applyProduct(p *Product, req ProductRequest) {
	p.Name = strings.TrimSpace(req.Name)
	p.Description = req.Description
	p.Price = req.Price
	p.SalePrice = req.SalePrice
	p.Discount = req.Discount
	p.Image = req.Image
	p.CategoryID = req.CategoryID
	p.Rating = req.Rating
	if p.Rating == 0 {
		p.Rating = defaultRating
	}
	p.Reviews = req.Reviews
	p.OnSale = req.OnSale
	p.Popular = req.Popular
}
