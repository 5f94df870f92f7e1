package catalog

import (
	"context"
	"io"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type memRepo struct {
	products   []*Product
	categories map[string]*Category
	fail       error
}

func newMemRepo() *memRepo {
	return &memRepo{categories: map[string]*Category{}}
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func (m *memRepo) ListProducts(context.Context) ([]*Product, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := make([]*Product, len(m.products))
	for i, p := range m.products {
		cp := *p
		out[i] = &cp
	}
	return out, nil
}

func (m *memRepo) GetProduct(_ context.Context, id string) (*Product, error) {
	for _, p := range m.products {
		if p.ID == id {
			cp := *p
			if c, ok := m.categories[cp.CategoryID]; ok {
				cp.Category = c.Name
			}
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memRepo) CreateProduct(_ context.Context, p *Product) error {
	cp := *p
	m.products = append(m.products, &cp)
	return nil
}

func (m *memRepo) UpdateProduct(_ context.Context, p *Product) error {
	for i, existing := range m.products {
		if existing.ID == p.ID {
			cp := *p
			m.products[i] = &cp
			return nil
		}
	}
	return ErrNotFound
}

func (m *memRepo) DeleteProduct(_ context.Context, id string) error {
	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memRepo) ListCategories(context.Context) ([]*Category, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	out := []*Category{}
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func (m *memRepo) GetCategory(_ context.Context, id string) (*Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) CreateCategory(_ context.Context, c *Category) error {
	for _, existing := range m.categories {
		if existing.Name == c.Name {
			return ErrDuplicate
		}
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *memRepo) UpdateCategory(_ context.Context, c *Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return ErrNotFound
	}
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *memRepo) DeleteCategory(_ context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return ErrNotFound
	}
	for _, p := range m.products {
		if p.CategoryID == id {
			return ErrCategoryInUse
		}
	}
	delete(m.categories, id)
	return nil
}

var errBackendDown = errors.New("connection refused")

func product(id, name string, price int64) *Product {
	return &Product{ID: id, Name: name, Price: decimal.NewFromInt(price), Rating: 5}
}
