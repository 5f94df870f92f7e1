package catalog

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const productColumns = `p.id::text, p.name, p.description, p.price, p.sale_price, p.discount, p.image,
	COALESCE(c.name, ''), p.category_id::text, p.rating, p.reviews, p.on_sale, p.popular`

type postgresRepo struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresRepository(db *sql.DB, logger *logrus.Logger) Repository {
	return &postgresRepo{db: db, log: logger}
}

func scanProduct(scan func(...interface{}) error) (*Product, error) {
	p := &Product{}
	var discount sql.NullInt64
	err := scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.SalePrice, &discount, &p.Image,
		&p.Category, &p.CategoryID, &p.Rating, &p.Reviews, &p.OnSale, &p.Popular)
	if err != nil {
		return nil, err
	}
	if discount.Valid {
		d := int(discount.Int64)
		p.Discount = &d
	}
	if p.Image == "" {
		p.Image = PlaceholderImage
	}
	return p, nil
}

func (r *postgresRepo) ListProducts(ctx context.Context) ([]*Product, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	products := []*Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate products")
	}
	return products, nil
}

func (r *postgresRepo) GetProduct(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, uid)
	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product %s", id)
	}
	return p, nil
}

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, name, description, price, sale_price, discount, image, category_id, rating, reviews, on_sale, popular)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.Name, p.Description, p.Price, p.SalePrice, nullableInt(p.Discount), p.Image,
		p.CategoryID, p.Rating, p.Reviews, p.OnSale, p.Popular)
	if err != nil {
		return r.mapError(err, "create product")
	}
	r.log.WithFields(logrus.Fields{"product_id": p.ID, "name": p.Name}).Info("Product created")
	return nil
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name=$1, description=$2, price=$3, sale_price=$4, discount=$5, image=$6,
		    category_id=$7, rating=$8, reviews=$9, on_sale=$10, popular=$11, updated_at=NOW()
		WHERE id=$12`,
		p.Name, p.Description, p.Price, p.SalePrice, nullableInt(p.Discount), p.Image,
		p.CategoryID, p.Rating, p.Reviews, p.OnSale, p.Popular, p.ID)
	if err != nil {
		return r.mapError(err, "update product")
	}
	return expectOneRow(res)
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id=$1`, uid)
	if err != nil {
		return errors.Wrapf(err, "delete product %s", id)
	}
	return expectOneRow(res)
}

func scanCategory(scan func(...interface{}) error) (*Category, error) {
	c := &Category{}
	if err := scan(&c.ID, &c.Name, &c.Icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id::text, name, icon, created_at, updated_at
		FROM categories ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "query categories")
	}
	defer rows.Close()

	categories := []*Category{}
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, errors.Wrap(err, "scan category")
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate categories")
	}
	return categories, nil
}

func (r *postgresRepo) GetCategory(ctx context.Context, id string) (*Category, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT id::text, name, icon, created_at, updated_at
		FROM categories WHERE id=$1`, uid)
	c, err := scanCategory(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get category %s", id)
	}
	return c, nil
}

func (r *postgresRepo) CreateCategory(ctx context.Context, c *Category) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, icon) VALUES ($1,$2,$3)
		RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Icon).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return r.mapError(err, "create category")
	}
	r.log.WithFields(logrus.Fields{"category_id": c.ID, "name": c.Name}).Info("Category created")
	return nil
}

func (r *postgresRepo) UpdateCategory(ctx context.Context, c *Category) error {
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories SET name=$1, icon=$2, updated_at=NOW()
		WHERE id=$3
		RETURNING created_at, updated_at`,
		c.Name, c.Icon, c.ID).Scan(&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return r.mapError(err, "update category")
	}
	return nil
}

func (r *postgresRepo) DeleteCategory(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, uid)
	if err != nil {
		return r.mapError(err, "delete category")
	}
	return expectOneRow(res)
}

// mapError translates constraint violations into catalog errors.
func (r *postgresRepo) mapError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503": // foreign_key_violation
			r.log.Warnf("%s: foreign key violation: %s", op, pqErr.Message)
			if op == "delete category" {
				return ErrCategoryInUse
			}
			return ErrUnknownCategory
		case "23505": // unique_violation
			return ErrDuplicate
		case "23514": // check_violation
			return errors.Wrapf(ErrInvalid, "%s", pqErr.Message)
		}
	}
	r.log.Errorf("%s: %v", op, err)
	return errors.Wrap(err, op)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
