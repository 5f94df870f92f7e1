package auth

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-faster/errors"
	"github.com/lib/pq"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) CreateAdmin(ctx context.Context, admin *Admin) error {
	query := `
		INSERT INTO admin_users (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, admin.ID, strings.ToLower(admin.Email), admin.PasswordHash, admin.Name).
		Scan(&admin.CreatedAt, &admin.UpdatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "insert admin")
	}
	return nil
}

func (r *postgresRepository) GetAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	admin := &Admin{}
	query := `
		SELECT id, email, password_hash, name, created_at, updated_at
		FROM admin_users
		WHERE email = $1
	`
	err := r.db.QueryRowContext(ctx, query, strings.ToLower(email)).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.CreatedAt,
		&admin.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "select admin")
	}
	return admin, nil
}
