package repository

import (
	"context"
	"errors"

	"event-assistance-api/internal/model"
	apperrors "event-assistance-api/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) (*model.Admin, error)
	List(ctx context.Context) ([]*model.Admin, error)
	FindByEmail(ctx context.Context, email string) (*model.Admin, error)
	Delete(ctx context.Context, id int) error
}

type AdminRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAdminRepository(pool *pgxpool.Pool) AdminRepository {
	return &AdminRepositoryImpl{
		pool: pool,
	}
}

func (r *AdminRepositoryImpl) Create(ctx context.Context, admin *model.Admin) (*model.Admin, error) {
	query := `
		INSERT INTO admins (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, email, password_hash, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		admin.Email, admin.PasswordHash,
	).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, err
	}
	return admin, nil
}

func (r *AdminRepositoryImpl) List(ctx context.Context) ([]*model.Admin, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM admins
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := make([]*model.Admin, 0)
	for rows.Next() {
		var admin model.Admin
		err := rows.Scan(
			&admin.ID,
			&admin.Email,
			&admin.PasswordHash,
			&admin.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		admins = append(admins, &admin)
	}
	return admins, rows.Err()
}

func (r *AdminRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.Admin, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM admins
		WHERE email = $1
	`

	var admin model.Admin
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `
		DELETE FROM admins
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAdminNotFound
	}

	return nil
}
