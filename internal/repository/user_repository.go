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

const userColumns = `
	id, full_name, identification, document_type, birth_date, phone, email,
	osigd, gender, ethnicity, disability, leader, migrant,
	organization, municipality, department, created_at
`

type UserRepository interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	FindByID(ctx context.Context, id int) (*model.User, error)
	FindByIdentification(ctx context.Context, identification string) (*model.User, error)
	CountAll(ctx context.Context) (int, error)
	CountByField(ctx context.Context, field string) (map[string]int, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func scanUser(row pgx.Row, user *model.User) error {
	return row.Scan(
		&user.ID,
		&user.FullName,
		&user.Identification,
		&user.DocumentType,
		&user.BirthDate,
		&user.Phone,
		&user.Email,
		&user.OSIGD,
		&user.Gender,
		&user.Ethnicity,
		&user.Disability,
		&user.Leader,
		&user.Migrant,
		&user.Organization,
		&user.Municipality,
		&user.Department,
		&user.CreatedAt,
	)
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (
			full_name, identification, document_type, birth_date, phone, email,
			osigd, gender, ethnicity, disability, leader, migrant,
			organization, municipality, department
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + userColumns

	row := r.pool.QueryRow(ctx, query,
		user.FullName, user.Identification, user.DocumentType, user.BirthDate,
		user.Phone, user.Email, user.OSIGD, user.Gender, user.Ethnicity,
		user.Disability, user.Leader, user.Migrant,
		user.Organization, user.Municipality, user.Department,
	)

	if err := scanUser(row, user); err != nil {
		// The unique constraint is the authoritative duplicate signal; a
		// prior existence check cannot rule out a concurrent insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrDuplicateIdentification
		}
		return nil, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, id), &user); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByIdentification(ctx context.Context, identification string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE identification = $1`

	var user model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, identification), &user); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) CountAll(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}

// countableFields guards CountByField against arbitrary column injection.
var countableFields = map[string]string{
	"gender":  "COALESCE(gender, 'sin dato')",
	"osigd":   "COALESCE(osigd, 'sin dato')",
	"migrant": "migrant::text",
	"leader":  "leader::text",
}

func (r *UserRepositoryImpl) CountByField(ctx context.Context, field string) (map[string]int, error) {
	expr, ok := countableFields[field]
	if !ok {
		return nil, apperrors.ErrInvalidInput
	}

	query := `SELECT ` + expr + ` AS category, COUNT(*) FROM users GROUP BY category ORDER BY category`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distribution := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		distribution[category] = count
	}
	return distribution, rows.Err()
}
