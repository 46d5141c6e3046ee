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

type AssistanceRepository interface {
	Create(ctx context.Context, assistance *model.Assistance) (*model.Assistance, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID int) (*model.Assistance, error)
	CreateParentalAuthorization(ctx context.Context, auth *model.ParentalAuthorization) (*model.ParentalAuthorization, error)
}

type AssistanceRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewAssistanceRepository(pool *pgxpool.Pool) AssistanceRepository {
	return &AssistanceRepositoryImpl{
		pool: pool,
	}
}

func (r *AssistanceRepositoryImpl) Create(ctx context.Context, assistance *model.Assistance) (*model.Assistance, error) {
	query := `
		INSERT INTO assistance (user_id, event_id, signature_path, photo_path)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, event_id, signature_path, photo_path, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		assistance.UserID, assistance.EventID, assistance.SignaturePath, assistance.PhotoPath,
	).Scan(
		&assistance.ID,
		&assistance.UserID,
		&assistance.EventID,
		&assistance.SignaturePath,
		&assistance.PhotoPath,
		&assistance.CreatedAt,
	)
	if err != nil {
		// Two concurrent registrations can both pass the pre-check; the
		// unique (user_id, event_id) constraint decides who wins.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.ErrAlreadyRegistered
		}
		return nil, err
	}
	return assistance, nil
}

func (r *AssistanceRepositoryImpl) FindByUserAndEvent(ctx context.Context, userID, eventID int) (*model.Assistance, error) {
	query := `
		SELECT id, user_id, event_id, signature_path, photo_path, created_at
		FROM assistance
		WHERE user_id = $1 AND event_id = $2
	`

	var assistance model.Assistance
	err := r.pool.QueryRow(ctx, query, userID, eventID).Scan(
		&assistance.ID,
		&assistance.UserID,
		&assistance.EventID,
		&assistance.SignaturePath,
		&assistance.PhotoPath,
		&assistance.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrAssistanceNotFound
		}
		return nil, err
	}
	return &assistance, nil
}

func (r *AssistanceRepositoryImpl) CreateParentalAuthorization(ctx context.Context, auth *model.ParentalAuthorization) (*model.ParentalAuthorization, error) {
	query := `
		INSERT INTO parental_authorizations (user_id, event_id, authorization_path)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, event_id, authorization_path, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		auth.UserID, auth.EventID, auth.AuthorizationPath,
	).Scan(
		&auth.ID,
		&auth.UserID,
		&auth.EventID,
		&auth.AuthorizationPath,
		&auth.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return auth, nil
}
