package service

import (
	"context"
	"errors"

	"event-assistance-api/internal/auth"
	"event-assistance-api/internal/model"
	"event-assistance-api/internal/repository"
	apperrors "event-assistance-api/pkg/app_errors"

	"golang.org/x/crypto/bcrypt"
)

type AdminService interface {
	Create(ctx context.Context, email, password string) (*model.Admin, error)
	// Login fails uniformly for unknown emails and wrong passwords.
	Login(ctx context.Context, email, password string) (string, error)
	List(ctx context.Context) ([]*model.Admin, error)
	Delete(ctx context.Context, id int) error
}

type AdminServiceImpl struct {
	repo       repository.AdminRepository
	jwtManager *auth.JWTManager
}

func NewAdminService(repo repository.AdminRepository, jwtManager *auth.JWTManager) AdminService {
	return &AdminServiceImpl{repo: repo, jwtManager: jwtManager}
}

func (s *AdminServiceImpl) Create(ctx context.Context, email, password string) (*model.Admin, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Email:        email,
		PasswordHash: string(hash),
	}

	return s.repo.Create(ctx, admin)
}

func (s *AdminServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	return s.jwtManager.Generate(admin.ID, admin.Email)
}

func (s *AdminServiceImpl) List(ctx context.Context) ([]*model.Admin, error) {
	return s.repo.List(ctx)
}

func (s *AdminServiceImpl) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
