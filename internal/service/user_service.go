package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-assistance-api/internal/cache"
	"event-assistance-api/internal/model"
	"event-assistance-api/internal/repository"
	apperrors "event-assistance-api/pkg/app_errors"
	"event-assistance-api/pkg/logger"

	"go.uber.org/zap"
)

type UserService interface {
	Create(ctx context.Context, profile *model.UserProfile) (*model.User, error)
	// ValidateByIdentification reports whether the identification is already
	// registered; it never mutates storage.
	ValidateByIdentification(ctx context.Context, identification string) (*model.User, bool, error)
	Total(ctx context.Context) (int, error)
	Distribution(ctx context.Context, field string) (map[string]int, error)
}

type UserServiceImpl struct {
	repo       repository.UserRepository
	statsCache cache.StatsCache
}

func NewUserService(repo repository.UserRepository, statsCache cache.StatsCache) UserService {
	return &UserServiceImpl{repo: repo, statsCache: statsCache}
}

// UserFromProfile validates the mandatory profile fields and converts the
// wire payload into a User.
func UserFromProfile(profile *model.UserProfile) (*model.User, error) {
	if profile == nil || profile.FullName == "" || profile.Identification == "" || profile.BirthDate == "" {
		return nil, fmt.Errorf("%w: fullName, identification y birthDate son obligatorios", apperrors.ErrInvalidInput)
	}

	birthDate, err := time.Parse("2006-01-02", profile.BirthDate)
	if err != nil {
		return nil, fmt.Errorf("%w: birthDate debe tener formato YYYY-MM-DD", apperrors.ErrInvalidInput)
	}

	return &model.User{
		FullName:       profile.FullName,
		Identification: profile.Identification,
		DocumentType:   profile.DocumentType,
		BirthDate:      birthDate,
		Phone:          profile.Phone,
		Email:          profile.Email,
		OSIGD:          profile.OSIGD,
		Gender:         profile.Gender,
		Ethnicity:      profile.Ethnicity,
		Disability:     profile.Disability,
		Leader:         profile.Leader,
		Migrant:        profile.Migrant,
		Organization:   profile.Organization,
		Municipality:   profile.Municipality,
		Department:     profile.Department,
	}, nil
}

func (s *UserServiceImpl) Create(ctx context.Context, profile *model.UserProfile) (*model.User, error) {
	user, err := UserFromProfile(profile)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.statsCache.InvalidateUserStats(ctx); err != nil {
		logger.WithComponent("service").Warn("Failed to invalidate user stats cache", zap.Error(err))
	}

	return created, nil
}

func (s *UserServiceImpl) ValidateByIdentification(ctx context.Context, identification string) (*model.User, bool, error) {
	user, err := s.repo.FindByIdentification(ctx, identification)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserServiceImpl) Total(ctx context.Context) (int, error) {
	if total, ok, err := s.statsCache.GetTotalUsers(ctx); err == nil && ok {
		return total, nil
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.statsCache.SetTotalUsers(ctx, total); err != nil {
		logger.WithComponent("service").Warn("Failed to cache user total", zap.Error(err))
	}

	return total, nil
}

func (s *UserServiceImpl) Distribution(ctx context.Context, field string) (map[string]int, error) {
	if distribution, ok, err := s.statsCache.GetDistribution(ctx, field); err == nil && ok {
		return distribution, nil
	}

	distribution, err := s.repo.CountByField(ctx, field)
	if err != nil {
		return nil, err
	}

	if err := s.statsCache.SetDistribution(ctx, field, distribution); err != nil {
		logger.WithComponent("service").Warn("Failed to cache distribution",
			zap.String("field", field), zap.Error(err))
	}

	return distribution, nil
}
