package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"regexp"
	"time"

	"event-assistance-api/internal/cache"
	"event-assistance-api/internal/model"
	"event-assistance-api/internal/repository"
	"event-assistance-api/internal/storage"
	apperrors "event-assistance-api/pkg/app_errors"
	"event-assistance-api/pkg/logger"

	"go.uber.org/zap"
)

const (
	signatureFolder     = "signatures"
	photoFolder         = "photos"
	authorizationFolder = "parental-authorizations"
)

var dataURLPrefix = regexp.MustCompile(`^data:image/\w+;base64,`)

// RegistrationService orchestrates the attendance workflow: resolve the
// user, check for a duplicate registration, store the proof artifact and
// persist the assistance record.
type RegistrationService interface {
	Register(ctx context.Context, input model.RegistrationInput) (*model.RegistrationResult, error)
	// RegisterBatch processes items strictly in input order, one at a time;
	// per-item failures become result entries and never abort the batch.
	RegisterBatch(ctx context.Context, input model.BatchRegistrationInput) []model.BatchItemResult
	RegisterParentalAuthorization(ctx context.Context, input model.RegistrationInput) (*model.ParentalAuthorization, error)
}

type RegistrationServiceImpl struct {
	userRepo       repository.UserRepository
	assistanceRepo repository.AssistanceRepository
	store          storage.ObjectStore
	statsCache     cache.StatsCache
}

func NewRegistrationService(
	userRepo repository.UserRepository,
	assistanceRepo repository.AssistanceRepository,
	store storage.ObjectStore,
	statsCache cache.StatsCache,
) RegistrationService {
	return &RegistrationServiceImpl{
		userRepo:       userRepo,
		assistanceRepo: assistanceRepo,
		store:          store,
		statsCache:     statsCache,
	}
}

func (s *RegistrationServiceImpl) Register(ctx context.Context, input model.RegistrationInput) (*model.RegistrationResult, error) {
	if input.EventID <= 0 {
		return nil, fmt.Errorf("%w: eventId debe ser un número válido", apperrors.ErrInvalidInput)
	}

	userID, err := s.resolveUser(ctx, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	if err := s.checkNotRegistered(ctx, userID, input.EventID); err != nil {
		return nil, err
	}

	// The artifact is uploaded before the insert that references it, so a
	// storage failure aborts with no database mutation for this request.
	var signaturePath, photoPath *string
	var fileURL string

	switch {
	case input.Signature != "":
		fileURL, err = s.uploadSignature(ctx, input.Signature)
		if err != nil {
			return nil, err
		}
		signaturePath = &fileURL
	case len(input.Photo) > 0:
		fileURL, err = s.store.Upload(ctx, input.Photo, input.PhotoName, photoFolder)
		if err != nil {
			return nil, err
		}
		photoPath = &fileURL
	}

	assistance := &model.Assistance{
		UserID:        userID,
		EventID:       input.EventID,
		SignaturePath: signaturePath,
		PhotoPath:     photoPath,
	}

	created, err := s.assistanceRepo.Create(ctx, assistance)
	if err != nil {
		s.compensateUpload(fileURL)
		return nil, err
	}

	return &model.RegistrationResult{
		AssistanceID: created.ID,
		UserID:       userID,
		FileURL:      fileURL,
	}, nil
}

func (s *RegistrationServiceImpl) RegisterBatch(ctx context.Context, input model.BatchRegistrationInput) []model.BatchItemResult {
	results := make([]model.BatchItemResult, 0, len(input.Users))

	for _, item := range input.Users {
		profile := item.UserProfile
		result, err := s.Register(ctx, model.RegistrationInput{
			EventID:   input.EventID,
			Profile:   &profile,
			Signature: item.Signature,
		})

		entry := model.BatchItemResult{Identification: item.Identification}
		switch {
		case err == nil:
			entry.AssistanceID = result.AssistanceID
			if result.FileURL != "" {
				entry.SignaturePath = result.FileURL
			} else {
				entry.Message = "Asistencia registrada sin archivo."
			}
		case errors.Is(err, apperrors.ErrAlreadyRegistered):
			entry.Message = "El usuario ya está registrado en este evento."
		case errors.Is(err, apperrors.ErrStorageUnavailable):
			entry.Error = "Error al subir la firma."
		case errors.Is(err, apperrors.ErrInvalidInput):
			entry.Error = err.Error()
		default:
			logger.WithComponent("service").Error("Batch item failed",
				zap.String("identification", item.Identification), zap.Error(err))
			entry.Error = "Error al registrar la asistencia."
		}
		results = append(results, entry)
	}

	return results
}

func (s *RegistrationServiceImpl) RegisterParentalAuthorization(ctx context.Context, input model.RegistrationInput) (*model.ParentalAuthorization, error) {
	if input.EventID <= 0 {
		return nil, fmt.Errorf("%w: eventId debe ser un número válido", apperrors.ErrInvalidInput)
	}
	if len(input.Photo) == 0 {
		return nil, fmt.Errorf("%w: debe proporcionar un archivo de autorización", apperrors.ErrInvalidInput)
	}

	userID, err := s.resolveUser(ctx, input.UserID, input.Profile)
	if err != nil {
		return nil, err
	}

	// No duplicate check here: repeated authorization uploads for the same
	// (user, event) pair are accepted.
	fileURL, err := s.store.Upload(ctx, input.Photo, input.PhotoName, authorizationFolder)
	if err != nil {
		return nil, err
	}

	auth := &model.ParentalAuthorization{
		UserID:            userID,
		EventID:           input.EventID,
		AuthorizationPath: fileURL,
	}

	created, err := s.assistanceRepo.CreateParentalAuthorization(ctx, auth)
	if err != nil {
		s.compensateUpload(fileURL)
		return nil, err
	}

	return created, nil
}

// resolveUser returns the id of an existing user, looking it up by
// identification and creating it from the profile when absent.
func (s *RegistrationServiceImpl) resolveUser(ctx context.Context, userID int, profile *model.UserProfile) (int, error) {
	if userID > 0 {
		user, err := s.userRepo.FindByID(ctx, userID)
		if err != nil {
			return 0, err
		}
		return user.ID, nil
	}

	if profile == nil || profile.Identification == "" {
		return 0, fmt.Errorf("%w: se requiere userId o identification", apperrors.ErrInvalidInput)
	}

	existing, err := s.userRepo.FindByIdentification(ctx, profile.Identification)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return 0, err
	}

	user, err := UserFromProfile(profile)
	if err != nil {
		return 0, err
	}

	created, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// Lost a create race: the row now exists, use it.
		if errors.Is(err, apperrors.ErrDuplicateIdentification) {
			if existing, findErr := s.userRepo.FindByIdentification(ctx, profile.Identification); findErr == nil {
				return existing.ID, nil
			}
		}
		return 0, err
	}

	if err := s.statsCache.InvalidateUserStats(ctx); err != nil {
		logger.WithComponent("service").Warn("Failed to invalidate user stats cache", zap.Error(err))
	}

	return created.ID, nil
}

func (s *RegistrationServiceImpl) checkNotRegistered(ctx context.Context, userID, eventID int) error {
	_, err := s.assistanceRepo.FindByUserAndEvent(ctx, userID, eventID)
	if err == nil {
		return apperrors.ErrAlreadyRegistered
	}
	if errors.Is(err, apperrors.ErrAssistanceNotFound) {
		return nil
	}
	return err
}

func (s *RegistrationServiceImpl) uploadSignature(ctx context.Context, signature string) (string, error) {
	base64Data := dataURLPrefix.ReplaceAllString(signature, "")
	data, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", fmt.Errorf("%w: la firma debe ser una imagen en formato base64", apperrors.ErrInvalidInput)
	}

	fileName := fmt.Sprintf("signature-%d.png", time.Now().UnixMilli())
	return s.store.Upload(ctx, data, fileName, signatureFolder)
}

// compensateUpload removes an uploaded blob whose referencing insert failed.
// Runs on a fresh context so compensation still happens when the request is
// already cancelled.
func (s *RegistrationServiceImpl) compensateUpload(fileURL string) {
	if fileURL == "" {
		return
	}
	if err := s.store.Delete(context.Background(), fileURL); err != nil {
		logger.WithComponent("service").Error("Failed to delete orphaned upload",
			zap.String("fileUrl", fileURL), zap.Error(err))
	}
}
