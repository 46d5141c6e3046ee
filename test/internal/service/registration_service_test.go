package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"event-assistance-api/internal/model"
	"event-assistance-api/internal/service"
	apperrors "event-assistance-api/pkg/app_errors"

	cacheMocks "event-assistance-api/test/internal/mocks/cache"
	repoMocks "event-assistance-api/test/internal/mocks/repositories"
	storageMocks "event-assistance-api/test/internal/mocks/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupRegistrationMocks() (*repoMocks.UserRepositoryMock, *repoMocks.AssistanceRepositoryMock, *storageMocks.ObjectStoreMock, *cacheMocks.StatsCacheMock) {
	return repoMocks.NewUserRepositoryMock(), repoMocks.NewAssistanceRepositoryMock(), storageMocks.NewObjectStoreMock(), cacheMocks.Relaxed()
}

func testProfile(identification string) *model.UserProfile {
	return &model.UserProfile{
		FullName:       "Ana María López",
		Identification: identification,
		BirthDate:      "1990-05-20",
	}
}

func testSignature() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - existing user id with signature", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByID", mock.Anything, 7).Return(&model.User{ID: 7}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 7, 3).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		store.On("Upload", mock.Anything, []byte("png-bytes"), mock.Anything, "signatures").
			Return("https://bucket.s3.us-east-1.amazonaws.com/signatures/123-signature-123.png", nil).Once()
		assistanceRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.Assistance{ID: 42, UserID: 7, EventID: 3}, nil).Once()

		result, err := svc.Register(ctx, model.RegistrationInput{
			EventID:   3,
			UserID:    7,
			Signature: testSignature(),
		})

		require.NoError(t, err)
		assert.Equal(t, 42, result.AssistanceID)
		assert.Contains(t, result.FileURL, "signatures/")
		userRepo.AssertExpectations(t)
		assistanceRepo.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("Success - no artifact means no upload", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByID", mock.Anything, 7).Return(&model.User{ID: 7}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 7, 3).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		assistanceRepo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Assistance) bool {
			return a.SignaturePath == nil && a.PhotoPath == nil
		})).Return(&model.Assistance{ID: 43, UserID: 7, EventID: 3}, nil).Once()

		result, err := svc.Register(ctx, model.RegistrationInput{EventID: 3, UserID: 7})

		require.NoError(t, err)
		assert.Equal(t, 43, result.AssistanceID)
		assert.Empty(t, result.FileURL)
		store.AssertNotCalled(t, "Upload")
	})

	t.Run("Success - unknown identification creates user", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByIdentification", mock.Anything, "1002003004").
			Return(nil, apperrors.ErrUserNotFound).Once()
		userRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.User{ID: 11, Identification: "1002003004"}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 11, 3).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		assistanceRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.Assistance{ID: 44, UserID: 11, EventID: 3}, nil).Once()

		result, err := svc.Register(ctx, model.RegistrationInput{
			EventID: 3,
			Profile: testProfile("1002003004"),
		})

		require.NoError(t, err)
		assert.Equal(t, 11, result.UserID)
		userRepo.AssertExpectations(t)
	})

	t.Run("Success - known identification reuses user", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByIdentification", mock.Anything, "1002003004").
			Return(&model.User{ID: 11}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 11, 3).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		assistanceRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.Assistance{ID: 45, UserID: 11, EventID: 3}, nil).Once()

		_, err := svc.Register(ctx, model.RegistrationInput{
			EventID: 3,
			Profile: testProfile("1002003004"),
		})

		require.NoError(t, err)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - already registered, no insert and no upload", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByID", mock.Anything, 7).Return(&model.User{ID: 7}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 7, 3).
			Return(&model.Assistance{ID: 1, UserID: 7, EventID: 3}, nil).Once()

		_, err := svc.Register(ctx, model.RegistrationInput{
			EventID:   3,
			UserID:    7,
			Signature: testSignature(),
		})

		assert.ErrorIs(t, err, apperrors.ErrAlreadyRegistered)
		store.AssertNotCalled(t, "Upload")
		assistanceRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - missing mandatory profile fields", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByIdentification", mock.Anything, "999").
			Return(nil, apperrors.ErrUserNotFound).Once()

		_, err := svc.Register(ctx, model.RegistrationInput{
			EventID: 3,
			Profile: &model.UserProfile{Identification: "999"},
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - storage error aborts before any insert", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByID", mock.Anything, 7).Return(&model.User{ID: 7}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 7, 3).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		store.On("Upload", mock.Anything, mock.Anything, mock.Anything, "signatures").
			Return("", apperrors.ErrStorageUnavailable).Once()

		_, err := svc.Register(ctx, model.RegistrationInput{
			EventID:   3,
			UserID:    7,
			Signature: testSignature(),
		})

		assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
		assistanceRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - insert failure deletes the uploaded blob", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		fileURL := "https://bucket.s3.us-east-1.amazonaws.com/signatures/123-signature-123.png"

		userRepo.On("FindByID", mock.Anything, 7).Return(&model.User{ID: 7}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 7, 3).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		store.On("Upload", mock.Anything, mock.Anything, mock.Anything, "signatures").
			Return(fileURL, nil).Once()
		assistanceRepo.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection reset")).Once()
		store.On("Delete", mock.Anything, fileURL).Return(nil).Once()

		_, err := svc.Register(ctx, model.RegistrationInput{
			EventID:   3,
			UserID:    7,
			Signature: testSignature(),
		})

		require.Error(t, err)
		store.AssertExpectations(t)
	})

	t.Run("Failed - lost create race falls back to existing user", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByIdentification", mock.Anything, "1002003004").
			Return(nil, apperrors.ErrUserNotFound).Once()
		userRepo.On("Create", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrDuplicateIdentification).Once()
		userRepo.On("FindByIdentification", mock.Anything, "1002003004").
			Return(&model.User{ID: 11}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 11, 3).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		assistanceRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.Assistance{ID: 46, UserID: 11, EventID: 3}, nil).Once()

		result, err := svc.Register(ctx, model.RegistrationInput{
			EventID: 3,
			Profile: testProfile("1002003004"),
		})

		require.NoError(t, err)
		assert.Equal(t, 11, result.UserID)
	})
}

func TestRegisterBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("N inputs yield N ordered results with per-item isolation", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		// first: new user, registered without file
		userRepo.On("FindByIdentification", mock.Anything, "100").
			Return(nil, apperrors.ErrUserNotFound).Once()
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Identification == "100"
		})).Return(&model.User{ID: 1, Identification: "100"}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 1, 9).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		assistanceRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.Assistance{ID: 51, UserID: 1, EventID: 9}, nil).Once()

		// second: already registered
		userRepo.On("FindByIdentification", mock.Anything, "200").
			Return(&model.User{ID: 2}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 2, 9).
			Return(&model.Assistance{ID: 7}, nil).Once()

		// third: invalid profile
		userRepo.On("FindByIdentification", mock.Anything, "300").
			Return(nil, apperrors.ErrUserNotFound).Once()

		batch := model.BatchRegistrationInput{
			EventID: 9,
			Users: []model.BatchUserInput{
				{UserProfile: *testProfile("100")},
				{UserProfile: *testProfile("200")},
				{UserProfile: model.UserProfile{Identification: "300"}},
			},
		}

		results := svc.RegisterBatch(ctx, batch)

		require.Len(t, results, 3)
		assert.Equal(t, "100", results[0].Identification)
		assert.Equal(t, 51, results[0].AssistanceID)
		assert.Equal(t, "Asistencia registrada sin archivo.", results[0].Message)

		assert.Equal(t, "200", results[1].Identification)
		assert.Equal(t, "El usuario ya está registrado en este evento.", results[1].Message)
		assert.Zero(t, results[1].AssistanceID)

		assert.Equal(t, "300", results[2].Identification)
		assert.NotEmpty(t, results[2].Error)
	})

	t.Run("storage failure on one item does not abort the rest", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByIdentification", mock.Anything, "100").
			Return(&model.User{ID: 1}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 1, 9).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		store.On("Upload", mock.Anything, mock.Anything, mock.Anything, "signatures").
			Return("", apperrors.ErrStorageUnavailable).Once()

		userRepo.On("FindByIdentification", mock.Anything, "200").
			Return(&model.User{ID: 2}, nil).Once()
		assistanceRepo.On("FindByUserAndEvent", mock.Anything, 2, 9).
			Return(nil, apperrors.ErrAssistanceNotFound).Once()
		assistanceRepo.On("Create", mock.Anything, mock.Anything).
			Return(&model.Assistance{ID: 52, UserID: 2, EventID: 9}, nil).Once()

		batch := model.BatchRegistrationInput{
			EventID: 9,
			Users: []model.BatchUserInput{
				{UserProfile: *testProfile("100"), Signature: testSignature()},
				{UserProfile: *testProfile("200")},
			},
		}

		results := svc.RegisterBatch(ctx, batch)

		require.Len(t, results, 2)
		assert.Equal(t, "Error al subir la firma.", results[0].Error)
		assert.Equal(t, 52, results[1].AssistanceID)
	})
}

func TestRegisterParentalAuthorization(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - no duplicate check performed", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		fileURL := "https://bucket.s3.us-east-1.amazonaws.com/parental-authorizations/1-auth.png"

		userRepo.On("FindByID", mock.Anything, 7).Return(&model.User{ID: 7}, nil).Once()
		store.On("Upload", mock.Anything, []byte("pdf-bytes"), "auth.png", "parental-authorizations").
			Return(fileURL, nil).Once()
		assistanceRepo.On("CreateParentalAuthorization", mock.Anything, mock.Anything).
			Return(&model.ParentalAuthorization{ID: 5, UserID: 7, EventID: 3, AuthorizationPath: fileURL}, nil).Once()

		auth, err := svc.RegisterParentalAuthorization(ctx, model.RegistrationInput{
			EventID:   3,
			UserID:    7,
			Photo:     []byte("pdf-bytes"),
			PhotoName: "auth.png",
		})

		require.NoError(t, err)
		assert.Equal(t, 5, auth.ID)
		assistanceRepo.AssertNotCalled(t, "FindByUserAndEvent")
	})

	t.Run("Failed - missing file", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		_, err := svc.RegisterParentalAuthorization(ctx, model.RegistrationInput{
			EventID: 3,
			UserID:  7,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		store.AssertNotCalled(t, "Upload")
	})

	t.Run("Failed - unknown user id", func(t *testing.T) {
		userRepo, assistanceRepo, store, statsCache := setupRegistrationMocks()
		svc := service.NewRegistrationService(userRepo, assistanceRepo, store, statsCache)

		userRepo.On("FindByID", mock.Anything, 99).Return(nil, apperrors.ErrUserNotFound).Once()

		_, err := svc.RegisterParentalAuthorization(ctx, model.RegistrationInput{
			EventID:   3,
			UserID:    99,
			Photo:     []byte("x"),
			PhotoName: "auth.png",
		})

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
