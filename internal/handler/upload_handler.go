package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"event-assistance-api/internal/model"
	"event-assistance-api/internal/service"
	apperrors "event-assistance-api/pkg/app_errors"
	"event-assistance-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadSize = 5 << 20 // 5 MiB, same limit the frontend relies on

var allowedMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

type UploadHandler struct {
	service service.RegistrationService
}

func NewUploadHandler(service service.RegistrationService) *UploadHandler {
	return &UploadHandler{service: service}
}

func (h *UploadHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/upload")
	{
		router.POST("", h.Upload)
		router.POST("/batch/upload", h.BatchUpload)
		router.POST("/parental-authorization", h.ParentalAuthorization)
	}
}

// UploadRequest is the JSON variant of a single registration; multipart
// requests carry the same fields as form values plus an optional file part.
type UploadRequest struct {
	UserID    FlexInt `json:"userId"`
	EventID   FlexInt `json:"eventId" binding:"required"`
	Signature string  `json:"signature"`
	model.UserProfile
}

type BatchUploadRequest struct {
	EventID FlexInt                `json:"eventId"`
	Users   []model.BatchUserInput `json:"users"`
}

func (h *UploadHandler) Upload(c *gin.Context) {
	var input model.RegistrationInput
	var err error

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		input, err = h.parseMultipart(c, "file")
	} else {
		input, err = h.parseJSON(c)
	}
	if err != nil {
		// parse helpers have already written the response
		return
	}

	if input.Signature != "" && !strings.HasPrefix(input.Signature, "data:image") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "La firma debe ser una imagen en formato base64"})
		return
	}

	result, err := h.service.Register(c, input)
	if err != nil {
		h.handleError(c, err, "Upload")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Archivo subido y asistencia registrada con éxito",
		"assistanceId": result.AssistanceID,
		"fileUrl":      result.FileURL,
	})
}

func (h *UploadHandler) BatchUpload(c *gin.Context) {
	var req BatchUploadRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if len(req.Users) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": `Debe proporcionar un array de usuarios en "users".`})
		return
	}
	if req.EventID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": `El "eventId" es obligatorio para registrar asistencia.`})
		return
	}

	results := h.service.RegisterBatch(c, model.BatchRegistrationInput{
		EventID: int(req.EventID),
		Users:   req.Users,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Batch procesado exitosamente",
		"results": results,
	})
}

func (h *UploadHandler) ParentalAuthorization(c *gin.Context) {
	input, err := h.parseMultipart(c, "file")
	if err != nil {
		return
	}

	if len(input.Photo) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Debe proporcionar un archivo de autorización."})
		return
	}

	auth, err := h.service.RegisterParentalAuthorization(c, input)
	if err != nil {
		h.handleError(c, err, "ParentalAuthorization")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Autorización subida con éxito.",
		"authorizationId": auth.ID,
		"fileUrl":         auth.AuthorizationPath,
	})
}

func (h *UploadHandler) parseJSON(c *gin.Context) (model.RegistrationInput, error) {
	var req UploadRequest
	if err := BindJson(c, &req); err != nil {
		return model.RegistrationInput{}, err
	}

	profile := req.UserProfile
	return model.RegistrationInput{
		EventID:   int(req.EventID),
		UserID:    int(req.UserID),
		Profile:   &profile,
		Signature: req.Signature,
	}, nil
}

// parseMultipart reads the shared form fields and the optional file part.
// It writes the error response itself so callers just return.
func (h *UploadHandler) parseMultipart(c *gin.Context, filePart string) (model.RegistrationInput, error) {
	eventID, err := strconv.Atoi(c.PostForm("eventId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": `El "eventId" debe ser un número válido.`})
		return model.RegistrationInput{}, err
	}

	userID := 0
	if raw := c.PostForm("userId"); raw != "" {
		userID, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": `El "userId" debe ser un número válido.`})
			return model.RegistrationInput{}, err
		}
	}

	input := model.RegistrationInput{
		EventID:   eventID,
		UserID:    userID,
		Profile:   profileFromForm(c),
		Signature: c.PostForm("signature"),
	}

	file, err := c.FormFile(filePart)
	if err != nil {
		if err == http.ErrMissingFile {
			return input, nil
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Formato de solicitud inválido"})
		return model.RegistrationInput{}, err
	}

	data, name, err := readUpload(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return model.RegistrationInput{}, err
	}

	input.Photo = data
	input.PhotoName = name
	return input, nil
}

func readUpload(file *multipart.FileHeader) ([]byte, string, error) {
	if file.Size > maxUploadSize {
		return nil, "", errors.New("El archivo no puede superar los 5 MB.")
	}
	if !allowedMimeTypes[file.Header.Get("Content-Type")] {
		return nil, "", errors.New("El archivo debe ser una imagen en formato PNG o JPEG.")
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", errors.New("No se pudo leer el archivo.")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", errors.New("No se pudo leer el archivo.")
	}
	return data, file.Filename, nil
}

func profileFromForm(c *gin.Context) *model.UserProfile {
	optional := func(key string) *string {
		if value := c.PostForm(key); value != "" {
			return &value
		}
		return nil
	}

	return &model.UserProfile{
		FullName:       c.PostForm("fullName"),
		Identification: c.PostForm("identification"),
		DocumentType:   optional("documentType"),
		BirthDate:      c.PostForm("birthDate"),
		Phone:          optional("phone"),
		Email:          optional("email"),
		OSIGD:          optional("osigd"),
		Gender:         optional("gender"),
		Ethnicity:      optional("ethnicity"),
		Disability:     c.PostForm("disability") == "true",
		Leader:         c.PostForm("leader") == "true",
		Migrant:        c.PostForm("migrant") == "true",
		Organization:   optional("organization"),
		Municipality:   optional("municipality"),
		Department:     optional("department"),
	}
}

func (h *UploadHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrAlreadyRegistered):
		log.Warn("Already registered")
		c.JSON(http.StatusBadRequest, gin.H{"message": "El usuario ya está registrado en este evento."})
	case errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn("User not found")
		c.JSON(http.StatusNotFound, gin.H{"message": "Usuario no encontrado."})
	case errors.Is(err, apperrors.ErrDuplicateIdentification):
		log.Warn("Duplicate identification")
		c.JSON(http.StatusBadRequest, gin.H{"message": "La identificación ya está registrada."})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		log.Error("Storage unavailable")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al subir el archivo."})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error al registrar la asistencia"})
	}
}
