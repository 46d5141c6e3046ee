package handler

import (
	"errors"
	"net/http"

	"event-assistance-api/internal/model"
	"event-assistance-api/internal/service"
	apperrors "event-assistance-api/pkg/app_errors"
	"event-assistance-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	service service.UserService
}

func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/users")
	{
		router.POST("", h.Create)
		router.POST("/validate", h.Validate)
		router.GET("/total", h.Total)
		router.GET("/gender-distribution", h.distribution("gender"))
		router.GET("/osigd-distribution", h.distribution("osigd"))
		router.GET("/migrant-distribution", h.distribution("migrant"))
		router.GET("/leader-distribution", h.distribution("leader"))
	}
}

type ValidateUserRequest struct {
	Identification string `json:"identification" binding:"required,numeric"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var profile model.UserProfile
	if err := BindJson(c, &profile); err != nil {
		return
	}

	user, err := h.service.Create(c, &profile)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Usuario creado con éxito",
		"user":    user,
	})
}

func (h *UserHandler) Validate(c *gin.Context) {
	var req ValidateUserRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	user, registered, err := h.service.ValidateByIdentification(c, req.Identification)
	if err != nil {
		h.handleError(c, err, "Validate")
		return
	}

	if !registered {
		c.JSON(http.StatusOK, gin.H{"registered": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"registered": true, "user": user})
}

func (h *UserHandler) Total(c *gin.Context) {
	total, err := h.service.Total(c)
	if err != nil {
		h.handleError(c, err, "Total")
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *UserHandler) distribution(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		distribution, err := h.service.Distribution(c, field)
		if err != nil {
			h.handleError(c, err, "Distribution")
			return
		}
		c.JSON(http.StatusOK, distribution)
	}
}

func (h *UserHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrDuplicateIdentification):
		log.Warn("Duplicate identification")
		c.JSON(http.StatusBadRequest, gin.H{"message": "La identificación ya está registrada."})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno del servidor"})
	}
}
