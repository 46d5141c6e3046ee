package handler

import (
	"errors"
	"net/http"
	"strconv"

	"event-assistance-api/internal/auth"
	"event-assistance-api/internal/service"
	apperrors "event-assistance-api/pkg/app_errors"
	"event-assistance-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler struct {
	service    service.AdminService
	jwtManager *auth.JWTManager
}

func NewAdminHandler(service service.AdminService, jwtManager *auth.JWTManager) *AdminHandler {
	return &AdminHandler{service: service, jwtManager: jwtManager}
}

func (h *AdminHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/admins")
	{
		router.POST("", h.Create)
		router.POST("/login", h.Login)

		protected := router.Group("")
		protected.Use(AuthRequired(h.jwtManager))
		{
			protected.GET("", h.List)
			protected.DELETE("/:id", h.Delete)
		}
	}
}

type AdminCredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AdminHandler) Create(c *gin.Context) {
	var req AdminCredentialsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	admin, err := h.service.Create(c, req.Email, req.Password)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Admin creado con éxito",
		"admin":   gin.H{"id": admin.ID, "email": admin.Email},
	})
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req AdminCredentialsRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	token, err := h.service.Login(c, req.Email, req.Password)
	if err != nil {
		h.handleError(c, err, "Login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login exitoso",
		"token":   token,
	})
}

func (h *AdminHandler) List(c *gin.Context) {
	admins, err := h.service.List(c)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}

	// password hashes never leave the service boundary
	out := make([]gin.H, 0, len(admins))
	for _, admin := range admins {
		out = append(out, gin.H{"id": admin.ID, "email": admin.Email})
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El ID debe ser un número válido."})
		return
	}

	if err := h.service.Delete(c, id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin eliminado con éxito"})
}

func (h *AdminHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrDuplicateEmail):
		log.Warn("Duplicate admin email")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Ya existe un Admin con ese email."})
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		log.Warn("Invalid credentials")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Email o contraseña incorrectos"})
	case errors.Is(err, apperrors.ErrAdminNotFound):
		log.Warn("Admin not found")
		c.JSON(http.StatusNotFound, gin.H{"message": "No existe un Admin con ese ID."})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Faltan campos obligatorios (email y password)."})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno del servidor"})
	}
}
