package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"event-assistance-api/internal/model"
	"event-assistance-api/internal/service"
	apperrors "event-assistance-api/pkg/app_errors"
	"event-assistance-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

func (h *EventHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/events")
	{
		router.GET("", h.List)
		router.GET("/with-attendees", h.ListWithAttendees)
		router.GET("/by-month", h.CountByMonth)
		router.GET("/qrcode", h.QRCode)
		router.POST("", h.Create)
		router.POST("/validate", h.Validate)
		router.DELETE("/:id", h.Delete)
	}
}

type CreateEventRequest struct {
	Name        string  `json:"name" binding:"required"`
	Location    string  `json:"location" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Description *string `json:"description"`
}

type ValidateEventRequest struct {
	EventID FlexInt `json:"eventId" binding:"required"`
}

func (h *EventHandler) List(c *gin.Context) {
	var filters model.EventFilters
	if err := BindQuery(c, &filters); err != nil {
		return
	}

	events, err := h.service.List(c, filters)
	if err != nil {
		h.handleError(c, err, "List")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) ListWithAttendees(c *gin.Context) {
	events, err := h.service.ListWithAttendees(c)
	if err != nil {
		h.handleError(c, err, "ListWithAttendees")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) CountByMonth(c *gin.Context) {
	counts, err := h.service.CountByMonth(c)
	if err != nil {
		h.handleError(c, err, "CountByMonth")
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *EventHandler) QRCode(c *gin.Context) {
	var req ValidateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	qrCode, err := h.service.GenerateQRCode(c, int(req.EventID))
	if err != nil {
		h.handleError(c, err, "QRCode")
		return
	}
	c.JSON(http.StatusOK, gin.H{"qrCode": qrCode})
}

func (h *EventHandler) Create(c *gin.Context) {
	var req CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "La fecha debe tener un formato válido (YYYY-MM-DD)",
		})
		return
	}

	event := &model.Event{
		Name:        req.Name,
		Location:    req.Location,
		Date:        date,
		Type:        req.Type,
		Description: req.Description,
	}
	created, err := h.service.Create(c, event)
	if err != nil {
		h.handleError(c, err, "Create")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Evento creado con éxito",
		"event":   created,
	})
}

func (h *EventHandler) Validate(c *gin.Context) {
	var req ValidateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.GetByID(c, int(req.EventID))
	if err != nil {
		h.handleError(c, err, "Validate")
		return
	}
	c.JSON(http.StatusOK, gin.H{"event": event})
}

func (h *EventHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El ID del evento debe ser un número válido"})
		return
	}

	if err := h.service.Delete(c, id); err != nil {
		h.handleError(c, err, "Delete")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Evento eliminado con éxito"})
}

func (h *EventHandler) handleError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{"message": "Evento no encontrado"})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error interno del servidor"})
	}
}
