package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-assistance-api/internal/handler"
	"event-assistance-api/internal/model"
	apperrors "event-assistance-api/pkg/app_errors"

	serviceMocks "event-assistance-api/test/internal/mocks/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEventTestRouter(mockService *serviceMocks.EventServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	eventHandler := handler.NewEventHandler(mockService)
	eventHandler.RegisterRoutes(router)

	return router
}

func TestCreateEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
			return e.Name == "Feria artesanal" && e.Date.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
		})).Return(&model.Event{ID: 1, Name: "Feria artesanal"}, nil).Once()

		payload := map[string]interface{}{
			"name":     "Feria artesanal",
			"location": "Cali",
			"date":     "2026-03-14",
			"type":     "Feria",
		}
		w := serve(router, createJSONHTTPRequest("POST", "/api/events", payload))

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Evento creado con éxito", body["message"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - malformed date", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		payload := map[string]interface{}{
			"name":     "Feria artesanal",
			"location": "Cali",
			"date":     "14/03/2026",
			"type":     "Feria",
		}
		w := serve(router, createJSONHTTPRequest("POST", "/api/events", payload))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "La fecha debe tener un formato válido (YYYY-MM-DD)", body["message"])
		mockService.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - missing required field", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		payload := map[string]interface{}{"name": "Feria artesanal"}
		w := serve(router, createJSONHTTPRequest("POST", "/api/events", payload))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create")
	})
}

func TestListEvents(t *testing.T) {
	t.Run("Success - query filters are forwarded", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("List", mock.Anything, model.EventFilters{
			Name:      "taller",
			StartDate: "2026-01-01",
		}).Return([]*model.Event{{ID: 1, Name: "Taller"}}, nil).Once()

		req := httptest.NewRequest("GET", "/api/events?name=taller&startDate=2026-01-01", nil)
		w := serve(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Success - empty result is a JSON array", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("List", mock.Anything, model.EventFilters{}).
			Return([]*model.Event{}, nil).Once()

		req := httptest.NewRequest("GET", "/api/events", nil)
		w := serve(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestValidateEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, 3).
			Return(&model.Event{ID: 3, Name: "Feria"}, nil).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/api/events/validate", map[string]interface{}{"eventId": 3}))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		event, ok := body["event"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, float64(3), event["id"])
	})

	t.Run("Success - string eventId", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, 3).
			Return(&model.Event{ID: 3}, nil).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/api/events/validate", map[string]interface{}{"eventId": "3"}))

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Failed - unknown event", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("GetByID", mock.Anything, 99).
			Return(nil, apperrors.ErrEventNotFound).Once()

		w := serve(router, createJSONHTTPRequest("POST", "/api/events/validate", map[string]interface{}{"eventId": 99}))

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Evento no encontrado", body["message"])
	})
}

func TestQRCode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("GenerateQRCode", mock.Anything, 3).
			Return("aVZCT1J3MEtHZ29BQUFBTlNVaEVVZw==", nil).Once()

		req := createJSONHTTPRequest("GET", "/api/events/qrcode", map[string]interface{}{"eventId": 3})
		w := serve(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["qrCode"])
	})

	t.Run("Failed - unknown event", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("GenerateQRCode", mock.Anything, 99).
			Return("", apperrors.ErrEventNotFound).Once()

		req := createJSONHTTPRequest("GET", "/api/events/qrcode", map[string]interface{}{"eventId": 99})
		w := serve(router, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeleteEvent(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("Delete", mock.Anything, 3).Return(nil).Once()

		req := httptest.NewRequest("DELETE", "/api/events/3", nil)
		w := serve(router, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "Evento eliminado con éxito", body["message"])
	})

	t.Run("Failed - not found", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		mockService.On("Delete", mock.Anything, 99).Return(apperrors.ErrEventNotFound).Once()

		req := httptest.NewRequest("DELETE", "/api/events/99", nil)
		w := serve(router, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - non-numeric id", func(t *testing.T) {
		mockService := serviceMocks.NewEventServiceMock()
		router := setupEventTestRouter(mockService)

		req := httptest.NewRequest("DELETE", "/api/events/abc", nil)
		w := serve(router, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Delete")
	})
}

func TestCountByMonthEndpoint(t *testing.T) {
	mockService := serviceMocks.NewEventServiceMock()
	router := setupEventTestRouter(mockService)

	mockService.On("CountByMonth", mock.Anything).Return([]*model.MonthCount{
		{Month: "2026-01", EventsCount: 2},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/events/by-month", nil)
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"month":"2026-01","eventsCount":2}]`, w.Body.String())
}

func TestListWithAttendeesEndpoint(t *testing.T) {
	mockService := serviceMocks.NewEventServiceMock()
	router := setupEventTestRouter(mockService)

	mockService.On("ListWithAttendees", mock.Anything).Return([]*model.EventWithAttendees{
		{
			Event:     model.Event{ID: 1, Name: "Feria"},
			Attendees: []model.EventAttendee{},
		},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/events/with-attendees", nil)
	w := serve(router, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"attendees":[]`)
}
