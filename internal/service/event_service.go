package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strconv"

	"event-assistance-api/internal/cache"
	"event-assistance-api/internal/model"
	"event-assistance-api/internal/repository"
	"event-assistance-api/pkg/logger"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type EventService interface {
	List(ctx context.Context, filters model.EventFilters) ([]*model.Event, error)
	GetByID(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	Delete(ctx context.Context, id int) error
	CountByMonth(ctx context.Context) ([]*model.MonthCount, error)
	ListWithAttendees(ctx context.Context) ([]*model.EventWithAttendees, error)
	// GenerateQRCode returns a base64 PNG whose payload is the event id.
	GenerateQRCode(ctx context.Context, eventID int) (string, error)
}

type EventServiceImpl struct {
	repo       repository.EventRepository
	statsCache cache.StatsCache
}

func NewEventService(repo repository.EventRepository, statsCache cache.StatsCache) EventService {
	return &EventServiceImpl{repo: repo, statsCache: statsCache}
}

func (s *EventServiceImpl) List(ctx context.Context, filters model.EventFilters) ([]*model.Event, error) {
	return s.repo.List(ctx, filters)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id int) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return nil, err
	}
	if err := s.statsCache.InvalidateEventStats(ctx); err != nil {
		logger.WithComponent("service").Warn("Failed to invalidate event stats cache", zap.Error(err))
	}
	return created, nil
}

func (s *EventServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.statsCache.InvalidateEventStats(ctx); err != nil {
		logger.WithComponent("service").Warn("Failed to invalidate event stats cache", zap.Error(err))
	}
	return nil
}

func (s *EventServiceImpl) CountByMonth(ctx context.Context) ([]*model.MonthCount, error) {
	if payload, ok, err := s.statsCache.GetMonthCounts(ctx); err == nil && ok {
		var counts []*model.MonthCount
		if err := json.Unmarshal(payload, &counts); err == nil {
			return counts, nil
		}
	}

	counts, err := s.repo.CountByMonth(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(counts); err == nil {
		if err := s.statsCache.SetMonthCounts(ctx, payload); err != nil {
			logger.WithComponent("service").Warn("Failed to cache month counts", zap.Error(err))
		}
	}

	return counts, nil
}

func (s *EventServiceImpl) ListWithAttendees(ctx context.Context) ([]*model.EventWithAttendees, error) {
	return s.repo.ListWithAttendees(ctx)
}

func (s *EventServiceImpl) GenerateQRCode(ctx context.Context, eventID int) (string, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return "", err
	}

	png, err := qrcode.Encode(strconv.Itoa(event.ID), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
