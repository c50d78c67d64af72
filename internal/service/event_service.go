package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/repository"
	pkgerrors "event-ops/backend/pkg/errors"
)

// ── 活动模块业务错误 ──

var (
	ErrEventNotFound     = fmt.Errorf("%w: 活动不存在", pkgerrors.ErrNotFound)
	ErrEventDaysMismatch = errors.New("活动日期数量与天数不一致")
)

// EventService 活动业务接口
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id model.EventID) (*dto.EventResponse, error)
	List(ctx context.Context) ([]dto.EventResponse, error)
	Update(ctx context.Context, id model.EventID, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id model.EventID) error
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if len(req.Days) != req.NumDays {
		return nil, ErrEventDaysMismatch
	}

	event := &model.Event{
		NumDays: req.NumDays,
		MapURL:  req.MapURL,
		Days:    normalizeDays(req.Days),
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建活动失败", zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	s.logger.Info("活动已创建", zap.String("event_id", string(event.EventID)), zap.Int("num_days", event.NumDays))
	return toEventResponse(event), nil
}

func (s *eventService) GetByID(ctx context.Context, id model.EventID) (*dto.EventResponse, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return toEventResponse(event), nil
}

func (s *eventService) List(ctx context.Context) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.List(ctx)
	if err != nil {
		s.logger.Error("列出活动失败", zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	if len(events) == 0 {
		return nil, ErrEventNotFound
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, *toEventResponse(&events[i]))
	}
	return result, nil
}

// Update 合并后重新校验天数与日期数量
func (s *eventService) Update(ctx context.Context, id model.EventID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NumDays != nil {
		event.NumDays = *req.NumDays
	}
	if req.MapURL != nil {
		event.MapURL = req.MapURL
	}
	if req.Days != nil {
		event.Days = normalizeDays(req.Days)
	}
	if len(event.Days) != event.NumDays {
		return nil, ErrEventDaysMismatch
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("更新活动失败", zap.String("event_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	return toEventResponse(event), nil
}

func (s *eventService) Delete(ctx context.Context, id model.EventID) error {
	if _, err := s.getEvent(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("删除活动失败", zap.String("event_id", string(id)), zap.Error(err))
		return pkgerrors.Store(err)
	}

	s.logger.Info("活动已删除", zap.String("event_id", string(id)))
	return nil
}

func (s *eventService) getEvent(ctx context.Context, id model.EventID) (*model.Event, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("event_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	return event, nil
}

// normalizeDays 统一为 UTC 并按时间升序
func normalizeDays(days []time.Time) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = d.UTC()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func toEventResponse(event *model.Event) *dto.EventResponse {
	days := make([]string, 0, len(event.Days))
	for _, d := range event.Days {
		days = append(days, formatTime(d))
	}
	return &dto.EventResponse{
		ID:        event.EventID,
		NumDays:   event.NumDays,
		MapURL:    event.MapURL,
		Days:      days,
		CreatedAt: formatTime(event.CreatedAt),
		UpdatedAt: formatTime(event.UpdatedAt),
	}
}
