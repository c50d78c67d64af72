package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"event-ops/backend/internal/model"
)

const calendarProductID = "-//event-ops//organizer tasks//ZH"

// CalendarService 组织者任务日历导出（iCalendar）
type CalendarService interface {
	OrganizerCalendar(ctx context.Context, organizerID model.OrganizerID) (string, error)
}

type calendarService struct {
	lookup LookupService
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService 创建 CalendarService 实例
func NewCalendarService(lookup LookupService, logger *zap.Logger) CalendarService {
	return &calendarService{lookup: lookup, logger: logger, now: time.Now}
}

// OrganizerCalendar 每个已分配任务生成一个 VEVENT，角色写入 CATEGORIES
// 组织者没有任何任务时与 ListTasksForOrganizer 一致返回 NotFound
func (s *calendarService) OrganizerCalendar(ctx context.Context, organizerID model.OrganizerID) (string, error) {
	tasks, err := s.lookup.ListTasksForOrganizer(ctx, organizerID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(fmt.Sprintf("任务安排 %s", organizerID))

	stamp := s.now().UTC()
	for _, t := range tasks {
		event := cal.AddEvent(fmt.Sprintf("%s@event-ops", t.ID))
		event.SetDtStampTime(stamp)
		event.SetStartAt(t.StartTime)
		event.SetEndAt(t.EndTime)
		event.SetSummary(t.Name)
		event.SetLocation(t.Location)
		if t.Description != "" {
			event.SetDescription(t.Description)
		}
		role := "organizer"
		if t.IsSupervisor {
			role = "supervisor"
		}
		event.AddProperty(ics.ComponentPropertyCategories, role)
	}

	s.logger.Debug("生成组织者日历",
		zap.String("organizer_id", string(organizerID)),
		zap.Int("events", len(tasks)),
	)
	return cal.Serialize(), nil
}
