package service

import (
	"time"

	"go.uber.org/zap"

	"event-ops/backend/internal/model"
	"event-ops/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Organizer   OrganizerService
	Participant ParticipantService
	Task        TaskService
	Assignment  AssignmentService
	Attendance  AttendanceService
	Lookup      LookupService
	Calendar    CalendarService
	Event       EventService
	Admin       AdminService
}

// ScanNotifier 扫码状态变更的实时推送通道
type ScanNotifier interface {
	Broadcast(taskID model.TaskID, payload interface{})
}

// NewService 创建 Service 聚合
// notifier 可为 nil，此时不推送实时事件
func NewService(repo *repository.Repository, notifier ScanNotifier, logger *zap.Logger) *Service {
	lookup := NewLookupService(repo, logger)
	return &Service{
		Organizer:   NewOrganizerService(repo, logger),
		Participant: NewParticipantService(repo, logger),
		Task:        NewTaskService(repo, logger),
		Assignment:  NewAssignmentService(repo, logger),
		Attendance:  NewAttendanceService(repo, notifier, logger),
		Lookup:      lookup,
		Calendar:    NewCalendarService(lookup, logger),
		Event:       NewEventService(repo, logger),
		Admin:       NewAdminService(repo, logger),
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
