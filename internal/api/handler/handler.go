package handler

import (
	"go.uber.org/zap"

	"event-ops/backend/config"
	"event-ops/backend/internal/realtime"
	"event-ops/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Organizer   *OrganizerHandler
	Participant *ParticipantHandler
	Task        *TaskHandler
	Assignment  *AssignmentHandler
	Attendance  *AttendanceHandler
	Realtime    *RealtimeHandler
	Event       *EventHandler
	Admin       *AdminHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service, hub *realtime.Hub, logger *zap.Logger) *Handler {
	return &Handler{
		Organizer:   NewOrganizerHandler(svc.Organizer),
		Participant: NewParticipantHandler(svc.Participant),
		Task:        NewTaskHandler(svc.Task),
		Assignment:  NewAssignmentHandler(svc.Assignment, svc.Lookup, svc.Calendar),
		Attendance:  NewAttendanceHandler(svc.Attendance, svc.Lookup),
		Realtime:    NewRealtimeHandler(hub, cfg.Server.CORS.AllowOrigins, logger),
		Event:       NewEventHandler(svc.Event),
		Admin:       NewAdminHandler(svc.Admin),
	}
}
