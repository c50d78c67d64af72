package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/service"
	"event-ops/backend/pkg/response"
)

// AssignmentHandler 任务分配模块 HTTP 处理器
// 同时提供组织者视角的任务列表与日历
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	lookupSvc     service.LookupService
	calendarSvc   service.CalendarService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService, lookupSvc service.LookupService, calendarSvc service.CalendarService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentSvc: assignmentSvc,
		lookupSvc:     lookupSvc,
		calendarSvc:   calendarSvc,
	}
}

// UpsertAssignment 覆盖写入任务的组织者 / 监督者集合
// PUT /api/v1/tasks/:id/assignment
func (h *AssignmentHandler) UpsertAssignment(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	var req dto.UpsertAssignmentRequest
	if !bindJSON(c, &req) {
		return
	}

	organizers, err := model.ParseOrganizerIDs(req.OrganizerIDs)
	if err != nil {
		response.BadRequest(c, codeInvalidIdentifier, "组织者ID格式无效")
		return
	}
	supervisors, err := model.ParseOrganizerIDs(req.SupervisorIDs)
	if err != nil {
		response.BadRequest(c, codeInvalidIdentifier, "监督者ID格式无效")
		return
	}

	result, err := h.assignmentSvc.Upsert(c.Request.Context(), taskID, organizers, supervisors)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// GetAssignment 查询任务的分配记录
// GET /api/v1/tasks/:id/assignment
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	result, err := h.assignmentSvc.Get(c.Request.Context(), taskID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, result)
}

// ListOrganizerAssignments 组织者参与的分配记录（含角色）
// GET /api/v1/organizers/:id/assignments
func (h *AssignmentHandler) ListOrganizerAssignments(c *gin.Context) {
	organizerID, ok := parseOrganizerID(c, "id")
	if !ok {
		return
	}

	list, err := h.assignmentSvc.ListForOrganizer(c.Request.Context(), organizerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// ListOrganizerTasks 组织者被分配的任务（含角色）
// GET /api/v1/organizers/:id/tasks
func (h *AssignmentHandler) ListOrganizerTasks(c *gin.Context) {
	organizerID, ok := parseOrganizerID(c, "id")
	if !ok {
		return
	}

	list, err := h.lookupSvc.ListTasksForOrganizer(c.Request.Context(), organizerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// GetOrganizerCalendar 导出组织者任务日历
// GET /api/v1/organizers/:id/calendar.ics
func (h *AssignmentHandler) GetOrganizerCalendar(c *gin.Context) {
	organizerID, ok := parseOrganizerID(c, "id")
	if !ok {
		return
	}

	cal, err := h.calendarSvc.OrganizerCalendar(c.Request.Context(), organizerID)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="tasks-%s.ics"`, organizerID))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal))
}

// handleAssignmentError 统一处理任务分配模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, 24001, "任务分配不存在")
	case errors.Is(err, service.ErrNoTasksAssigned):
		response.NotFound(c, 24002, "该组织者没有分配任务")
	default:
		respondError(c, err)
	}
}
