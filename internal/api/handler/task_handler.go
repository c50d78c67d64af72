package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/service"
	"event-ops/backend/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc service.TaskService
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

// CreateTask 创建任务
// POST /api/v1/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.Created(c, task)
}

// ListTasks 任务列表
// GET /api/v1/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	h.respondList(c, h.taskSvc.List)
}

// SearchTasks 按名称 / 时间范围 / 日期搜索
// GET /api/v1/tasks/search
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	var req dto.TaskSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeParamInvalid, "参数校验失败")
		return
	}

	list, err := h.taskSvc.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// ListUnfinishedTasks 未完成任务
// GET /api/v1/tasks/unfinished
func (h *TaskHandler) ListUnfinishedTasks(c *gin.Context) {
	h.respondList(c, h.taskSvc.ListUnfinished)
}

// ListLateTasks 超时未完成任务
// GET /api/v1/tasks/late
func (h *TaskHandler) ListLateTasks(c *gin.Context) {
	h.respondList(c, h.taskSvc.ListLate)
}

// GetTask 任务详情
// GET /api/v1/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// UpdateTask 部分更新任务
// PUT /api/v1/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, task)
}

// DeleteTask 删除任务（级联删除分配记录）
// DELETE /api/v1/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTaskError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *TaskHandler) respondList(c *gin.Context, fetch func(ctx context.Context) ([]dto.TaskResponse, error)) {
	list, err := fetch(c.Request.Context())
	if err != nil {
		h.handleTaskError(c, err)
		return
	}
	response.OKList(c, list, len(list))
}

// handleTaskError 统一处理任务模块业务错误
func (h *TaskHandler) handleTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 23001, "任务不存在")
	case errors.Is(err, service.ErrTaskTimeRange):
		response.BadRequest(c, 23002, "结束时间不能早于开始时间")
	default:
		respondError(c, err)
	}
}
