package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/service"
	"event-ops/backend/pkg/response"
)

// OrganizerHandler 组织者模块 HTTP 处理器
type OrganizerHandler struct {
	organizerSvc service.OrganizerService
}

// NewOrganizerHandler 创建 OrganizerHandler
func NewOrganizerHandler(organizerSvc service.OrganizerService) *OrganizerHandler {
	return &OrganizerHandler{organizerSvc: organizerSvc}
}

// CreateOrganizer 创建组织者
// POST /api/v1/organizers
func (h *OrganizerHandler) CreateOrganizer(c *gin.Context) {
	var req dto.CreateOrganizerRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.organizerSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleOrganizerError(c, err)
		return
	}

	response.Created(c, org)
}

// ListOrganizers 组织者列表
// GET /api/v1/organizers
func (h *OrganizerHandler) ListOrganizers(c *gin.Context) {
	h.respondList(c, h.organizerSvc.List)
}

// SearchOrganizers 按姓名 / 状态 / 部门搜索
// GET /api/v1/organizers/search
func (h *OrganizerHandler) SearchOrganizers(c *gin.Context) {
	var req dto.OrganizerSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeParamInvalid, "参数校验失败")
		return
	}

	list, err := h.organizerSvc.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleOrganizerError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// ListAbsentOrganizers 缺勤组织者
// GET /api/v1/organizers/absent
func (h *OrganizerHandler) ListAbsentOrganizers(c *gin.Context) {
	h.respondList(c, h.organizerSvc.ListAbsent)
}

// ListPresentOrganizers 在岗组织者
// GET /api/v1/organizers/present
func (h *OrganizerHandler) ListPresentOrganizers(c *gin.Context) {
	h.respondList(c, h.organizerSvc.ListPresent)
}

// GetOrganizer 组织者详情
// GET /api/v1/organizers/:id
func (h *OrganizerHandler) GetOrganizer(c *gin.Context) {
	id, ok := parseOrganizerID(c, "id")
	if !ok {
		return
	}

	org, err := h.organizerSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleOrganizerError(c, err)
		return
	}

	response.OK(c, org)
}

// UpdateOrganizer 部分更新组织者
// PUT /api/v1/organizers/:id
func (h *OrganizerHandler) UpdateOrganizer(c *gin.Context) {
	id, ok := parseOrganizerID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrganizerRequest
	if !bindJSON(c, &req) {
		return
	}

	org, err := h.organizerSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleOrganizerError(c, err)
		return
	}

	response.OK(c, org)
}

// DeleteOrganizer 删除组织者
// DELETE /api/v1/organizers/:id
func (h *OrganizerHandler) DeleteOrganizer(c *gin.Context) {
	id, ok := parseOrganizerID(c, "id")
	if !ok {
		return
	}

	if err := h.organizerSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleOrganizerError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *OrganizerHandler) respondList(c *gin.Context, fetch func(ctx context.Context) ([]dto.OrganizerResponse, error)) {
	list, err := fetch(c.Request.Context())
	if err != nil {
		h.handleOrganizerError(c, err)
		return
	}
	response.OKList(c, list, len(list))
}

// handleOrganizerError 统一处理组织者模块业务错误
func (h *OrganizerHandler) handleOrganizerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrganizerNotFound):
		response.NotFound(c, 21001, "组织者不存在")
	case errors.Is(err, service.ErrOrganizerEmailExists):
		response.Conflict(c, 21002, "邮箱已被使用")
	default:
		respondError(c, err)
	}
}
