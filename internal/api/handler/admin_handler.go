package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/service"
	"event-ops/backend/pkg/response"
)

// AdminHandler 管理员模块 HTTP 处理器
type AdminHandler struct {
	adminSvc service.AdminService
}

// NewAdminHandler 创建 AdminHandler
func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{adminSvc: adminSvc}
}

// CreateAdmin 创建管理员
// POST /api/v1/admins
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req dto.CreateAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.adminSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.Created(c, admin)
}

// ListAdmins 管理员列表
// GET /api/v1/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	list, err := h.adminSvc.List(c.Request.Context())
	if err != nil {
		h.handleAdminError(c, err)
		return
	}
	response.OKList(c, list, len(list))
}

// SearchAdmins 按姓名 / 邮箱模糊搜索
// GET /api/v1/admins/search
func (h *AdminHandler) SearchAdmins(c *gin.Context) {
	var req dto.AdminSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, codeParamInvalid, "参数校验失败")
		return
	}

	list, err := h.adminSvc.Search(c.Request.Context(), &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// GetAdmin 管理员详情
// GET /api/v1/admins/:id
func (h *AdminHandler) GetAdmin(c *gin.Context) {
	id, ok := parseAdminID(c, "id")
	if !ok {
		return
	}

	admin, err := h.adminSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, admin)
}

// UpdateAdmin 部分更新管理员
// PUT /api/v1/admins/:id
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	id, ok := parseAdminID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAdminRequest
	if !bindJSON(c, &req) {
		return
	}

	admin, err := h.adminSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, admin)
}

// DeleteAdmin 删除管理员
// DELETE /api/v1/admins/:id
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	id, ok := parseAdminID(c, "id")
	if !ok {
		return
	}

	if err := h.adminSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAdminError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAdminNotFound):
		response.NotFound(c, 27001, "管理员不存在")
	case errors.Is(err, service.ErrAdminEmailExists):
		response.Conflict(c, 27002, "邮箱已被使用")
	case errors.Is(err, service.ErrAdminSearchCriteria):
		response.BadRequest(c, 27003, "姓名和邮箱至少提供一项")
	default:
		respondError(c, err)
	}
}
