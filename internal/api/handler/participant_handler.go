package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/service"
	"event-ops/backend/pkg/response"
)

// ParticipantHandler 参与者模块 HTTP 处理器
type ParticipantHandler struct {
	participantSvc service.ParticipantService
}

// NewParticipantHandler 创建 ParticipantHandler
func NewParticipantHandler(participantSvc service.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{participantSvc: participantSvc}
}

// CreateParticipant 创建参与者，未指定 qr_code 时以参与者 ID 作为二维码
// POST /api/v1/participants
func (h *ParticipantHandler) CreateParticipant(c *gin.Context) {
	var req dto.CreateParticipantRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.participantSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.Created(c, p)
}

// ListParticipants 参与者列表
// GET /api/v1/participants
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	list, err := h.participantSvc.List(c.Request.Context())
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// GetParticipantByQR 按二维码内容查询参与者
// GET /api/v1/participants/qr/:code
func (h *ParticipantHandler) GetParticipantByQR(c *gin.Context) {
	code := c.Param("code")
	if code == "" || len(code) > 255 {
		response.BadRequest(c, codeParamInvalid, "二维码内容无效")
		return
	}

	p, err := h.participantSvc.GetByQRCode(c.Request.Context(), code)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, p)
}

// GetParticipant 参与者详情
// GET /api/v1/participants/:id
func (h *ParticipantHandler) GetParticipant(c *gin.Context) {
	id, ok := parseParticipantID(c, "id")
	if !ok {
		return
	}

	p, err := h.participantSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, p)
}

// UpdateParticipant 部分更新参与者
// PUT /api/v1/participants/:id
func (h *ParticipantHandler) UpdateParticipant(c *gin.Context) {
	id, ok := parseParticipantID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateParticipantRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.participantSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, p)
}

// DeleteParticipant 删除参与者
// DELETE /api/v1/participants/:id
func (h *ParticipantHandler) DeleteParticipant(c *gin.Context) {
	id, ok := parseParticipantID(c, "id")
	if !ok {
		return
	}

	if err := h.participantSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleParticipantError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleParticipantError 统一处理参与者模块业务错误
func (h *ParticipantHandler) handleParticipantError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParticipantNotFound):
		response.NotFound(c, 22001, "参与者不存在")
	case errors.Is(err, service.ErrParticipantEmailExists):
		response.Conflict(c, 22002, "邮箱已被使用")
	case errors.Is(err, service.ErrQRCodeExists):
		response.Conflict(c, 22003, "二维码已被占用")
	default:
		respondError(c, err)
	}
}
