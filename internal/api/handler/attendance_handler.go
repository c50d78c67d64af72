package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/service"
	"event-ops/backend/pkg/response"
)

// AttendanceHandler 扫码签到模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
	lookupSvc     service.LookupService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService, lookupSvc service.LookupService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc, lookupSvc: lookupSvc}
}

// MarkScanned 标记参与者已扫码，body 中 participant_id 与 qr_code 二选一
// POST /api/v1/tasks/:id/scans
func (h *AttendanceHandler) MarkScanned(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	var req dto.ScanRequest
	if !bindJSON(c, &req) {
		return
	}
	if (req.ParticipantID == "") == (req.QRCode == "") {
		response.BadRequest(c, codeParamInvalid, "participant_id 与 qr_code 必须且只能提供一个")
		return
	}

	var (
		rec *dto.ScanRecordResponse
		err error
	)
	if req.QRCode != "" {
		rec, err = h.attendanceSvc.ScanByQR(c.Request.Context(), taskID, req.QRCode)
	} else {
		pid, perr := model.ParseParticipantID(req.ParticipantID)
		if perr != nil {
			response.BadRequest(c, codeInvalidIdentifier, "参与者ID格式无效")
			return
		}
		rec, err = h.attendanceSvc.MarkScanned(c.Request.Context(), taskID, pid)
	}
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, rec)
}

// MarkUnscanned 取消参与者的扫码状态，从未扫码时为空操作
// DELETE /api/v1/tasks/:id/scans/:participantId
func (h *AttendanceHandler) MarkUnscanned(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}
	pid, ok := parseParticipantID(c, "participantId")
	if !ok {
		return
	}

	rec, err := h.attendanceSvc.MarkUnscanned(c.Request.Context(), taskID, pid)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, rec)
}

// GetScanStatus 查询参与者在任务下的扫码状态
// GET /api/v1/tasks/:id/scans/:participantId
func (h *AttendanceHandler) GetScanStatus(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}
	pid, ok := parseParticipantID(c, "participantId")
	if !ok {
		return
	}

	status, err := h.attendanceSvc.GetStatus(c.Request.Context(), taskID, pid)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, status)
}

// ListScanHistory 任务的扫码事件日志（按时间升序）
// GET /api/v1/tasks/:id/scans/history
func (h *AttendanceHandler) ListScanHistory(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	events, err := h.attendanceSvc.ListScanHistory(c.Request.Context(), taskID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKList(c, events, len(events))
}

// ListParticipantsWithStatus 全部参与者及其在任务下的扫码状态
// GET /api/v1/tasks/:id/participants
func (h *AttendanceHandler) ListParticipantsWithStatus(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	list, err := h.lookupSvc.ListParticipantsWithStatus(c.Request.Context(), taskID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// ListScannedParticipants 已扫码参与者
// GET /api/v1/tasks/:id/participants/scanned
func (h *AttendanceHandler) ListScannedParticipants(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	list, err := h.lookupSvc.ListScannedParticipants(c.Request.Context(), taskID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// ListUnscannedParticipants 未扫码参与者
// GET /api/v1/tasks/:id/participants/unscanned
func (h *AttendanceHandler) ListUnscannedParticipants(c *gin.Context) {
	taskID, ok := parseTaskID(c, "id")
	if !ok {
		return
	}

	list, err := h.lookupSvc.ListUnscannedParticipants(c.Request.Context(), taskID)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKList(c, list, len(list))
}

// handleAttendanceError 统一处理扫码模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrParticipantNotFound):
		response.NotFound(c, 25001, "二维码对应的参与者不存在")
	case errors.Is(err, service.ErrNoParticipants):
		response.NotFound(c, 25002, "未找到参与者")
	default:
		respondError(c, err)
	}
}
