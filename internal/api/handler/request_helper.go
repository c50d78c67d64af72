package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"event-ops/backend/internal/model"
	pkgerrors "event-ops/backend/pkg/errors"
	"event-ops/backend/pkg/response"
)

// ── 通用错误码 ──

const (
	codeParamInvalid      = 10001
	codeBodyTooLarge      = 10005
	codeInvalidIdentifier = 10006
	codeNotFound          = 10404
	codeConflict          = 10409
)

// bindJSON 绑定并校验 JSON 请求体，失败时已写入响应，调用方直接 return
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, codeBodyTooLarge, "请求体过大")
			return false
		}
		response.BadRequest(c, codeParamInvalid, "参数校验失败")
		return false
	}
	return true
}

// ── 路径标识符解析 ──
// 所有标识符在进入 Service 前完成校验，非法值不会触达存储层

func parseOrganizerID(c *gin.Context, param string) (model.OrganizerID, bool) {
	id, err := model.ParseOrganizerID(c.Param(param))
	if err != nil {
		response.BadRequest(c, codeInvalidIdentifier, "组织者ID格式无效")
		return "", false
	}
	return id, true
}

func parseParticipantID(c *gin.Context, param string) (model.ParticipantID, bool) {
	id, err := model.ParseParticipantID(c.Param(param))
	if err != nil {
		response.BadRequest(c, codeInvalidIdentifier, "参与者ID格式无效")
		return "", false
	}
	return id, true
}

func parseTaskID(c *gin.Context, param string) (model.TaskID, bool) {
	id, err := model.ParseTaskID(c.Param(param))
	if err != nil {
		response.BadRequest(c, codeInvalidIdentifier, "任务ID格式无效")
		return "", false
	}
	return id, true
}

func parseEventID(c *gin.Context, param string) (model.EventID, bool) {
	id, err := model.ParseEventID(c.Param(param))
	if err != nil {
		response.BadRequest(c, codeInvalidIdentifier, "活动ID格式无效")
		return "", false
	}
	return id, true
}

func parseAdminID(c *gin.Context, param string) (model.AdminID, bool) {
	id, err := model.ParseAdminID(c.Param(param))
	if err != nil {
		response.BadRequest(c, codeInvalidIdentifier, "管理员ID格式无效")
		return "", false
	}
	return id, true
}

// respondError 按错误分类兜底映射 HTTP 状态码
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidIdentifier):
		response.BadRequest(c, codeInvalidIdentifier, "标识符格式无效")
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, codeNotFound, "资源不存在")
	case errors.Is(err, pkgerrors.ErrConflict):
		response.Conflict(c, codeConflict, "资源冲突")
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}
