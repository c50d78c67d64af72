package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	pkgerrors "event-ops/backend/pkg/errors"
)

// ── 实体标识符 ──
// 每类实体一个不透明类型，原始字符串只在 API 边界经 ParseXxxID 转换后进入业务层。

type (
	OrganizerID   string
	ParticipantID string
	TaskID        string
	AssignmentID  string
	ScanRecordID  string
	ScanEventID   string
	EventID       string
	AdminID       string
)

// ParseOrganizerID 校验并规范化组织者 ID
func ParseOrganizerID(raw string) (OrganizerID, error) {
	return parseID[OrganizerID](raw, "organizer")
}

// ParseParticipantID 校验并规范化参与者 ID
func ParseParticipantID(raw string) (ParticipantID, error) {
	return parseID[ParticipantID](raw, "participant")
}

// ParseTaskID 校验并规范化任务 ID
func ParseTaskID(raw string) (TaskID, error) {
	return parseID[TaskID](raw, "task")
}

// ParseEventID 校验并规范化活动 ID
func ParseEventID(raw string) (EventID, error) {
	return parseID[EventID](raw, "event")
}

// ParseAdminID 校验并规范化管理员 ID
func ParseAdminID(raw string) (AdminID, error) {
	return parseID[AdminID](raw, "admin")
}

// ParseOrganizerIDs 批量解析，任一元素非法即失败
func ParseOrganizerIDs(raws []string) ([]OrganizerID, error) {
	ids := make([]OrganizerID, 0, len(raws))
	for _, raw := range raws {
		id, err := ParseOrganizerID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// NewParticipantID 生成参与者 ID（参与者 ID 同时作为默认二维码内容，需在写库前确定）
func NewParticipantID() ParticipantID {
	return ParticipantID(uuid.NewString())
}

func parseID[T ~string](raw, kind string) (T, error) {
	u, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %s id %q", pkgerrors.ErrInvalidIdentifier, kind, raw)
	}
	return T(u.String()), nil
}
