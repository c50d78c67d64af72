package dto

import (
	"time"

	"event-ops/backend/internal/model"
)

// ── 扫码模块 DTO ──

// ScanRequest 扫码请求，participant_id 与 qr_code 二选一
type ScanRequest struct {
	ParticipantID string `json:"participant_id" binding:"omitempty,max=64"`
	QRCode        string `json:"qr_code"        binding:"omitempty,max=255"`
}

// ScanRecordResponse 任务的扫码集合
type ScanRecordResponse struct {
	TaskID         model.TaskID          `json:"task_id"`
	ParticipantIDs []model.ParticipantID `json:"participant_ids"`
	Total          int                   `json:"total"`
}

// ScanStatusResponse 单个参与者的扫码状态
type ScanStatusResponse struct {
	TaskID        model.TaskID        `json:"task_id"`
	ParticipantID model.ParticipantID `json:"participant_id"`
	Status        model.ScanStatus    `json:"status"`
	Scanned       bool                `json:"scanned"`
}

// ScanEventResponse 扫码事件（审计日志）
type ScanEventResponse struct {
	ID            model.ScanEventID   `json:"id"`
	TaskID        model.TaskID        `json:"task_id"`
	ParticipantID model.ParticipantID `json:"participant_id"`
	Action        model.ScanStatus    `json:"action"`
	OccurredAt    time.Time           `json:"occurred_at"`
}
