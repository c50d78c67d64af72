package dto

import "event-ops/backend/internal/model"

// ── 参与者模块 DTO ──

// CreateParticipantRequest 创建参与者请求
// QRCode 为空时使用参与者 ID 作为二维码内容
type CreateParticipantRequest struct {
	FullName string  `json:"full_name" binding:"required,min=2,max=100"`
	Email    string  `json:"email"     binding:"required,email,max=255"`
	Phone    string  `json:"phone"     binding:"required,max=30"`
	Team     *string `json:"team"      binding:"omitempty,max=100"`
	QRCode   string  `json:"qr_code"   binding:"omitempty,max=255"`
}

// UpdateParticipantRequest 更新参与者请求（仅更新非空字段）
type UpdateParticipantRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"     binding:"omitempty,email,max=255"`
	Phone    *string `json:"phone"     binding:"omitempty,max=30"`
	Team     *string `json:"team"      binding:"omitempty,max=100"`
}

// ParticipantResponse 参与者信息响应
type ParticipantResponse struct {
	ID        model.ParticipantID `json:"id"`
	FullName  string              `json:"full_name"`
	Email     string              `json:"email"`
	Phone     string              `json:"phone"`
	Team      *string             `json:"team,omitempty"`
	QRCode    string              `json:"qr_code"`
	CreatedAt string              `json:"created_at"`
	UpdatedAt string              `json:"updated_at"`
}

// ParticipantStatusResponse 参与者在某任务下的扫码状态（联表结果）
type ParticipantStatusResponse struct {
	ParticipantID model.ParticipantID `json:"participant_id"`
	FullName      string              `json:"full_name"`
	Email         string              `json:"email"`
	Phone         string              `json:"phone"`
	Scanned       bool                `json:"scanned"`
}
