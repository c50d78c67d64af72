package dto

import (
	"time"

	"event-ops/backend/internal/model"
)

// ── 活动模块 DTO ──

// CreateEventRequest 创建活动请求，days 条数须与 num_days 一致
type CreateEventRequest struct {
	NumDays int         `json:"num_days" binding:"required,min=1,max=366"`
	MapURL  *string     `json:"map_url"  binding:"omitempty,url,max=500"`
	Days    []time.Time `json:"days"     binding:"required,min=1,max=366"`
}

// UpdateEventRequest 更新活动请求（仅更新非空字段）
type UpdateEventRequest struct {
	NumDays *int        `json:"num_days" binding:"omitempty,min=1,max=366"`
	MapURL  *string     `json:"map_url"  binding:"omitempty,url,max=500"`
	Days    []time.Time `json:"days"     binding:"omitempty,min=1,max=366"`
}

// EventResponse 活动信息响应
type EventResponse struct {
	ID        model.EventID `json:"id"`
	NumDays   int           `json:"num_days"`
	MapURL    *string       `json:"map_url"`
	Days      []string      `json:"days"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}
