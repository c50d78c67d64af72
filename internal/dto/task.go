package dto

import (
	"time"

	"event-ops/backend/internal/model"
)

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Name        string    `json:"name"        binding:"required,min=1,max=200"`
	StartTime   time.Time `json:"start_time"  binding:"required"`
	EndTime     time.Time `json:"end_time"    binding:"required,gtefield=StartTime"`
	Day         time.Time `json:"day"         binding:"required"`
	Location    string    `json:"location"    binding:"required,max=200"`
	Description string    `json:"description" binding:"omitempty,max=5000"`
	IsComplete  bool      `json:"is_complete"`
	IsCheckIn   bool      `json:"is_check_in"`
}

// UpdateTaskRequest 更新任务请求（仅更新非空字段）
type UpdateTaskRequest struct {
	Name        *string    `json:"name"        binding:"omitempty,min=1,max=200"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Day         *time.Time `json:"day"`
	Location    *string    `json:"location"    binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	IsComplete  *bool      `json:"is_complete"`
	IsCheckIn   *bool      `json:"is_check_in"`
}

// TaskSearchRequest 任务搜索参数
// StartTime 为下界（>=），EndTime 为上界（<=），Day 按自然日匹配
type TaskSearchRequest struct {
	Name      string    `form:"name"       binding:"omitempty,max=200"`
	StartTime time.Time `form:"start_time" time_format:"2006-01-02T15:04:05Z07:00"`
	EndTime   time.Time `form:"end_time"   time_format:"2006-01-02T15:04:05Z07:00"`
	Day       time.Time `form:"day"        time_format:"2006-01-02"`
}

// TaskResponse 任务信息响应
type TaskResponse struct {
	ID          model.TaskID `json:"id"`
	Name        string       `json:"name"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	Day         time.Time    `json:"day"`
	Location    string       `json:"location"`
	Description string       `json:"description"`
	IsComplete  bool         `json:"is_complete"`
	IsCheckIn   bool         `json:"is_check_in"`
}

// TaskWithRoleResponse 组织者视角的任务（附带角色标记）
type TaskWithRoleResponse struct {
	TaskResponse
	IsSupervisor bool `json:"is_supervisor"`
}
