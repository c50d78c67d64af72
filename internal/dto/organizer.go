package dto

import "event-ops/backend/internal/model"

// ── 组织者模块 DTO ──

// CreateOrganizerRequest 创建组织者请求
type CreateOrganizerRequest struct {
	FullName   string `json:"full_name"  binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email,max=255"`
	Phone      string `json:"phone"      binding:"required,max=30"`
	Status     string `json:"status"     binding:"omitempty,oneof=free occupied timeout"`
	Department string `json:"department" binding:"required,max=50"`
	IsAbsent   bool   `json:"is_absent"`
	Password   string `json:"password"   binding:"required,min=6,max=72"`
}

// UpdateOrganizerRequest 更新组织者请求（仅更新非空字段）
type UpdateOrganizerRequest struct {
	FullName   *string `json:"full_name"  binding:"omitempty,min=2,max=100"`
	Email      *string `json:"email"      binding:"omitempty,email,max=255"`
	Phone      *string `json:"phone"      binding:"omitempty,max=30"`
	Status     *string `json:"status"     binding:"omitempty,oneof=free occupied timeout"`
	Department *string `json:"department" binding:"omitempty,max=50"`
	IsAbsent   *bool   `json:"is_absent"`
	Password   *string `json:"password"   binding:"omitempty,min=6,max=72"`
}

// OrganizerSearchRequest 组织者搜索参数（均为精确匹配，空值忽略）
type OrganizerSearchRequest struct {
	FullName   string `form:"full_name"  binding:"omitempty,max=100"`
	Status     string `form:"status"     binding:"omitempty,oneof=free occupied timeout"`
	Department string `form:"department" binding:"omitempty,max=50"`
}

// OrganizerResponse 组织者信息响应（不含密码）
type OrganizerResponse struct {
	ID         model.OrganizerID `json:"id"`
	FullName   string            `json:"full_name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Status     string            `json:"status"`
	Department string            `json:"department"`
	IsAbsent   bool              `json:"is_absent"`
	CreatedAt  string            `json:"created_at"`
	UpdatedAt  string            `json:"updated_at"`
}
