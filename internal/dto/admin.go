package dto

import "event-ops/backend/internal/model"

// ── 管理员模块 DTO ──

// CreateAdminRequest 创建管理员请求
type CreateAdminRequest struct {
	FullName     string  `json:"full_name"     binding:"required,min=2,max=100"`
	Department   string  `json:"department"    binding:"required,max=50"`
	Phone        string  `json:"phone"         binding:"required,max=30"`
	Email        string  `json:"email"         binding:"required,email,max=255"`
	Password     string  `json:"password"      binding:"required,min=6,max=72"`
	ProfileImage *string `json:"profile_image" binding:"omitempty,url,max=500"`
}

// UpdateAdminRequest 更新管理员请求（仅更新非空字段）
type UpdateAdminRequest struct {
	FullName     *string `json:"full_name"     binding:"omitempty,min=2,max=100"`
	Department   *string `json:"department"    binding:"omitempty,max=50"`
	Phone        *string `json:"phone"         binding:"omitempty,max=30"`
	Email        *string `json:"email"         binding:"omitempty,email,max=255"`
	Password     *string `json:"password"      binding:"omitempty,min=6,max=72"`
	ProfileImage *string `json:"profile_image" binding:"omitempty,url,max=500"`
}

// AdminSearchRequest 管理员搜索参数（大小写不敏感的子串匹配，至少提供一项）
type AdminSearchRequest struct {
	FullName string `form:"full_name" binding:"omitempty,max=100"`
	Email    string `form:"email"     binding:"omitempty,max=255"`
}

// AdminResponse 管理员信息响应（不含密码）
type AdminResponse struct {
	ID           model.AdminID `json:"id"`
	FullName     string        `json:"full_name"`
	Department   string        `json:"department"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	ProfileImage *string       `json:"profile_image"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}
