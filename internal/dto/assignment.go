package dto

import "event-ops/backend/internal/model"

// ── 任务分配模块 DTO ──

// UpsertAssignmentRequest 覆盖写入任务分配
// 两个集合均为整体替换，缺省视为空集合
type UpsertAssignmentRequest struct {
	OrganizerIDs  []string `json:"organizer_ids"  binding:"omitempty,max=200"`
	SupervisorIDs []string `json:"supervisor_ids" binding:"omitempty,max=200"`
}

// AssignmentResponse 任务分配记录
type AssignmentResponse struct {
	ID            model.AssignmentID  `json:"id"`
	TaskID        model.TaskID        `json:"task_id"`
	OrganizerIDs  []model.OrganizerID `json:"organizer_ids"`
	SupervisorIDs []model.OrganizerID `json:"supervisor_ids"`
	UpdatedAt     string              `json:"updated_at"`
}

// OrganizerAssignmentResponse 某组织者参与的分配记录及其角色
type OrganizerAssignmentResponse struct {
	AssignmentResponse
	IsSupervisor bool `json:"is_supervisor"`
}
