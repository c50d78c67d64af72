package model

// TaskAssignment 任务分配表 — 对应 task_assignments
// 以 task_id 为自然键，每个任务至多一条；组织者/监督者集合整体覆盖写入。
type TaskAssignment struct {
	AssignmentID  AssignmentID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	TaskID        TaskID              `gorm:"type:uuid;not null;uniqueIndex"                 json:"task_id"`
	OrganizerIDs  IDList[OrganizerID] `gorm:"type:jsonb;not null;default:'[]'"               json:"organizer_ids"`
	SupervisorIDs IDList[OrganizerID] `gorm:"type:jsonb;not null;default:'[]'"               json:"supervisor_ids"`
	BaseModel
}

// TableName 指定表名
func (TaskAssignment) TableName() string { return "task_assignments" }

// RoleOf 返回 id 在本分配中的角色；同时出现在两个集合时监督者优先
func (a *TaskAssignment) RoleOf(id OrganizerID) (assigned bool, isSupervisor bool) {
	if a.SupervisorIDs.Contains(id) {
		return true, true
	}
	if a.OrganizerIDs.Contains(id) {
		return true, false
	}
	return false, false
}
