package model

import "time"

// Task 任务表 — 对应 tasks
type Task struct {
	TaskID      TaskID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	Name        string    `gorm:"type:varchar(200);not null"                     json:"name"`
	StartTime   time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime     time.Time `gorm:"not null"                                       json:"end_time"`
	Day         time.Time `gorm:"not null"                                       json:"day"`
	Location    string    `gorm:"type:varchar(200);not null"                     json:"location"`
	Description string    `gorm:"type:text;not null;default:''"                  json:"description"`
	IsComplete  bool      `gorm:"not null;default:false"                         json:"is_complete"`
	IsCheckIn   bool      `gorm:"not null;default:false"                         json:"is_check_in"`
	BaseModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// IsLate 未完成且已过结束时间
func (t *Task) IsLate(now time.Time) bool {
	return !t.IsComplete && t.EndTime.Before(now)
}
