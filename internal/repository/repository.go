package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
// Service 层只依赖这里的接口，测试时整体替换为内存实现
type Repository struct {
	Organizer   OrganizerRepository
	Participant ParticipantRepository
	Task        TaskRepository
	Assignment  AssignmentRepository
	ScanRecord  ScanRecordRepository
	ScanEvent   ScanEventRepository
	Event       EventRepository
	Admin       AdminRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Organizer:   NewOrganizerRepo(db),
		Participant: NewParticipantRepo(db),
		Task:        NewTaskRepo(db),
		Assignment:  NewAssignmentRepo(db),
		ScanRecord:  NewScanRecordRepo(db),
		ScanEvent:   NewScanEventRepo(db),
		Event:       NewEventRepo(db),
		Admin:       NewAdminRepo(db),
	}
}
