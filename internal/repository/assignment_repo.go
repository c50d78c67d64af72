package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-ops/backend/internal/model"
)

// AssignmentRepository 任务分配数据访问接口
// task_id 是自然键：UpsertByTaskID 是创建或替换分配记录的唯一入口
type AssignmentRepository interface {
	UpsertByTaskID(ctx context.Context, a *model.TaskAssignment) error
	GetByTaskID(ctx context.Context, taskID model.TaskID) (*model.TaskAssignment, error)
	ListByMember(ctx context.Context, id model.OrganizerID) ([]model.TaskAssignment, error)
	DeleteByTaskID(ctx context.Context, taskID model.TaskID) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

// UpsertByTaskID 单条 INSERT .. ON CONFLICT (task_id) DO UPDATE 整体覆盖两个集合，
// 成功后按自然键重读，a 被替换为库中的最终状态
func (r *assignmentRepo) UpsertByTaskID(ctx context.Context, a *model.TaskAssignment) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "task_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"organizer_ids":  a.OrganizerIDs,
				"supervisor_ids": a.SupervisorIDs,
				"updated_at":     gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(a).Error
	if err != nil {
		return err
	}

	var stored model.TaskAssignment
	if err := r.db.WithContext(ctx).
		Where("task_id = ?", a.TaskID).
		First(&stored).Error; err != nil {
		return err
	}
	*a = stored
	return nil
}

func (r *assignmentRepo) GetByTaskID(ctx context.Context, taskID model.TaskID) (*model.TaskAssignment, error) {
	var a model.TaskAssignment
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByMember 返回 id 出现在组织者或监督者集合中的全部分配记录（jsonb @> 走 GIN 索引）
func (r *assignmentRepo) ListByMember(ctx context.Context, id model.OrganizerID) ([]model.TaskAssignment, error) {
	var list []model.TaskAssignment
	err := r.db.WithContext(ctx).
		Where("organizer_ids @> jsonb_build_array(?::text) OR supervisor_ids @> jsonb_build_array(?::text)", string(id), string(id)).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}

func (r *assignmentRepo) DeleteByTaskID(ctx context.Context, taskID model.TaskID) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Delete(&model.TaskAssignment{}).Error
}
