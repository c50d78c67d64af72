package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"event-ops/backend/internal/model"
)

// TaskFilter 任务搜索条件，零值字段不参与过滤
type TaskFilter struct {
	Name      string
	StartFrom time.Time // start_time >= StartFrom
	EndUntil  time.Time // end_time <= EndUntil
	Day       time.Time // 按 Day 所在时区的自然日匹配
}

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id model.TaskID) (*model.Task, error)
	ListByIDs(ctx context.Context, ids []model.TaskID) ([]model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Search(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	ListUnfinished(ctx context.Context) ([]model.Task, error)
	ListLate(ctx context.Context, now time.Time) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id model.TaskID) error
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id model.TaskID) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) ListByIDs(ctx context.Context, ids []model.TaskID) ([]model.Task, error) {
	if len(ids) == 0 {
		return []model.Task{}, nil
	}
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("task_id IN ?", ids).
		Order("start_time ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("start_time ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) Search(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var tasks []model.Task
	db := r.db.WithContext(ctx)

	if filter.Name != "" {
		db = db.Where("name = ?", filter.Name)
	}
	if !filter.StartFrom.IsZero() {
		db = db.Where("start_time >= ?", filter.StartFrom)
	}
	if !filter.EndUntil.IsZero() {
		db = db.Where("end_time <= ?", filter.EndUntil)
	}
	if !filter.Day.IsZero() {
		y, m, d := filter.Day.Date()
		dayStart := time.Date(y, m, d, 0, 0, 0, 0, filter.Day.Location())
		db = db.Where("day >= ? AND day < ?", dayStart, dayStart.AddDate(0, 0, 1))
	}

	err := db.Order("start_time ASC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListUnfinished(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("is_complete = ?", false).
		Order("end_time ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListLate(ctx context.Context, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("is_complete = ? AND end_time < ?", false, now).
		Order("end_time ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, id model.TaskID) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", id).
		Delete(&model.Task{}).Error
}
