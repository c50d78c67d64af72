package repository

import (
	"context"

	"gorm.io/gorm"

	"event-ops/backend/internal/model"
)

// ScanEventRepository 扫码事件（仅追加）数据访问接口
type ScanEventRepository interface {
	Append(ctx context.Context, event *model.ScanEvent) error
	ListByTask(ctx context.Context, taskID model.TaskID) ([]model.ScanEvent, error)
}

type scanEventRepo struct {
	db *gorm.DB
}

// NewScanEventRepo 创建 ScanEventRepository 实例
func NewScanEventRepo(db *gorm.DB) ScanEventRepository {
	return &scanEventRepo{db: db}
}

func (r *scanEventRepo) Append(ctx context.Context, event *model.ScanEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *scanEventRepo) ListByTask(ctx context.Context, taskID model.TaskID) ([]model.ScanEvent, error) {
	var events []model.ScanEvent
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("occurred_at ASC").
		Find(&events).Error
	return events, err
}
