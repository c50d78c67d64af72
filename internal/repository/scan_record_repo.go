package repository

import (
	"context"

	"gorm.io/gorm"

	"event-ops/backend/internal/model"
)

// ScanRecordRepository 扫码记录数据访问接口
// 集合的增删均为单条语句，不存在先读后写的竞态；changed 表示集合是否真的发生了变化
type ScanRecordRepository interface {
	AddParticipant(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (rec *model.ScanRecord, changed bool, err error)
	RemoveParticipant(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (rec *model.ScanRecord, changed bool, err error)
	GetByTaskID(ctx context.Context, taskID model.TaskID) (*model.ScanRecord, error)
	DeleteByTaskID(ctx context.Context, taskID model.TaskID) error
}

type scanRecordRepo struct {
	db *gorm.DB
}

// NewScanRecordRepo 创建 ScanRecordRepository 实例
func NewScanRecordRepo(db *gorm.DB) ScanRecordRepository {
	return &scanRecordRepo{db: db}
}

const scanRecordColumns = "scan_record_id, task_id, participant_ids, created_at, updated_at"

// 首次扫码时创建单元素集合；已包含该参与者时 WHERE 不成立，不返回行
const addParticipantSQL = `
INSERT INTO scan_records (task_id, participant_ids)
VALUES (?, jsonb_build_array(?::text))
ON CONFLICT (task_id) DO UPDATE SET
    participant_ids = scan_records.participant_ids || EXCLUDED.participant_ids,
    updated_at = CURRENT_TIMESTAMP
WHERE NOT scan_records.participant_ids @> EXCLUDED.participant_ids
RETURNING ` + scanRecordColumns

// 仅当集合包含该参与者时更新；jsonb - text 删除所有相等的字符串元素
const removeParticipantSQL = `
UPDATE scan_records
SET participant_ids = participant_ids - ?::text,
    updated_at = CURRENT_TIMESTAMP
WHERE task_id = ? AND participant_ids @> jsonb_build_array(?::text)
RETURNING ` + scanRecordColumns

func (r *scanRecordRepo) AddParticipant(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (*model.ScanRecord, bool, error) {
	var rec model.ScanRecord
	result := r.db.WithContext(ctx).
		Raw(addParticipantSQL, taskID, string(pid)).
		Scan(&rec)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return &rec, true, nil
	}

	// 已在集合中
	stored, err := r.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

// RemoveParticipant 任务从未扫码时返回 gorm.ErrRecordNotFound
func (r *scanRecordRepo) RemoveParticipant(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (*model.ScanRecord, bool, error) {
	var rec model.ScanRecord
	p := string(pid)
	result := r.db.WithContext(ctx).
		Raw(removeParticipantSQL, p, taskID, p).
		Scan(&rec)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected > 0 {
		return &rec, true, nil
	}

	stored, err := r.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

func (r *scanRecordRepo) GetByTaskID(ctx context.Context, taskID model.TaskID) (*model.ScanRecord, error) {
	var rec model.ScanRecord
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *scanRecordRepo) DeleteByTaskID(ctx context.Context, taskID model.TaskID) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Delete(&model.ScanRecord{}).Error
}
