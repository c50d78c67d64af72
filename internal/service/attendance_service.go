package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/repository"
	pkgerrors "event-ops/backend/pkg/errors"
)

// AttendanceService 扫码签到业务接口
// 每个（任务, 参与者）只有 scanned / unscanned 两种状态，未出现在集合中即为 unscanned
type AttendanceService interface {
	MarkScanned(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (*dto.ScanRecordResponse, error)
	MarkUnscanned(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (*dto.ScanRecordResponse, error)
	GetStatus(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (*dto.ScanStatusResponse, error)
	// ScanByQR 将二维码内容解析为参与者后标记为已扫码
	ScanByQR(ctx context.Context, taskID model.TaskID, code string) (*dto.ScanRecordResponse, error)
	ListScanHistory(ctx context.Context, taskID model.TaskID) ([]dto.ScanEventResponse, error)
}

type attendanceService struct {
	repo     *repository.Repository
	notifier ScanNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(repo *repository.Repository, notifier ScanNotifier, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, notifier: notifier, logger: logger, now: time.Now}
}

// ────────────────────── MarkScanned ──────────────────────

func (s *attendanceService) MarkScanned(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (*dto.ScanRecordResponse, error) {
	rec, changed, err := s.repo.ScanRecord.AddParticipant(ctx, taskID, pid)
	if err != nil {
		s.logger.Error("标记扫码失败",
			zap.String("task_id", string(taskID)),
			zap.String("participant_id", string(pid)),
			zap.Error(err),
		)
		return nil, pkgerrors.Store(err)
	}

	if changed {
		s.record(ctx, taskID, pid, model.ScanStatusScanned)
	}
	return toScanRecordResponse(taskID, rec), nil
}

// ────────────────────── MarkUnscanned ──────────────────────

func (s *attendanceService) MarkUnscanned(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (*dto.ScanRecordResponse, error) {
	rec, changed, err := s.repo.ScanRecord.RemoveParticipant(ctx, taskID, pid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 任务从未扫码：空操作，返回空集合
			return toScanRecordResponse(taskID, nil), nil
		}
		s.logger.Error("取消扫码失败",
			zap.String("task_id", string(taskID)),
			zap.String("participant_id", string(pid)),
			zap.Error(err),
		)
		return nil, pkgerrors.Store(err)
	}

	if changed {
		s.record(ctx, taskID, pid, model.ScanStatusUnscanned)
	}
	return toScanRecordResponse(taskID, rec), nil
}

// ────────────────────── Query ──────────────────────

func (s *attendanceService) GetStatus(ctx context.Context, taskID model.TaskID, pid model.ParticipantID) (*dto.ScanStatusResponse, error) {
	rec, err := s.repo.ScanRecord.GetByTaskID(ctx, taskID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询扫码记录失败", zap.String("task_id", string(taskID)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	status := rec.StatusOf(pid)
	return &dto.ScanStatusResponse{
		TaskID:        taskID,
		ParticipantID: pid,
		Status:        status,
		Scanned:       status == model.ScanStatusScanned,
	}, nil
}

func (s *attendanceService) ScanByQR(ctx context.Context, taskID model.TaskID, code string) (*dto.ScanRecordResponse, error) {
	p, err := s.repo.Participant.GetByQRCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		s.logger.Error("按二维码查询参与者失败", zap.String("qr_code", code), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	return s.MarkScanned(ctx, taskID, p.ParticipantID)
}

func (s *attendanceService) ListScanHistory(ctx context.Context, taskID model.TaskID) ([]dto.ScanEventResponse, error) {
	events, err := s.repo.ScanEvent.ListByTask(ctx, taskID)
	if err != nil {
		s.logger.Error("查询扫码历史失败", zap.String("task_id", string(taskID)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	result := make([]dto.ScanEventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, toScanEventResponse(&e))
	}
	return result, nil
}

// ── 内部辅助方法 ──

// record 追加审计事件并推送实时通知，仅在集合实际变化时调用；二者失败均不影响主流程
func (s *attendanceService) record(ctx context.Context, taskID model.TaskID, pid model.ParticipantID, action model.ScanStatus) {
	event := &model.ScanEvent{
		TaskID:        taskID,
		ParticipantID: pid,
		Action:        action,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.repo.ScanEvent.Append(ctx, event); err != nil {
		s.logger.Warn("写入扫码事件失败",
			zap.String("task_id", string(taskID)),
			zap.String("participant_id", string(pid)),
			zap.Error(err),
		)
	}

	if s.notifier != nil {
		s.notifier.Broadcast(taskID, toScanEventResponse(event))
	}
}

func toScanRecordResponse(taskID model.TaskID, rec *model.ScanRecord) *dto.ScanRecordResponse {
	ids := model.NewIDList[model.ParticipantID]()
	if rec != nil {
		ids = model.NewIDList(rec.ParticipantIDs...)
	}
	return &dto.ScanRecordResponse{
		TaskID:         taskID,
		ParticipantIDs: ids,
		Total:          len(ids),
	}
}

func toScanEventResponse(e *model.ScanEvent) dto.ScanEventResponse {
	return dto.ScanEventResponse{
		ID:            e.ScanEventID,
		TaskID:        e.TaskID,
		ParticipantID: e.ParticipantID,
		Action:        e.Action,
		OccurredAt:    e.OccurredAt,
	}
}
