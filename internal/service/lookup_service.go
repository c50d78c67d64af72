package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/repository"
	pkgerrors "event-ops/backend/pkg/errors"
)

// ── 联表查询业务错误 ──

var (
	ErrNoParticipants  = fmt.Errorf("%w: 未找到参与者", pkgerrors.ErrNotFound)
	ErrNoTasksAssigned = fmt.Errorf("%w: 该组织者没有分配任务", pkgerrors.ErrNotFound)
)

// LookupService 跨集合联表查询
// 所有联表都在应用层完成，存储层不存在外键
type LookupService interface {
	ListParticipantsWithStatus(ctx context.Context, taskID model.TaskID) ([]dto.ParticipantStatusResponse, error)
	ListScannedParticipants(ctx context.Context, taskID model.TaskID) ([]dto.ParticipantResponse, error)
	ListUnscannedParticipants(ctx context.Context, taskID model.TaskID) ([]dto.ParticipantResponse, error)
	// ListTasksForOrganizer 按开始时间升序返回组织者被分配的任务；任务已删除的分配记录被跳过
	ListTasksForOrganizer(ctx context.Context, organizerID model.OrganizerID) ([]dto.TaskWithRoleResponse, error)
}

type lookupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLookupService 创建 LookupService 实例
func NewLookupService(repo *repository.Repository, logger *zap.Logger) LookupService {
	return &lookupService{repo: repo, logger: logger}
}

// ────────────────────── Participants × ScanRecord ──────────────────────

func (s *lookupService) ListParticipantsWithStatus(ctx context.Context, taskID model.TaskID) ([]dto.ParticipantStatusResponse, error) {
	participants, rec, err := s.loadParticipantsAndScans(ctx, taskID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ParticipantStatusResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, dto.ParticipantStatusResponse{
			ParticipantID: p.ParticipantID,
			FullName:      p.FullName,
			Email:         p.Email,
			Phone:         p.Phone,
			Scanned:       rec.StatusOf(p.ParticipantID) == model.ScanStatusScanned,
		})
	}
	return result, nil
}

func (s *lookupService) ListScannedParticipants(ctx context.Context, taskID model.TaskID) ([]dto.ParticipantResponse, error) {
	return s.filterByStatus(ctx, taskID, model.ScanStatusScanned)
}

func (s *lookupService) ListUnscannedParticipants(ctx context.Context, taskID model.TaskID) ([]dto.ParticipantResponse, error) {
	return s.filterByStatus(ctx, taskID, model.ScanStatusUnscanned)
}

// ────────────────────── Assignment × Task ──────────────────────

func (s *lookupService) ListTasksForOrganizer(ctx context.Context, organizerID model.OrganizerID) ([]dto.TaskWithRoleResponse, error) {
	assignments, err := s.repo.Assignment.ListByMember(ctx, organizerID)
	if err != nil {
		s.logger.Error("查询组织者分配失败", zap.String("organizer_id", string(organizerID)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	roles := make(map[model.TaskID]bool, len(assignments))
	taskIDs := make([]model.TaskID, 0, len(assignments))
	for i := range assignments {
		assigned, isSupervisor := assignments[i].RoleOf(organizerID)
		if !assigned {
			continue
		}
		roles[assignments[i].TaskID] = isSupervisor
		taskIDs = append(taskIDs, assignments[i].TaskID)
	}
	if len(taskIDs) == 0 {
		return nil, ErrNoTasksAssigned
	}

	tasks, err := s.repo.Task.ListByIDs(ctx, taskIDs)
	if err != nil {
		s.logger.Error("批量查询任务失败", zap.Int("count", len(taskIDs)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	result := make([]dto.TaskWithRoleResponse, 0, len(tasks))
	for i := range tasks {
		isSupervisor, ok := roles[tasks[i].TaskID]
		if !ok {
			continue
		}
		result = append(result, dto.TaskWithRoleResponse{
			TaskResponse: *toTaskResponse(&tasks[i]),
			IsSupervisor: isSupervisor,
		})
	}

	if len(result) == 0 {
		return nil, ErrNoTasksAssigned
	}
	if len(result) < len(taskIDs) {
		s.logger.Debug("跳过已删除任务的分配记录",
			zap.String("organizer_id", string(organizerID)),
			zap.Int("skipped", len(taskIDs)-len(result)),
		)
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *lookupService) loadParticipantsAndScans(ctx context.Context, taskID model.TaskID) ([]model.Participant, *model.ScanRecord, error) {
	participants, err := s.repo.Participant.List(ctx)
	if err != nil {
		s.logger.Error("列出参与者失败", zap.Error(err))
		return nil, nil, pkgerrors.Store(err)
	}
	if len(participants) == 0 {
		return nil, nil, ErrNoParticipants
	}

	rec, err := s.repo.ScanRecord.GetByTaskID(ctx, taskID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询扫码记录失败", zap.String("task_id", string(taskID)), zap.Error(err))
			return nil, nil, pkgerrors.Store(err)
		}
		rec = nil
	}
	return participants, rec, nil
}

func (s *lookupService) filterByStatus(ctx context.Context, taskID model.TaskID, want model.ScanStatus) ([]dto.ParticipantResponse, error) {
	participants, rec, err := s.loadParticipantsAndScans(ctx, taskID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ParticipantResponse, 0, len(participants))
	for i := range participants {
		if rec.StatusOf(participants[i].ParticipantID) != want {
			continue
		}
		result = append(result, *toParticipantResponse(&participants[i]))
	}

	if len(result) == 0 {
		return nil, ErrNoParticipants
	}
	return result, nil
}
