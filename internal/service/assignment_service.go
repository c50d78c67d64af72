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

// ── 任务分配模块业务错误 ──

var (
	ErrAssignmentNotFound = fmt.Errorf("%w: 任务分配不存在", pkgerrors.ErrNotFound)
)

// AssignmentService 任务分配业务接口
type AssignmentService interface {
	// Upsert 按任务 ID 创建或整体替换分配记录，幂等
	Upsert(ctx context.Context, taskID model.TaskID, organizerIDs, supervisorIDs []model.OrganizerID) (*dto.AssignmentResponse, error)
	Get(ctx context.Context, taskID model.TaskID) (*dto.AssignmentResponse, error)
	// ListForOrganizer 返回包含该组织者的分配记录，同时在两个集合中时标记为监督者
	ListForOrganizer(ctx context.Context, organizerID model.OrganizerID) ([]dto.OrganizerAssignmentResponse, error)
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Upsert ──────────────────────

func (s *assignmentService) Upsert(ctx context.Context, taskID model.TaskID, organizerIDs, supervisorIDs []model.OrganizerID) (*dto.AssignmentResponse, error) {
	a := &model.TaskAssignment{
		TaskID:        taskID,
		OrganizerIDs:  model.NewIDList(organizerIDs...),
		SupervisorIDs: model.NewIDList(supervisorIDs...),
	}

	if err := s.repo.Assignment.UpsertByTaskID(ctx, a); err != nil {
		s.logger.Error("写入任务分配失败", zap.String("task_id", string(taskID)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	s.logger.Info("任务分配已更新",
		zap.String("task_id", string(taskID)),
		zap.Int("organizers", len(a.OrganizerIDs)),
		zap.Int("supervisors", len(a.SupervisorIDs)),
	)
	return toAssignmentResponse(a), nil
}

// ────────────────────── Query ──────────────────────

func (s *assignmentService) Get(ctx context.Context, taskID model.TaskID) (*dto.AssignmentResponse, error) {
	a, err := s.repo.Assignment.GetByTaskID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询任务分配失败", zap.String("task_id", string(taskID)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	return toAssignmentResponse(a), nil
}

func (s *assignmentService) ListForOrganizer(ctx context.Context, organizerID model.OrganizerID) ([]dto.OrganizerAssignmentResponse, error) {
	list, err := s.repo.Assignment.ListByMember(ctx, organizerID)
	if err != nil {
		s.logger.Error("查询组织者分配失败", zap.String("organizer_id", string(organizerID)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	result := make([]dto.OrganizerAssignmentResponse, 0, len(list))
	for i := range list {
		assigned, isSupervisor := list[i].RoleOf(organizerID)
		if !assigned {
			continue
		}
		result = append(result, dto.OrganizerAssignmentResponse{
			AssignmentResponse: *toAssignmentResponse(&list[i]),
			IsSupervisor:       isSupervisor,
		})
	}

	if len(result) == 0 {
		return nil, ErrAssignmentNotFound
	}
	return result, nil
}

func toAssignmentResponse(a *model.TaskAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:            a.AssignmentID,
		TaskID:        a.TaskID,
		OrganizerIDs:  model.NewIDList(a.OrganizerIDs...),
		SupervisorIDs: model.NewIDList(a.SupervisorIDs...),
		UpdatedAt:     formatTime(a.UpdatedAt),
	}
}
