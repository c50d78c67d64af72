package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/repository"
	pkgerrors "event-ops/backend/pkg/errors"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound  = fmt.Errorf("%w: 任务不存在", pkgerrors.ErrNotFound)
	ErrTaskTimeRange = errors.New("结束时间不能早于开始时间")
)

// TaskService 任务业务接口
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetByID(ctx context.Context, id model.TaskID) (*dto.TaskResponse, error)
	List(ctx context.Context) ([]dto.TaskResponse, error)
	Search(ctx context.Context, req *dto.TaskSearchRequest) ([]dto.TaskResponse, error)
	ListUnfinished(ctx context.Context) ([]dto.TaskResponse, error)
	ListLate(ctx context.Context) ([]dto.TaskResponse, error)
	Update(ctx context.Context, id model.TaskID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, id model.TaskID) error
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if req.EndTime.Before(req.StartTime) {
		return nil, ErrTaskTimeRange
	}

	task := &model.Task{
		Name:        req.Name,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Day:         req.Day,
		Location:    req.Location,
		Description: req.Description,
		IsComplete:  req.IsComplete,
		IsCheckIn:   req.IsCheckIn,
	}

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.String("name", req.Name), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	s.logger.Info("任务已创建", zap.String("task_id", string(task.TaskID)))
	return toTaskResponse(task), nil
}

// ────────────────────── Query ──────────────────────

func (s *taskService) GetByID(ctx context.Context, id model.TaskID) (*dto.TaskResponse, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) List(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.List(ctx)
	return s.toListResult(tasks, err, "列出任务失败")
}

func (s *taskService) Search(ctx context.Context, req *dto.TaskSearchRequest) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.Search(ctx, repository.TaskFilter{
		Name:      req.Name,
		StartFrom: req.StartTime,
		EndUntil:  req.EndTime,
		Day:       req.Day,
	})
	return s.toListResult(tasks, err, "搜索任务失败")
}

func (s *taskService) ListUnfinished(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListUnfinished(ctx)
	return s.toListResult(tasks, err, "查询未完成任务失败")
}

func (s *taskService) ListLate(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListLate(ctx, s.now())
	return s.toListResult(tasks, err, "查询超时任务失败")
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, id model.TaskID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.StartTime != nil {
		task.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		task.EndTime = *req.EndTime
	}
	if req.Day != nil {
		task.Day = *req.Day
	}
	if req.Location != nil {
		task.Location = *req.Location
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.IsComplete != nil {
		task.IsComplete = *req.IsComplete
	}
	if req.IsCheckIn != nil {
		task.IsCheckIn = *req.IsCheckIn
	}

	if task.EndTime.Before(task.StartTime) {
		return nil, ErrTaskTimeRange
	}

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("更新任务失败", zap.String("task_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	return toTaskResponse(task), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除任务并级联删除其分配记录；扫码记录的清理失败只记日志
// 各步骤为独立语句，不在同一事务内
func (s *taskService) Delete(ctx context.Context, id model.TaskID) error {
	if _, err := s.getTask(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Task.Delete(ctx, id); err != nil {
		s.logger.Error("删除任务失败", zap.String("task_id", string(id)), zap.Error(err))
		return pkgerrors.Store(err)
	}

	if err := s.repo.Assignment.DeleteByTaskID(ctx, id); err != nil {
		s.logger.Error("级联删除任务分配失败", zap.String("task_id", string(id)), zap.Error(err))
		return pkgerrors.Store(err)
	}

	if err := s.repo.ScanRecord.DeleteByTaskID(ctx, id); err != nil {
		s.logger.Warn("清理扫码记录失败", zap.String("task_id", string(id)), zap.Error(err))
	}

	s.logger.Info("任务已删除", zap.String("task_id", string(id)))
	return nil
}

// ── 内部辅助方法 ──

func (s *taskService) getTask(ctx context.Context, id model.TaskID) (*model.Task, error) {
	task, err := s.repo.Task.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.String("task_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	return task, nil
}

func (s *taskService) toListResult(tasks []model.Task, err error, msg string) ([]dto.TaskResponse, error) {
	if err != nil {
		s.logger.Error(msg, zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	if len(tasks) == 0 {
		return nil, ErrTaskNotFound
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toTaskResponse(&tasks[i]))
	}
	return result, nil
}

func toTaskResponse(t *model.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          t.TaskID,
		Name:        t.Name,
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		Day:         t.Day,
		Location:    t.Location,
		Description: t.Description,
		IsComplete:  t.IsComplete,
		IsCheckIn:   t.IsCheckIn,
	}
}
