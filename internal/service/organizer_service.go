package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/repository"
	pkgerrors "event-ops/backend/pkg/errors"
)

// ── 组织者模块业务错误 ──

var (
	ErrOrganizerNotFound    = fmt.Errorf("%w: 组织者不存在", pkgerrors.ErrNotFound)
	ErrOrganizerEmailExists = fmt.Errorf("%w: 邮箱已被使用", pkgerrors.ErrConflict)
)

// OrganizerService 组织者业务接口
type OrganizerService interface {
	Create(ctx context.Context, req *dto.CreateOrganizerRequest) (*dto.OrganizerResponse, error)
	GetByID(ctx context.Context, id model.OrganizerID) (*dto.OrganizerResponse, error)
	List(ctx context.Context) ([]dto.OrganizerResponse, error)
	Search(ctx context.Context, req *dto.OrganizerSearchRequest) ([]dto.OrganizerResponse, error)
	ListAbsent(ctx context.Context) ([]dto.OrganizerResponse, error)
	ListPresent(ctx context.Context) ([]dto.OrganizerResponse, error)
	Update(ctx context.Context, id model.OrganizerID, req *dto.UpdateOrganizerRequest) (*dto.OrganizerResponse, error)
	Delete(ctx context.Context, id model.OrganizerID) error
}

type organizerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOrganizerService 创建 OrganizerService 实例
func NewOrganizerService(repo *repository.Repository, logger *zap.Logger) OrganizerService {
	return &organizerService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *organizerService) Create(ctx context.Context, req *dto.CreateOrganizerRequest) (*dto.OrganizerResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码加密失败", zap.Error(err))
		return nil, err
	}

	status := model.OrganizerStatus(req.Status)
	if status == "" {
		status = model.OrganizerFree
	}

	org := &model.Organizer{
		FullName:     req.FullName,
		Email:        email,
		Phone:        req.Phone,
		Status:       status,
		Department:   normalizeDepartment(req.Department),
		IsAbsent:     req.IsAbsent,
		PasswordHash: string(hash),
	}

	if err := s.repo.Organizer.Create(ctx, org); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOrganizerEmailExists
		}
		s.logger.Error("创建组织者失败", zap.String("email", email), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	s.logger.Info("组织者已创建", zap.String("organizer_id", string(org.OrganizerID)))
	return toOrganizerResponse(org), nil
}

// ────────────────────── Query ──────────────────────

func (s *organizerService) GetByID(ctx context.Context, id model.OrganizerID) (*dto.OrganizerResponse, error) {
	org, err := s.getOrganizer(ctx, id)
	if err != nil {
		return nil, err
	}
	return toOrganizerResponse(org), nil
}

func (s *organizerService) List(ctx context.Context) ([]dto.OrganizerResponse, error) {
	orgs, err := s.repo.Organizer.List(ctx)
	return s.toListResult(orgs, err, "列出组织者失败")
}

func (s *organizerService) Search(ctx context.Context, req *dto.OrganizerSearchRequest) ([]dto.OrganizerResponse, error) {
	filter := repository.OrganizerFilter{
		FullName:   strings.TrimSpace(req.FullName),
		Status:     model.OrganizerStatus(req.Status),
		Department: normalizeDepartment(req.Department),
	}
	orgs, err := s.repo.Organizer.Search(ctx, filter)
	return s.toListResult(orgs, err, "搜索组织者失败")
}

func (s *organizerService) ListAbsent(ctx context.Context) ([]dto.OrganizerResponse, error) {
	orgs, err := s.repo.Organizer.ListByAbsence(ctx, true)
	return s.toListResult(orgs, err, "查询缺勤组织者失败")
}

func (s *organizerService) ListPresent(ctx context.Context) ([]dto.OrganizerResponse, error) {
	orgs, err := s.repo.Organizer.ListByAbsence(ctx, false)
	return s.toListResult(orgs, err, "查询在岗组织者失败")
}

// ────────────────────── Update ──────────────────────

func (s *organizerService) Update(ctx context.Context, id model.OrganizerID, req *dto.UpdateOrganizerRequest) (*dto.OrganizerResponse, error) {
	org, err := s.getOrganizer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		org.FullName = *req.FullName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != org.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
			org.Email = email
		}
	}
	if req.Phone != nil {
		org.Phone = *req.Phone
	}
	if req.Status != nil {
		org.Status = model.OrganizerStatus(*req.Status)
	}
	if req.Department != nil {
		org.Department = normalizeDepartment(*req.Department)
	}
	if req.IsAbsent != nil {
		org.IsAbsent = *req.IsAbsent
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码加密失败", zap.Error(err))
			return nil, err
		}
		org.PasswordHash = string(hash)
	}

	if err := s.repo.Organizer.Update(ctx, org); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrOrganizerEmailExists
		}
		s.logger.Error("更新组织者失败", zap.String("organizer_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	return toOrganizerResponse(org), nil
}

// ────────────────────── Delete ──────────────────────

func (s *organizerService) Delete(ctx context.Context, id model.OrganizerID) error {
	if _, err := s.getOrganizer(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Organizer.Delete(ctx, id); err != nil {
		s.logger.Error("删除组织者失败", zap.String("organizer_id", string(id)), zap.Error(err))
		return pkgerrors.Store(err)
	}

	s.logger.Info("组织者已删除", zap.String("organizer_id", string(id)))
	return nil
}

// ── 内部辅助方法 ──

func (s *organizerService) getOrganizer(ctx context.Context, id model.OrganizerID) (*model.Organizer, error) {
	org, err := s.repo.Organizer.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizerNotFound
		}
		s.logger.Error("查询组织者失败", zap.String("organizer_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	return org, nil
}

// ensureEmailFree 邮箱已被其他组织者占用时返回冲突
func (s *organizerService) ensureEmailFree(ctx context.Context, email string, self model.OrganizerID) error {
	existing, err := s.repo.Organizer.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.OrganizerID != self {
			return ErrOrganizerEmailExists
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.logger.Error("查询邮箱失败", zap.String("email", email), zap.Error(err))
		return pkgerrors.Store(err)
	}
}

func (s *organizerService) toListResult(orgs []model.Organizer, err error, msg string) ([]dto.OrganizerResponse, error) {
	if err != nil {
		s.logger.Error(msg, zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	if len(orgs) == 0 {
		return nil, ErrOrganizerNotFound
	}

	result := make([]dto.OrganizerResponse, 0, len(orgs))
	for i := range orgs {
		result = append(result, *toOrganizerResponse(&orgs[i]))
	}
	return result, nil
}

// normalizeDepartment 部门名统一小写存储与匹配
func normalizeDepartment(dept string) string {
	return strings.ToLower(strings.TrimSpace(dept))
}

func toOrganizerResponse(org *model.Organizer) *dto.OrganizerResponse {
	return &dto.OrganizerResponse{
		ID:         org.OrganizerID,
		FullName:   org.FullName,
		Email:      org.Email,
		Phone:      org.Phone,
		Status:     string(org.Status),
		Department: org.Department,
		IsAbsent:   org.IsAbsent,
		CreatedAt:  formatTime(org.CreatedAt),
		UpdatedAt:  formatTime(org.UpdatedAt),
	}
}
