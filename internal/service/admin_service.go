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

// ── 管理员模块业务错误 ──

var (
	ErrAdminNotFound       = fmt.Errorf("%w: 管理员不存在", pkgerrors.ErrNotFound)
	ErrAdminEmailExists    = fmt.Errorf("%w: 邮箱已被使用", pkgerrors.ErrConflict)
	ErrAdminSearchCriteria = errors.New("姓名和邮箱至少提供一项")
)

// AdminService 管理员业务接口
type AdminService interface {
	Create(ctx context.Context, req *dto.CreateAdminRequest) (*dto.AdminResponse, error)
	GetByID(ctx context.Context, id model.AdminID) (*dto.AdminResponse, error)
	List(ctx context.Context) ([]dto.AdminResponse, error)
	Search(ctx context.Context, req *dto.AdminSearchRequest) ([]dto.AdminResponse, error)
	Update(ctx context.Context, id model.AdminID, req *dto.UpdateAdminRequest) (*dto.AdminResponse, error)
	Delete(ctx context.Context, id model.AdminID) error
}

type adminService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAdminService 创建 AdminService 实例
func NewAdminService(repo *repository.Repository, logger *zap.Logger) AdminService {
	return &adminService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *adminService) Create(ctx context.Context, req *dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码加密失败", zap.Error(err))
		return nil, err
	}

	admin := &model.Admin{
		FullName:     req.FullName,
		Department:   normalizeDepartment(req.Department),
		Phone:        req.Phone,
		Email:        email,
		PasswordHash: string(hash),
		ProfileImage: req.ProfileImage,
	}

	if err := s.repo.Admin.Create(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminEmailExists
		}
		s.logger.Error("创建管理员失败", zap.String("email", email), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	s.logger.Info("管理员已创建", zap.String("admin_id", string(admin.AdminID)))
	return toAdminResponse(admin), nil
}

// ────────────────────── Query ──────────────────────

func (s *adminService) GetByID(ctx context.Context, id model.AdminID) (*dto.AdminResponse, error) {
	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAdminResponse(admin), nil
}

func (s *adminService) List(ctx context.Context) ([]dto.AdminResponse, error) {
	admins, err := s.repo.Admin.List(ctx)
	return s.toListResult(admins, err, "列出管理员失败")
}

func (s *adminService) Search(ctx context.Context, req *dto.AdminSearchRequest) ([]dto.AdminResponse, error) {
	filter := repository.AdminFilter{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
	}
	if filter.FullName == "" && filter.Email == "" {
		return nil, ErrAdminSearchCriteria
	}
	admins, err := s.repo.Admin.Search(ctx, filter)
	return s.toListResult(admins, err, "搜索管理员失败")
}

// ────────────────────── Update ──────────────────────

func (s *adminService) Update(ctx context.Context, id model.AdminID, req *dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	admin, err := s.getAdmin(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		admin.FullName = *req.FullName
	}
	if req.Department != nil {
		admin.Department = normalizeDepartment(*req.Department)
	}
	if req.Phone != nil {
		admin.Phone = *req.Phone
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != admin.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
			admin.Email = email
		}
	}
	if req.ProfileImage != nil {
		admin.ProfileImage = req.ProfileImage
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("密码加密失败", zap.Error(err))
			return nil, err
		}
		admin.PasswordHash = string(hash)
	}

	if err := s.repo.Admin.Update(ctx, admin); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAdminEmailExists
		}
		s.logger.Error("更新管理员失败", zap.String("admin_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	return toAdminResponse(admin), nil
}

// ────────────────────── Delete ──────────────────────

func (s *adminService) Delete(ctx context.Context, id model.AdminID) error {
	if _, err := s.getAdmin(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Admin.Delete(ctx, id); err != nil {
		s.logger.Error("删除管理员失败", zap.String("admin_id", string(id)), zap.Error(err))
		return pkgerrors.Store(err)
	}

	s.logger.Info("管理员已删除", zap.String("admin_id", string(id)))
	return nil
}

// ── 内部辅助方法 ──

func (s *adminService) getAdmin(ctx context.Context, id model.AdminID) (*model.Admin, error) {
	admin, err := s.repo.Admin.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		s.logger.Error("查询管理员失败", zap.String("admin_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	return admin, nil
}

func (s *adminService) ensureEmailFree(ctx context.Context, email string, self model.AdminID) error {
	existing, err := s.repo.Admin.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.AdminID != self {
			return ErrAdminEmailExists
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.logger.Error("查询邮箱失败", zap.String("email", email), zap.Error(err))
		return pkgerrors.Store(err)
	}
}

func (s *adminService) toListResult(admins []model.Admin, err error, msg string) ([]dto.AdminResponse, error) {
	if err != nil {
		s.logger.Error(msg, zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	if len(admins) == 0 {
		return nil, ErrAdminNotFound
	}

	result := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		result = append(result, *toAdminResponse(&admins[i]))
	}
	return result, nil
}

func toAdminResponse(admin *model.Admin) *dto.AdminResponse {
	return &dto.AdminResponse{
		ID:           admin.AdminID,
		FullName:     admin.FullName,
		Department:   admin.Department,
		Phone:        admin.Phone,
		Email:        admin.Email,
		ProfileImage: admin.ProfileImage,
		CreatedAt:    formatTime(admin.CreatedAt),
		UpdatedAt:    formatTime(admin.UpdatedAt),
	}
}
