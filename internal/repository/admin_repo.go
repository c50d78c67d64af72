package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"event-ops/backend/internal/model"
)

// AdminFilter 管理员模糊搜索条件，零值字段不参与过滤
type AdminFilter struct {
	FullName string
	Email    string
}

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByID(ctx context.Context, id model.AdminID) (*model.Admin, error)
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	List(ctx context.Context) ([]model.Admin, error)
	Search(ctx context.Context, filter AdminFilter) ([]model.Admin, error)
	Update(ctx context.Context, admin *model.Admin) error
	Delete(ctx context.Context, id model.AdminID) error
}

type adminRepo struct {
	db *gorm.DB
}

// NewAdminRepo 创建 AdminRepository 实例
func NewAdminRepo(db *gorm.DB) AdminRepository {
	return &adminRepo{db: db}
}

func (r *adminRepo) Create(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *adminRepo) GetByID(ctx context.Context, id model.AdminID) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("admin_id = ?", id).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminRepo) List(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&admins).Error
	return admins, err
}

// Search 姓名 / 邮箱均为大小写不敏感的子串匹配
func (r *adminRepo) Search(ctx context.Context, filter AdminFilter) ([]model.Admin, error) {
	var admins []model.Admin
	db := r.db.WithContext(ctx)

	if filter.FullName != "" {
		db = db.Where("full_name ILIKE ? ESCAPE '\\'", containsPattern(filter.FullName))
	}
	if filter.Email != "" {
		db = db.Where("email ILIKE ? ESCAPE '\\'", containsPattern(filter.Email))
	}

	err := db.Order("full_name ASC").Find(&admins).Error
	return admins, err
}

func (r *adminRepo) Update(ctx context.Context, admin *model.Admin) error {
	return r.db.WithContext(ctx).Save(admin).Error
}

func (r *adminRepo) Delete(ctx context.Context, id model.AdminID) error {
	return r.db.WithContext(ctx).
		Where("admin_id = ?", id).
		Delete(&model.Admin{}).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 转义 LIKE 通配符后两端加 %
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
