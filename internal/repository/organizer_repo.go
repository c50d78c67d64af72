package repository

import (
	"context"

	"gorm.io/gorm"

	"event-ops/backend/internal/model"
)

// OrganizerFilter 组织者搜索条件，零值字段不参与过滤
type OrganizerFilter struct {
	FullName   string
	Status     model.OrganizerStatus
	Department string
}

// OrganizerRepository 组织者数据访问接口
type OrganizerRepository interface {
	Create(ctx context.Context, org *model.Organizer) error
	GetByID(ctx context.Context, id model.OrganizerID) (*model.Organizer, error)
	GetByEmail(ctx context.Context, email string) (*model.Organizer, error)
	List(ctx context.Context) ([]model.Organizer, error)
	Search(ctx context.Context, filter OrganizerFilter) ([]model.Organizer, error)
	ListByAbsence(ctx context.Context, absent bool) ([]model.Organizer, error)
	Update(ctx context.Context, org *model.Organizer) error
	Delete(ctx context.Context, id model.OrganizerID) error
}

// organizerRepo OrganizerRepository 的 GORM 实现
type organizerRepo struct {
	db *gorm.DB
}

// NewOrganizerRepo 创建 OrganizerRepository 实例
func NewOrganizerRepo(db *gorm.DB) OrganizerRepository {
	return &organizerRepo{db: db}
}

func (r *organizerRepo) Create(ctx context.Context, org *model.Organizer) error {
	return r.db.WithContext(ctx).Create(org).Error
}

func (r *organizerRepo) GetByID(ctx context.Context, id model.OrganizerID) (*model.Organizer, error) {
	var org model.Organizer
	err := r.db.WithContext(ctx).
		Where("organizer_id = ?", id).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizerRepo) GetByEmail(ctx context.Context, email string) (*model.Organizer, error) {
	var org model.Organizer
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizerRepo) List(ctx context.Context) ([]model.Organizer, error) {
	var orgs []model.Organizer
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&orgs).Error
	return orgs, err
}

func (r *organizerRepo) Search(ctx context.Context, filter OrganizerFilter) ([]model.Organizer, error) {
	var orgs []model.Organizer
	db := r.db.WithContext(ctx)

	if filter.FullName != "" {
		db = db.Where("full_name = ?", filter.FullName)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}

	err := db.Order("full_name ASC").Find(&orgs).Error
	return orgs, err
}

func (r *organizerRepo) ListByAbsence(ctx context.Context, absent bool) ([]model.Organizer, error) {
	var orgs []model.Organizer
	err := r.db.WithContext(ctx).
		Where("is_absent = ?", absent).
		Order("full_name ASC").
		Find(&orgs).Error
	return orgs, err
}

func (r *organizerRepo) Update(ctx context.Context, org *model.Organizer) error {
	return r.db.WithContext(ctx).Save(org).Error
}

func (r *organizerRepo) Delete(ctx context.Context, id model.OrganizerID) error {
	return r.db.WithContext(ctx).
		Where("organizer_id = ?", id).
		Delete(&model.Organizer{}).Error
}
