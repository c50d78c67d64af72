package repository

import (
	"context"

	"gorm.io/gorm"

	"event-ops/backend/internal/model"
)

// ParticipantRepository 参与者数据访问接口
type ParticipantRepository interface {
	Create(ctx context.Context, p *model.Participant) error
	GetByID(ctx context.Context, id model.ParticipantID) (*model.Participant, error)
	GetByEmail(ctx context.Context, email string) (*model.Participant, error)
	GetByQRCode(ctx context.Context, code string) (*model.Participant, error)
	List(ctx context.Context) ([]model.Participant, error)
	Update(ctx context.Context, p *model.Participant) error
	Delete(ctx context.Context, id model.ParticipantID) error
}

type participantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo 创建 ParticipantRepository 实例
func NewParticipantRepo(db *gorm.DB) ParticipantRepository {
	return &participantRepo{db: db}
}

func (r *participantRepo) Create(ctx context.Context, p *model.Participant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *participantRepo) GetByID(ctx context.Context, id model.ParticipantID) (*model.Participant, error) {
	return r.first(ctx, "participant_id = ?", id)
}

func (r *participantRepo) GetByEmail(ctx context.Context, email string) (*model.Participant, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *participantRepo) GetByQRCode(ctx context.Context, code string) (*model.Participant, error) {
	return r.first(ctx, "qr_code = ?", code)
}

func (r *participantRepo) List(ctx context.Context) ([]model.Participant, error) {
	var list []model.Participant
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&list).Error
	return list, err
}

func (r *participantRepo) Update(ctx context.Context, p *model.Participant) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *participantRepo) Delete(ctx context.Context, id model.ParticipantID) error {
	return r.db.WithContext(ctx).
		Where("participant_id = ?", id).
		Delete(&model.Participant{}).Error
}

func (r *participantRepo) first(ctx context.Context, query string, arg interface{}) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.WithContext(ctx).Where(query, arg).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
