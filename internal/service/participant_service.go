package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/repository"
	pkgerrors "event-ops/backend/pkg/errors"
)

// ── 参与者模块业务错误 ──

var (
	ErrParticipantNotFound    = fmt.Errorf("%w: 参与者不存在", pkgerrors.ErrNotFound)
	ErrParticipantEmailExists = fmt.Errorf("%w: 邮箱已被使用", pkgerrors.ErrConflict)
	ErrQRCodeExists           = fmt.Errorf("%w: 二维码已被占用", pkgerrors.ErrConflict)
)

// ParticipantService 参与者业务接口
type ParticipantService interface {
	Create(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.ParticipantResponse, error)
	GetByID(ctx context.Context, id model.ParticipantID) (*dto.ParticipantResponse, error)
	GetByQRCode(ctx context.Context, code string) (*dto.ParticipantResponse, error)
	List(ctx context.Context) ([]dto.ParticipantResponse, error)
	Update(ctx context.Context, id model.ParticipantID, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, error)
	Delete(ctx context.Context, id model.ParticipantID) error
}

type participantService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewParticipantService 创建 ParticipantService 实例
func NewParticipantService(repo *repository.Repository, logger *zap.Logger) ParticipantService {
	return &participantService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *participantService) Create(ctx context.Context, req *dto.CreateParticipantRequest) (*dto.ParticipantResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}

	// ID 在写库前生成：未指定二维码时以 ID 作为二维码内容
	id := model.NewParticipantID()
	qr := strings.TrimSpace(req.QRCode)
	if qr == "" {
		qr = string(id)
	} else if err := s.ensureQRCodeFree(ctx, qr); err != nil {
		return nil, err
	}

	p := &model.Participant{
		ParticipantID: id,
		FullName:      req.FullName,
		Email:         email,
		Phone:         req.Phone,
		Team:          req.Team,
		QRCode:        qr,
	}

	if err := s.repo.Participant.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrParticipantEmailExists
		}
		s.logger.Error("创建参与者失败", zap.String("email", email), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	return toParticipantResponse(p), nil
}

// ────────────────────── Query ──────────────────────

func (s *participantService) GetByID(ctx context.Context, id model.ParticipantID) (*dto.ParticipantResponse, error) {
	p, err := s.repo.Participant.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, zap.String("participant_id", string(id)))
	}
	return toParticipantResponse(p), nil
}

func (s *participantService) GetByQRCode(ctx context.Context, code string) (*dto.ParticipantResponse, error) {
	p, err := s.repo.Participant.GetByQRCode(ctx, code)
	if err != nil {
		return nil, s.mapLookupError(err, zap.String("qr_code", code))
	}
	return toParticipantResponse(p), nil
}

func (s *participantService) List(ctx context.Context) ([]dto.ParticipantResponse, error) {
	list, err := s.repo.Participant.List(ctx)
	if err != nil {
		s.logger.Error("列出参与者失败", zap.Error(err))
		return nil, pkgerrors.Store(err)
	}
	if len(list) == 0 {
		return nil, ErrParticipantNotFound
	}

	result := make([]dto.ParticipantResponse, 0, len(list))
	for i := range list {
		result = append(result, *toParticipantResponse(&list[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *participantService) Update(ctx context.Context, id model.ParticipantID, req *dto.UpdateParticipantRequest) (*dto.ParticipantResponse, error) {
	p, err := s.repo.Participant.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(err, zap.String("participant_id", string(id)))
	}

	if req.FullName != nil {
		p.FullName = *req.FullName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != p.Email {
			if err := s.ensureEmailFree(ctx, email, id); err != nil {
				return nil, err
			}
			p.Email = email
		}
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	if req.Team != nil {
		p.Team = req.Team
	}

	if err := s.repo.Participant.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrParticipantEmailExists
		}
		s.logger.Error("更新参与者失败", zap.String("participant_id", string(id)), zap.Error(err))
		return nil, pkgerrors.Store(err)
	}

	return toParticipantResponse(p), nil
}

// ────────────────────── Delete ──────────────────────

func (s *participantService) Delete(ctx context.Context, id model.ParticipantID) error {
	if _, err := s.repo.Participant.GetByID(ctx, id); err != nil {
		return s.mapLookupError(err, zap.String("participant_id", string(id)))
	}

	if err := s.repo.Participant.Delete(ctx, id); err != nil {
		s.logger.Error("删除参与者失败", zap.String("participant_id", string(id)), zap.Error(err))
		return pkgerrors.Store(err)
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *participantService) mapLookupError(err error, field zap.Field) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrParticipantNotFound
	}
	s.logger.Error("查询参与者失败", field, zap.Error(err))
	return pkgerrors.Store(err)
}

func (s *participantService) ensureEmailFree(ctx context.Context, email string, self model.ParticipantID) error {
	existing, err := s.repo.Participant.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.ParticipantID != self {
			return ErrParticipantEmailExists
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.logger.Error("查询邮箱失败", zap.String("email", email), zap.Error(err))
		return pkgerrors.Store(err)
	}
}

func (s *participantService) ensureQRCodeFree(ctx context.Context, code string) error {
	_, err := s.repo.Participant.GetByQRCode(ctx, code)
	switch {
	case err == nil:
		return ErrQRCodeExists
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	default:
		s.logger.Error("查询二维码失败", zap.String("qr_code", code), zap.Error(err))
		return pkgerrors.Store(err)
	}
}

func toParticipantResponse(p *model.Participant) *dto.ParticipantResponse {
	return &dto.ParticipantResponse{
		ID:        p.ParticipantID,
		FullName:  p.FullName,
		Email:     p.Email,
		Phone:     p.Phone,
		Team:      p.Team,
		QRCode:    p.QRCode,
		CreatedAt: formatTime(p.CreatedAt),
		UpdatedAt: formatTime(p.UpdatedAt),
	}
}
