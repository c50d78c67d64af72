package service

import (
	"context"
	"errors"
	"testing"

	"event-ops/backend/internal/dto"
)

func setupTestParticipantService() (ParticipantService, *mockRepos) {
	repo, mocks := newMockRepos()
	return NewParticipantService(repo, testLogger()), mocks
}

func validParticipantRequest() *dto.CreateParticipantRequest {
	return &dto.CreateParticipantRequest{
		FullName: "王五",
		Email:    "wangwu@example.com",
		Phone:    "13900000000",
	}
}

func TestParticipantService_Create_QRDefaultsToID(t *testing.T) {
	svc, _ := setupTestParticipantService()

	result, err := svc.Create(context.Background(), validParticipantRequest())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.ID == "" {
		t.Fatal("期望生成参与者 ID")
	}
	if result.QRCode != string(result.ID) {
		t.Errorf("期望二维码默认等于 ID，实际 qr=%s id=%s", result.QRCode, result.ID)
	}
}

func TestParticipantService_Create_ExplicitQR(t *testing.T) {
	svc, _ := setupTestParticipantService()
	ctx := context.Background()

	req := validParticipantRequest()
	req.QRCode = "BADGE-0001"
	result, err := svc.Create(ctx, req)
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.QRCode != "BADGE-0001" {
		t.Errorf("期望使用指定二维码，实际=%s", result.QRCode)
	}

	got, err := svc.GetByQRCode(ctx, "BADGE-0001")
	if err != nil {
		t.Fatalf("GetByQRCode 应成功: %v", err)
	}
	if got.ID != result.ID {
		t.Errorf("二维码解析到错误的参与者: %s", got.ID)
	}

	dup := validParticipantRequest()
	dup.Email = "other@example.com"
	dup.QRCode = "BADGE-0001"
	if _, err := svc.Create(ctx, dup); !errors.Is(err, ErrQRCodeExists) {
		t.Errorf("期望 ErrQRCodeExists，实际: %v", err)
	}
}

func TestParticipantService_Create_DuplicateEmail(t *testing.T) {
	svc, _ := setupTestParticipantService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validParticipantRequest()); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if _, err := svc.Create(ctx, validParticipantRequest()); !errors.Is(err, ErrParticipantEmailExists) {
		t.Errorf("期望 ErrParticipantEmailExists，实际: %v", err)
	}
}

func TestParticipantService_List_EmptyIsNotFound(t *testing.T) {
	svc, _ := setupTestParticipantService()

	_, err := svc.List(context.Background())
	if !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("期望 ErrParticipantNotFound，实际: %v", err)
	}
}

func TestParticipantService_UpdateDelete(t *testing.T) {
	svc, mocks := setupTestParticipantService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, validParticipantRequest())
	team := "蓝队"
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateParticipantRequest{Team: &team})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if updated.Team == nil || *updated.Team != "蓝队" {
		t.Errorf("期望 Team=蓝队，实际=%v", updated.Team)
	}
	if updated.QRCode != created.QRCode {
		t.Error("更新不应改变二维码")
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(mocks.participants.participants) != 0 {
		t.Error("参与者应已删除")
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("期望 ErrParticipantNotFound，实际: %v", err)
	}
}
