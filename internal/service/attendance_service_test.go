package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	pkgerrors "event-ops/backend/pkg/errors"
)

func setupTestAttendanceService() (AttendanceService, *mockRepos, *mockNotifier) {
	repo, mocks := newMockRepos()
	notifier := &mockNotifier{}
	svc := NewAttendanceService(repo, notifier, testLogger()).(*attendanceService)
	svc.now = func() time.Time { return testNow }
	return svc, mocks, notifier
}

// ── 状态切换 ──

func TestAttendanceService_ScanToggle(t *testing.T) {
	svc, _, _ := setupTestAttendanceService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec, err := svc.MarkScanned(ctx, "t1", "p1")
		if err != nil {
			t.Fatalf("MarkScanned 第 %d 次应成功: %v", i+1, err)
		}
		if rec.Total != 1 {
			t.Errorf("重复扫码不应产生重复元素，实际 Total=%d", rec.Total)
		}
	}

	status, err := svc.GetStatus(ctx, "t1", "p1")
	if err != nil {
		t.Fatalf("GetStatus 应成功: %v", err)
	}
	if status.Status != model.ScanStatusScanned || !status.Scanned {
		t.Errorf("期望 scanned，实际=%+v", status)
	}

	if _, err := svc.MarkUnscanned(ctx, "t1", "p1"); err != nil {
		t.Fatalf("MarkUnscanned 应成功: %v", err)
	}
	status, _ = svc.GetStatus(ctx, "t1", "p1")
	if status.Status != model.ScanStatusUnscanned {
		t.Errorf("期望 unscanned，实际=%s", status.Status)
	}
}

func TestAttendanceService_MarkUnscanned_NeverScannedIsNoop(t *testing.T) {
	svc, mocks, notifier := setupTestAttendanceService()

	rec, err := svc.MarkUnscanned(context.Background(), "t1", "p1")
	if err != nil {
		t.Fatalf("从未扫码时取消应为空操作: %v", err)
	}
	if rec.Total != 0 || rec.ParticipantIDs == nil {
		t.Errorf("期望返回空集合，实际=%+v", rec)
	}
	if len(mocks.events.events) != 0 || len(notifier.calls) != 0 {
		t.Error("空操作不应记录事件或推送")
	}
}

func TestAttendanceService_GetStatus_UnknownTask(t *testing.T) {
	svc, _, _ := setupTestAttendanceService()

	status, err := svc.GetStatus(context.Background(), "t404", "p1")
	if err != nil {
		t.Fatalf("GetStatus 应成功: %v", err)
	}
	if status.Scanned {
		t.Error("未扫码任务的参与者应为 unscanned")
	}
}

// ── 二维码扫码 ──

func TestAttendanceService_ScanByQR(t *testing.T) {
	svc, mocks, _ := setupTestAttendanceService()
	ctx := context.Background()
	mocks.participants.add("p1", "Alice")
	mocks.participants.participants["p1"].QRCode = "BADGE-1"

	rec, err := svc.ScanByQR(ctx, "t1", "BADGE-1")
	if err != nil {
		t.Fatalf("ScanByQR 应成功: %v", err)
	}
	if len(rec.ParticipantIDs) != 1 || rec.ParticipantIDs[0] != "p1" {
		t.Errorf("期望 p1 被标记，实际=%v", rec.ParticipantIDs)
	}

	if _, err := svc.ScanByQR(ctx, "t1", "UNKNOWN"); !errors.Is(err, ErrParticipantNotFound) {
		t.Errorf("期望 ErrParticipantNotFound，实际: %v", err)
	}
}

// ── 事件日志与推送 ──

func TestAttendanceService_RecordsEventsAndNotifies(t *testing.T) {
	svc, _, notifier := setupTestAttendanceService()
	ctx := context.Background()

	_, _ = svc.MarkScanned(ctx, "t1", "p1")
	_, _ = svc.MarkUnscanned(ctx, "t1", "p1")

	history, err := svc.ListScanHistory(ctx, "t1")
	if err != nil {
		t.Fatalf("ListScanHistory 应成功: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("期望 2 条事件，实际=%d", len(history))
	}
	if history[0].Action != model.ScanStatusScanned || history[1].Action != model.ScanStatusUnscanned {
		t.Errorf("事件顺序错误: %+v", history)
	}
	if !history[0].OccurredAt.Equal(testNow) {
		t.Errorf("期望事件时间取自时钟，实际=%v", history[0].OccurredAt)
	}

	if len(notifier.calls) != 2 {
		t.Fatalf("期望推送 2 次，实际=%d", len(notifier.calls))
	}
	evt, ok := notifier.calls[0].payload.(dto.ScanEventResponse)
	if !ok {
		t.Fatalf("推送负载类型错误: %T", notifier.calls[0].payload)
	}
	if evt.ParticipantID != "p1" || notifier.calls[0].taskID != "t1" {
		t.Errorf("推送内容错误: %+v", evt)
	}
}

func TestAttendanceService_NoEventWithoutTransition(t *testing.T) {
	svc, mocks, notifier := setupTestAttendanceService()
	ctx := context.Background()

	_, _ = svc.MarkScanned(ctx, "t1", "p1")
	// 重复扫码与取消不在集合中的参与者都不是状态变化
	_, _ = svc.MarkScanned(ctx, "t1", "p1")
	rec, err := svc.MarkUnscanned(ctx, "t1", "p2")
	if err != nil {
		t.Fatalf("MarkUnscanned 应成功: %v", err)
	}
	if rec.Total != 1 {
		t.Errorf("集合不应变化，实际 Total=%d", rec.Total)
	}

	if len(mocks.events.events) != 1 {
		t.Errorf("只应记录 1 条事件，实际=%d", len(mocks.events.events))
	}
	if len(notifier.calls) != 1 {
		t.Errorf("只应推送 1 次，实际=%d", len(notifier.calls))
	}
}

func TestAttendanceService_EventLogFailureIsBestEffort(t *testing.T) {
	svc, mocks, notifier := setupTestAttendanceService()
	mocks.events.err = errors.New("disk full")

	if _, err := svc.MarkScanned(context.Background(), "t1", "p1"); err != nil {
		t.Errorf("事件日志失败不应影响扫码结果: %v", err)
	}
	if len(notifier.calls) != 1 {
		t.Error("事件日志失败时仍应推送")
	}
}

func TestAttendanceService_StoreFailure(t *testing.T) {
	svc, mocks, _ := setupTestAttendanceService()
	mocks.scans.err = errors.New("connection refused")

	_, err := svc.MarkScanned(context.Background(), "t1", "p1")
	if !errors.Is(err, pkgerrors.ErrUpstreamStore) {
		t.Errorf("期望 ErrUpstreamStore，实际: %v", err)
	}
}

func TestAttendanceService_NilNotifier(t *testing.T) {
	repo, _ := newMockRepos()
	svc := NewAttendanceService(repo, nil, testLogger())

	if _, err := svc.MarkScanned(context.Background(), "t1", "p1"); err != nil {
		t.Errorf("未配置推送时扫码应成功: %v", err)
	}
}
