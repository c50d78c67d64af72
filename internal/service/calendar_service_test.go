package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestCalendarService_OrganizerCalendar(t *testing.T) {
	repo, mocks := newMockRepos()
	lookup := NewLookupService(repo, testLogger())
	svc := NewCalendarService(lookup, testLogger())
	assignment := NewAssignmentService(repo, testLogger())
	ctx := context.Background()

	mocks.tasks.add("t1", "入场签到", testNow)
	mocks.tasks.add("t2", "撤场", testNow.AddDate(0, 0, 1))
	_, _ = assignment.Upsert(ctx, "t1", orgIDs("org1"), nil)
	_, _ = assignment.Upsert(ctx, "t2", nil, orgIDs("org1"))

	out, err := svc.OrganizerCalendar(ctx, "org1")
	if err != nil {
		t.Fatalf("OrganizerCalendar 应成功: %v", err)
	}

	if !strings.HasPrefix(out, "BEGIN:VCALENDAR") {
		t.Errorf("输出不是 iCalendar 文档: %q", out[:min(len(out), 40)])
	}
	if n := strings.Count(out, "BEGIN:VEVENT"); n != 2 {
		t.Errorf("期望 2 个 VEVENT，实际=%d", n)
	}
	for _, want := range []string{"SUMMARY:入场签到", "LOCATION:主会场", "CATEGORIES:supervisor", "CATEGORIES:organizer", "UID:t1@event-ops"} {
		if !strings.Contains(out, want) {
			t.Errorf("输出缺少 %q", want)
		}
	}
}

func TestCalendarService_NoTasks(t *testing.T) {
	repo, _ := newMockRepos()
	svc := NewCalendarService(NewLookupService(repo, testLogger()), testLogger())

	_, err := svc.OrganizerCalendar(context.Background(), "org1")
	if !errors.Is(err, ErrNoTasksAssigned) {
		t.Errorf("期望 ErrNoTasksAssigned，实际: %v", err)
	}
}
