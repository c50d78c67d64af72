package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"event-ops/backend/internal/model"
	"event-ops/backend/internal/repository"
)

// ── 测试用仓储集合 ──

type mockRepos struct {
	organizers   *mockOrganizerRepo
	participants *mockParticipantRepo
	tasks        *mockTaskRepo
	assignments  *mockAssignmentRepo
	scans        *mockScanRecordRepo
	events       *mockScanEventRepo
	eventDefs    *mockEventRepo
	admins       *mockAdminRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		organizers:   newMockOrganizerRepo(),
		participants: newMockParticipantRepo(),
		tasks:        newMockTaskRepo(),
		assignments:  newMockAssignmentRepo(),
		scans:        newMockScanRecordRepo(),
		events:       &mockScanEventRepo{},
		eventDefs:    &mockEventRepo{events: make(map[model.EventID]*model.Event)},
		admins:       &mockAdminRepo{admins: make(map[model.AdminID]*model.Admin)},
	}
	repo := &repository.Repository{
		Organizer:   m.organizers,
		Participant: m.participants,
		Task:        m.tasks,
		Assignment:  m.assignments,
		ScanRecord:  m.scans,
		ScanEvent:   m.events,
		Event:       m.eventDefs,
		Admin:       m.admins,
	}
	return repo, m
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

// ── Mock OrganizerRepository ──

type mockOrganizerRepo struct {
	orgs map[model.OrganizerID]*model.Organizer
	seq  int
}

func newMockOrganizerRepo() *mockOrganizerRepo {
	return &mockOrganizerRepo{orgs: make(map[model.OrganizerID]*model.Organizer)}
}

func (m *mockOrganizerRepo) Create(_ context.Context, org *model.Organizer) error {
	for _, o := range m.orgs {
		if o.Email == org.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if org.OrganizerID == "" {
		m.seq++
		org.OrganizerID = model.OrganizerID(fmt.Sprintf("org-%d", m.seq))
	}
	cp := *org
	m.orgs[org.OrganizerID] = &cp
	return nil
}

func (m *mockOrganizerRepo) GetByID(_ context.Context, id model.OrganizerID) (*model.Organizer, error) {
	if o, ok := m.orgs[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrganizerRepo) GetByEmail(_ context.Context, email string) (*model.Organizer, error) {
	for _, o := range m.orgs {
		if o.Email == email {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockOrganizerRepo) List(_ context.Context) ([]model.Organizer, error) {
	return m.filter(func(*model.Organizer) bool { return true }), nil
}

func (m *mockOrganizerRepo) Search(_ context.Context, f repository.OrganizerFilter) ([]model.Organizer, error) {
	return m.filter(func(o *model.Organizer) bool {
		return (f.FullName == "" || o.FullName == f.FullName) &&
			(f.Status == "" || o.Status == f.Status) &&
			(f.Department == "" || o.Department == f.Department)
	}), nil
}

func (m *mockOrganizerRepo) ListByAbsence(_ context.Context, absent bool) ([]model.Organizer, error) {
	return m.filter(func(o *model.Organizer) bool { return o.IsAbsent == absent }), nil
}

func (m *mockOrganizerRepo) Update(_ context.Context, org *model.Organizer) error {
	cp := *org
	m.orgs[org.OrganizerID] = &cp
	return nil
}

func (m *mockOrganizerRepo) Delete(_ context.Context, id model.OrganizerID) error {
	delete(m.orgs, id)
	return nil
}

func (m *mockOrganizerRepo) filter(keep func(*model.Organizer) bool) []model.Organizer {
	var result []model.Organizer
	for _, o := range m.orgs {
		if keep(o) {
			result = append(result, *o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result
}

// ── Mock ParticipantRepository ──

type mockParticipantRepo struct {
	participants map[model.ParticipantID]*model.Participant
}

func newMockParticipantRepo() *mockParticipantRepo {
	return &mockParticipantRepo{participants: make(map[model.ParticipantID]*model.Participant)}
}

func (m *mockParticipantRepo) add(id model.ParticipantID, name string) {
	m.participants[id] = &model.Participant{
		ParticipantID: id,
		FullName:      name,
		Email:         string(id) + "@example.com",
		Phone:         "13800000000",
		QRCode:        string(id),
	}
}

func (m *mockParticipantRepo) Create(_ context.Context, p *model.Participant) error {
	for _, existing := range m.participants {
		if existing.Email == p.Email || existing.QRCode == p.QRCode {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *p
	m.participants[p.ParticipantID] = &cp
	return nil
}

func (m *mockParticipantRepo) GetByID(_ context.Context, id model.ParticipantID) (*model.Participant, error) {
	if p, ok := m.participants[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) GetByEmail(_ context.Context, email string) (*model.Participant, error) {
	for _, p := range m.participants {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) GetByQRCode(_ context.Context, code string) (*model.Participant, error) {
	for _, p := range m.participants {
		if p.QRCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockParticipantRepo) List(_ context.Context) ([]model.Participant, error) {
	var result []model.Participant
	for _, p := range m.participants {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ParticipantID < result[j].ParticipantID })
	return result, nil
}

func (m *mockParticipantRepo) Update(_ context.Context, p *model.Participant) error {
	cp := *p
	m.participants[p.ParticipantID] = &cp
	return nil
}

func (m *mockParticipantRepo) Delete(_ context.Context, id model.ParticipantID) error {
	delete(m.participants, id)
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[model.TaskID]*model.Task
	seq   int
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[model.TaskID]*model.Task)}
}

func (m *mockTaskRepo) add(id model.TaskID, name string, start time.Time) {
	m.tasks[id] = &model.Task{
		TaskID:    id,
		Name:      name,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Day:       start,
		Location:  "主会场",
	}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskID == "" {
		m.seq++
		task.TaskID = model.TaskID(fmt.Sprintf("task-%d", m.seq))
	}
	cp := *task
	m.tasks[task.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id model.TaskID) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) ListByIDs(_ context.Context, ids []model.TaskID) ([]model.Task, error) {
	want := make(map[model.TaskID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return m.filter(func(t *model.Task) bool { return want[t.TaskID] }), nil
}

func (m *mockTaskRepo) List(_ context.Context) ([]model.Task, error) {
	return m.filter(func(*model.Task) bool { return true }), nil
}

func (m *mockTaskRepo) Search(_ context.Context, f repository.TaskFilter) ([]model.Task, error) {
	return m.filter(func(t *model.Task) bool {
		if f.Name != "" && t.Name != f.Name {
			return false
		}
		if !f.StartFrom.IsZero() && t.StartTime.Before(f.StartFrom) {
			return false
		}
		if !f.EndUntil.IsZero() && t.EndTime.After(f.EndUntil) {
			return false
		}
		if !f.Day.IsZero() {
			y1, m1, d1 := t.Day.Date()
			y2, m2, d2 := f.Day.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				return false
			}
		}
		return true
	}), nil
}

func (m *mockTaskRepo) ListUnfinished(_ context.Context) ([]model.Task, error) {
	return m.filter(func(t *model.Task) bool { return !t.IsComplete }), nil
}

func (m *mockTaskRepo) ListLate(_ context.Context, now time.Time) ([]model.Task, error) {
	return m.filter(func(t *model.Task) bool { return t.IsLate(now) }), nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	cp := *task
	m.tasks[task.TaskID] = &cp
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, id model.TaskID) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskRepo) filter(keep func(*model.Task) bool) []model.Task {
	var result []model.Task
	for _, t := range m.tasks {
		if keep(t) {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	byTask map[model.TaskID]*model.TaskAssignment
	seq    int
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{byTask: make(map[model.TaskID]*model.TaskAssignment)}
}

func (m *mockAssignmentRepo) UpsertByTaskID(_ context.Context, a *model.TaskAssignment) error {
	existing, ok := m.byTask[a.TaskID]
	if !ok {
		m.seq++
		existing = &model.TaskAssignment{
			AssignmentID: model.AssignmentID(fmt.Sprintf("asg-%d", m.seq)),
			TaskID:       a.TaskID,
		}
		m.byTask[a.TaskID] = existing
	}
	existing.OrganizerIDs = model.NewIDList(a.OrganizerIDs...)
	existing.SupervisorIDs = model.NewIDList(a.SupervisorIDs...)
	*a = *existing
	return nil
}

func (m *mockAssignmentRepo) GetByTaskID(_ context.Context, taskID model.TaskID) (*model.TaskAssignment, error) {
	if a, ok := m.byTask[taskID]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByMember(_ context.Context, id model.OrganizerID) ([]model.TaskAssignment, error) {
	var result []model.TaskAssignment
	for _, a := range m.byTask {
		if a.OrganizerIDs.Contains(id) || a.SupervisorIDs.Contains(id) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AssignmentID < result[j].AssignmentID })
	return result, nil
}

func (m *mockAssignmentRepo) DeleteByTaskID(_ context.Context, taskID model.TaskID) error {
	delete(m.byTask, taskID)
	return nil
}

// ── Mock ScanRecordRepository ──

type mockScanRecordRepo struct {
	records   map[model.TaskID]*model.ScanRecord
	err       error // 非 nil 时所有调用返回该错误
	deleteErr error
}

func newMockScanRecordRepo() *mockScanRecordRepo {
	return &mockScanRecordRepo{records: make(map[model.TaskID]*model.ScanRecord)}
}

func (m *mockScanRecordRepo) AddParticipant(_ context.Context, taskID model.TaskID, pid model.ParticipantID) (*model.ScanRecord, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	rec, ok := m.records[taskID]
	if !ok {
		rec = &model.ScanRecord{TaskID: taskID, ParticipantIDs: model.NewIDList[model.ParticipantID]()}
		m.records[taskID] = rec
	}
	changed := !rec.ParticipantIDs.Contains(pid)
	if changed {
		rec.ParticipantIDs = append(rec.ParticipantIDs, pid)
	}
	cp := *rec
	cp.ParticipantIDs = model.NewIDList(rec.ParticipantIDs...)
	return &cp, changed, nil
}

func (m *mockScanRecordRepo) RemoveParticipant(_ context.Context, taskID model.TaskID, pid model.ParticipantID) (*model.ScanRecord, bool, error) {
	if m.err != nil {
		return nil, false, m.err
	}
	rec, ok := m.records[taskID]
	if !ok {
		return nil, false, gorm.ErrRecordNotFound
	}
	changed := rec.ParticipantIDs.Contains(pid)
	kept := model.NewIDList[model.ParticipantID]()
	for _, id := range rec.ParticipantIDs {
		if id != pid {
			kept = append(kept, id)
		}
	}
	rec.ParticipantIDs = kept
	cp := *rec
	cp.ParticipantIDs = model.NewIDList(rec.ParticipantIDs...)
	return &cp, changed, nil
}

func (m *mockScanRecordRepo) GetByTaskID(_ context.Context, taskID model.TaskID) (*model.ScanRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if rec, ok := m.records[taskID]; ok {
		cp := *rec
		cp.ParticipantIDs = model.NewIDList(rec.ParticipantIDs...)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScanRecordRepo) DeleteByTaskID(_ context.Context, taskID model.TaskID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.records, taskID)
	return nil
}

// ── Mock ScanEventRepository ──

type mockScanEventRepo struct {
	events []model.ScanEvent
	err    error
}

func (m *mockScanEventRepo) Append(_ context.Context, event *model.ScanEvent) error {
	if m.err != nil {
		return m.err
	}
	event.ScanEventID = model.ScanEventID(fmt.Sprintf("evt-%d", len(m.events)+1))
	m.events = append(m.events, *event)
	return nil
}

func (m *mockScanEventRepo) ListByTask(_ context.Context, taskID model.TaskID) ([]model.ScanEvent, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.ScanEvent
	for _, e := range m.events {
		if e.TaskID == taskID {
			result = append(result, e)
		}
	}
	return result, nil
}

// ── Mock ScanNotifier ──

type broadcastCall struct {
	taskID  model.TaskID
	payload interface{}
}

type mockNotifier struct {
	mu    sync.Mutex
	calls []broadcastCall
}

func (n *mockNotifier) Broadcast(taskID model.TaskID, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, broadcastCall{taskID: taskID, payload: payload})
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[model.EventID]*model.Event
	seq    int
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	m.seq++
	event.EventID = model.EventID(fmt.Sprintf("event-%d", m.seq))
	cp := *event
	m.events[event.EventID] = &cp
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id model.EventID) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) List(_ context.Context) ([]model.Event, error) {
	var result []model.Event
	for _, e := range m.events {
		result = append(result, *e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].EventID < result[j].EventID })
	return result, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	cp := *event
	m.events[event.EventID] = &cp
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id model.EventID) error {
	delete(m.events, id)
	return nil
}

// ── Mock AdminRepository ──

type mockAdminRepo struct {
	admins map[model.AdminID]*model.Admin
	seq    int
}

func (m *mockAdminRepo) Create(_ context.Context, admin *model.Admin) error {
	for _, a := range m.admins {
		if a.Email == admin.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.seq++
	admin.AdminID = model.AdminID(fmt.Sprintf("admin-%d", m.seq))
	cp := *admin
	m.admins[admin.AdminID] = &cp
	return nil
}

func (m *mockAdminRepo) GetByID(_ context.Context, id model.AdminID) (*model.Admin, error) {
	if a, ok := m.admins[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*model.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAdminRepo) List(_ context.Context) ([]model.Admin, error) {
	return m.filter(func(*model.Admin) bool { return true }), nil
}

func (m *mockAdminRepo) Search(_ context.Context, f repository.AdminFilter) ([]model.Admin, error) {
	contains := func(s, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	}
	return m.filter(func(a *model.Admin) bool {
		return contains(a.FullName, f.FullName) && contains(a.Email, f.Email)
	}), nil
}

func (m *mockAdminRepo) Update(_ context.Context, admin *model.Admin) error {
	cp := *admin
	m.admins[admin.AdminID] = &cp
	return nil
}

func (m *mockAdminRepo) Delete(_ context.Context, id model.AdminID) error {
	delete(m.admins, id)
	return nil
}

func (m *mockAdminRepo) filter(keep func(*model.Admin) bool) []model.Admin {
	var result []model.Admin
	for _, a := range m.admins {
		if keep(a) {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result
}
