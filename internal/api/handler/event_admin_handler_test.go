package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"event-ops/backend/internal/dto"
	"event-ops/backend/internal/model"
	"event-ops/backend/internal/service"
)

const (
	testEventID = "3c4d5e6f-7a8b-4c9d-8e0f-1a2b3c4d5e6f"
	testAdminID = "9e8d7c6b-5a4f-4e3d-9c2b-1a0f9e8d7c6b"
)

// ── Mock EventService ──

type mockEventService struct {
	result *dto.EventResponse
	list   []dto.EventResponse
	err    error
	called bool
}

func (m *mockEventService) Create(_ context.Context, _ *dto.CreateEventRequest) (*dto.EventResponse, error) {
	m.called = true
	return m.result, m.err
}
func (m *mockEventService) GetByID(_ context.Context, _ model.EventID) (*dto.EventResponse, error) {
	m.called = true
	return m.result, m.err
}
func (m *mockEventService) List(_ context.Context) ([]dto.EventResponse, error) {
	m.called = true
	return m.list, m.err
}
func (m *mockEventService) Update(_ context.Context, _ model.EventID, _ *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	m.called = true
	return m.result, m.err
}
func (m *mockEventService) Delete(_ context.Context, _ model.EventID) error {
	m.called = true
	return m.err
}

// ── Mock AdminService ──

type mockAdminService struct {
	result *dto.AdminResponse
	list   []dto.AdminResponse
	err    error
	search *dto.AdminSearchRequest
	called bool
}

func (m *mockAdminService) Create(_ context.Context, _ *dto.CreateAdminRequest) (*dto.AdminResponse, error) {
	m.called = true
	return m.result, m.err
}
func (m *mockAdminService) GetByID(_ context.Context, _ model.AdminID) (*dto.AdminResponse, error) {
	m.called = true
	return m.result, m.err
}
func (m *mockAdminService) List(_ context.Context) ([]dto.AdminResponse, error) {
	m.called = true
	return m.list, m.err
}
func (m *mockAdminService) Search(_ context.Context, req *dto.AdminSearchRequest) ([]dto.AdminResponse, error) {
	m.called = true
	m.search = req
	return m.list, m.err
}
func (m *mockAdminService) Update(_ context.Context, _ model.AdminID, _ *dto.UpdateAdminRequest) (*dto.AdminResponse, error) {
	m.called = true
	return m.result, m.err
}
func (m *mockAdminService) Delete(_ context.Context, _ model.AdminID) error {
	m.called = true
	return m.err
}

// ═══════════════════════════════════════════════════════════
// EventHandler Tests
// ═══════════════════════════════════════════════════════════

func TestEventHandler_Create_Success(t *testing.T) {
	mock := &mockEventService{result: &dto.EventResponse{ID: testEventID, NumDays: 2}}
	h := NewEventHandler(mock)

	body := `{"num_days":2,"map_url":"https://example.com/map.png","days":["2025-02-22T00:00:00Z","2025-02-23T00:00:00Z"]}`
	w := serve("POST", "/events", "/events", strings.NewReader(body), h.CreateEvent)

	expectStatus(t, w, http.StatusCreated, 0)
}

func TestEventHandler_Create_InvalidBody(t *testing.T) {
	cases := map[string]string{
		"missing_days":   `{"num_days":1}`,
		"zero_num_days":  `{"num_days":0,"days":["2025-02-22T00:00:00Z"]}`,
		"bad_map_url":    `{"num_days":1,"map_url":"not a url","days":["2025-02-22T00:00:00Z"]}`,
		"bad_day_format": `{"num_days":1,"days":["22/02/2025"]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			mock := &mockEventService{}
			h := NewEventHandler(mock)

			w := serve("POST", "/events", "/events", strings.NewReader(body), h.CreateEvent)

			expectStatus(t, w, http.StatusBadRequest, codeParamInvalid)
			if mock.called {
				t.Error("参数非法时不应调用 Service")
			}
		})
	}
}

func TestEventHandler_Update_DaysMismatch(t *testing.T) {
	mock := &mockEventService{err: service.ErrEventDaysMismatch}
	h := NewEventHandler(mock)

	w := serve("PUT", "/events/:id", "/events/"+testEventID, strings.NewReader(`{"num_days":3}`), h.UpdateEvent)

	expectStatus(t, w, http.StatusBadRequest, 26002)
}

func TestEventHandler_Get_InvalidID(t *testing.T) {
	mock := &mockEventService{}
	h := NewEventHandler(mock)

	w := serve("GET", "/events/:id", "/events/42", nil, h.GetEvent)

	expectStatus(t, w, http.StatusBadRequest, codeInvalidIdentifier)
	if mock.called {
		t.Error("非法标识符不应触达 Service")
	}
}

func TestEventHandler_List_Empty(t *testing.T) {
	mock := &mockEventService{err: service.ErrEventNotFound}
	h := NewEventHandler(mock)

	w := serve("GET", "/events", "/events", nil, h.ListEvents)

	expectStatus(t, w, http.StatusNotFound, 26001)
}

// ═══════════════════════════════════════════════════════════
// AdminHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAdminHandler_Create_EmailExists(t *testing.T) {
	mock := &mockAdminService{err: service.ErrAdminEmailExists}
	h := NewAdminHandler(mock)

	w := serve("POST", "/admins", "/admins", jsonBody(dto.CreateAdminRequest{
		FullName: "Ada", Department: "it", Phone: "123",
		Email: "ada@example.com", Password: "secret1",
	}), h.CreateAdmin)

	expectStatus(t, w, http.StatusConflict, 27002)
}

func TestAdminHandler_Search_PassesQuery(t *testing.T) {
	mock := &mockAdminService{list: []dto.AdminResponse{{ID: testAdminID, FullName: "Ada"}}}
	h := NewAdminHandler(mock)

	w := serve("GET", "/admins/search", "/admins/search?full_name=ad&email=example", nil, h.SearchAdmins)

	expectStatus(t, w, http.StatusOK, 0)
	if mock.search == nil || mock.search.FullName != "ad" || mock.search.Email != "example" {
		t.Errorf("查询参数未透传: %+v", mock.search)
	}
}

func TestAdminHandler_Search_MissingCriteria(t *testing.T) {
	mock := &mockAdminService{err: service.ErrAdminSearchCriteria}
	h := NewAdminHandler(mock)

	w := serve("GET", "/admins/search", "/admins/search", nil, h.SearchAdmins)

	expectStatus(t, w, http.StatusBadRequest, 27003)
}

func TestAdminHandler_Delete_NotFound(t *testing.T) {
	mock := &mockAdminService{err: service.ErrAdminNotFound}
	h := NewAdminHandler(mock)

	w := serve("DELETE", "/admins/:id", "/admins/"+testAdminID, nil, h.DeleteAdmin)

	expectStatus(t, w, http.StatusNotFound, 27001)
}

func TestAdminHandler_Update_InvalidID(t *testing.T) {
	mock := &mockAdminService{}
	h := NewAdminHandler(mock)

	w := serve("PUT", "/admins/:id", "/admins/abc", strings.NewReader(`{}`), h.UpdateAdmin)

	expectStatus(t, w, http.StatusBadRequest, codeInvalidIdentifier)
	if mock.called {
		t.Error("非法标识符不应触达 Service")
	}
}
