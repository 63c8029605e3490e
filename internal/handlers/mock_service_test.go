package handlers

import (
	"context"
	"time"

	"geiger_console/internal/models"
	"geiger_console/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDashboard struct {
	view service.DashboardView
}

func (m *mockDashboard) Current() service.DashboardView { return m.view }

type mockEditor struct {
	view    service.FormView
	openErr error
	saveErr error
	editErr error
	toggErr error
	open    bool
	lease   models.HeartbeatLease

	openCalls  int
	closeCalls int
	saveCalls  int
	resetCalls int
	lastEdit   map[string]any
	lastToggle string
}

func (m *mockEditor) Open(ctx context.Context) (service.FormView, error) {
	m.openCalls++
	return m.view, m.openErr
}
func (m *mockEditor) Close() { m.closeCalls++ }
func (m *mockEditor) Save(ctx context.Context) (service.FormView, error) {
	m.saveCalls++
	return m.view, m.saveErr
}
func (m *mockEditor) Edit(changes map[string]any) (service.FormView, error) {
	m.lastEdit = changes
	return m.view, m.editErr
}
func (m *mockEditor) ToggleSection(id string) (service.FormView, error) {
	m.lastToggle = id
	return m.view, m.toggErr
}
func (m *mockEditor) Reset() service.FormView {
	m.resetCalls++
	return m.view
}
func (m *mockEditor) View() service.FormView { return m.view }
func (m *mockEditor) IsOpen() bool { return m.open }
func (m *mockEditor) Lease() models.HeartbeatLease { return m.lease }

type mockDevice struct {
	version string
}

func (m *mockDevice) Version(ctx context.Context) string { return m.version }

type mockEventLog struct {
	resp      []models.ConsoleEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastLimit int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ConsoleEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastLimit = f.Limit
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
