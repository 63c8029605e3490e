package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"geiger_console/internal/models"
	"geiger_console/internal/service"
)

func TestHealth(t *testing.T) {
	w := do(t, &service.Service{}, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"status":"ok"}` {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestDashboardHandler(t *testing.T) {
	dash := &mockDashboard{view: service.DashboardView{
		Connection: models.ConnectionState{Status: models.Disconnected},
		LastUpdate: "Never",
	}}
	w := do(t, &service.Service{Dashboard: dash}, http.MethodGet, "/api/v1/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var view service.DashboardView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if view.Telemetry != nil || view.LastUpdate != "Never" || view.Connection.Status != models.Disconnected {
		t.Fatalf("unexpected dashboard: %+v", view)
	}
}

func TestVersionHandler(t *testing.T) {
	w := do(t, &service.Service{DeviceInfo: &mockDevice{version: "Unknown"}}, http.MethodGet, "/api/v1/device/version", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"version":"Unknown"}` {
		t.Fatalf("version: %d %s", w.Code, w.Body.String())
	}
}
