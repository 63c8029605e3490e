package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"geiger_console/internal/models"
	"geiger_console/internal/service"
)

func TestLogsHandler_ListAndValidation(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	events := []models.ConsoleEvent{
		{EventID: "e1", OccurredAt: now, Type: models.EventSessionOpened, Description: "opened"},
		{EventID: "e2", OccurredAt: now.Add(1 * time.Second), Type: models.EventConfigSaved, Description: "saved"},
	}
	logs := &mockEventLog{resp: events}
	s := &service.Service{EventLog: logs}

	w := do(t, s, http.MethodGet, "/api/v1/logs/?from=notatime", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'from', got %d", w.Code)
	}

	w = do(t, s, http.MethodGet, "/api/v1/logs/?limit=-3", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid 'limit', got %d", w.Code)
	}

	q := "/api/v1/logs/?from=" + now.Format(time.RFC3339) + "&to=" + now.Add(2*time.Second).Format(time.RFC3339) + "&type=config_saved&limit=10"
	w = do(t, s, http.MethodGet, q, "")
	if w.Code != http.StatusOK {
		t.Fatalf("logs status=%d, body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Count  int                   `json:"count"`
		Events []models.ConsoleEvent `json:"events"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Events) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if logs.lastType != "CONFIG_SAVED" || logs.lastLimit != 10 {
		t.Fatalf("unexpected filter: type=%q limit=%d", logs.lastType, logs.lastLimit)
	}
}

func TestLogsHandler_DateOnlyToIsEndOfDay(t *testing.T) {
	logs := &mockEventLog{}
	w := do(t, &service.Service{EventLog: logs}, http.MethodGet, "/api/v1/logs/?to=2025-08-31", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	want := time.Date(2025, 8, 31, 23, 59, 59, 999999999, time.UTC)
	if !logs.lastTo.Equal(want) {
		t.Fatalf("to = %v, want %v", logs.lastTo, want)
	}
}

func TestLogsHandler_ServiceError(t *testing.T) {
	logs := &mockEventLog{err: errors.New("db down")}
	w := do(t, &service.Service{EventLog: logs}, http.MethodGet, "/api/v1/logs/", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
}
