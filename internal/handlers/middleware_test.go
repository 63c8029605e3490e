package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"geiger_console/internal/logger"
	"geiger_console/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedHandler(s *service.Service) (*Handler, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	return NewHandler(s, nil, log), logs
}

func TestRequestLogger_LevelFollowsStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{"ok", http.StatusOK, zapcore.DebugLevel},
		{"client error", http.StatusNotFound, zapcore.WarnLevel},
		{"server error", http.StatusBadGateway, zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, logs := newObservedHandler(&service.Service{})
			r := gin.New()
			r.Use(h.requestLogger)
			r.GET("/probe", func(c *gin.Context) { c.Status(tc.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

			entries := logs.FilterMessage("http_request").All()
			if len(entries) != 1 {
				t.Fatalf("want 1 log entry, got %d", len(entries))
			}
			e := entries[0]
			if e.Level != tc.wantLevel {
				t.Fatalf("level = %v, want %v", e.Level, tc.wantLevel)
			}
			ctx := e.ContextMap()
			if ctx["method"] != "GET" || ctx["path"] != "/probe" || ctx["status"] != int64(tc.status) {
				t.Fatalf("unexpected fields: %+v", ctx)
			}
		})
	}
}

func TestRequestLogger_NilLoggerIsSafe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{}, nil, nil)
	r := gin.New()
	r.Use(h.requestLogger)
	r.GET("/probe", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
