package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"hit-timetable/config"
	"hit-timetable/internal/api/handler"
	"hit-timetable/internal/service"
	"hit-timetable/pkg/jwt"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-0123456789",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: time.Hour,
		},
		Import: config.ImportConfig{MaxFileSize: 1 << 20, RateLimit: 10, RateWindow: time.Minute},
	}
}

func TestSetup_Routes(t *testing.T) {
	cfg := testConfig()
	h := handler.NewHandler(&service.Service{})
	r := Setup(cfg, h, jwt.NewManager(&cfg.Auth), nil, nil, zap.NewNop())

	want := map[string]bool{
		"POST /api/v1/auth/register":        false,
		"POST /api/v1/auth/login":           false,
		"POST /api/v1/auth/refresh":         false,
		"POST /api/v1/auth/logout":          false,
		"GET /api/v1/auth/me":               false,
		"POST /api/v1/timetables/import":    false,
		"GET /api/v1/timetables/me":         false,
		"DELETE /api/v1/timetables/me":      false,
		"PUT /api/v1/timetables/first-week": false,
		"GET /api/v1/timetables/week-info":  false,
		"GET /api/v1/timetables/courses":    false,
		"GET /api/v1/timetables/today":      false,
		"GET /api/v1/export/excel":          false,
		"GET /api/v1/export/ics":            false,
		"GET /health":                       false,
	}
	for _, route := range r.Routes() {
		key := route.Method + " " + route.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, found := range want {
		if !found {
			t.Errorf("路由未注册: %s", key)
		}
	}
}

func TestSetup_ProtectedRouteRequiresToken(t *testing.T) {
	cfg := testConfig()
	r := Setup(cfg, handler.NewHandler(&service.Service{}), jwt.NewManager(&cfg.Auth), nil, nil, zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/timetables/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际 %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("响应缺少 X-Request-ID")
	}
}

func TestSetup_Health(t *testing.T) {
	cfg := testConfig()
	r := Setup(cfg, handler.NewHandler(&service.Service{}), jwt.NewManager(&cfg.Auth), nil, nil, zap.NewNop())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际 %d", w.Code)
	}
}
