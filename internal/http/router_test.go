package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shipvoid-backend/internal/auth"
	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/discovery"
	"shipvoid-backend/internal/handlers"
	"shipvoid-backend/internal/health"
	"shipvoid-backend/internal/middleware"
	"shipvoid-backend/internal/services"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, secret string) (*mux.Router, *auth.JWTManager) {
	t.Helper()
	cfg := &config.Config{DCs: config.DefaultDCs()}
	cfg.Sources = config.SourcesConfig{DC: "6006", ShipvoidPath: "/share", ShipvoidPattern: "Shipvoid*.xlsm", LegacyPattern: "Legacy*.csv"}
	cfg.Auth.JWTSecret = secret
	cfg.Auth.ExpirationHours = 1

	loader := services.NewLoadService(services.NewSourceSettings(cfg), discovery.NewFinder(afero.NewMemMapFs()), nil, nil, "/downloads")
	dashboard := services.NewDashboardService(loader, time.Minute, nil)
	jwtManager := auth.NewJWTManager(cfg)

	r := NewRouter(
		handlers.NewDashboardHandler(dashboard, nil),
		handlers.NewAuthHandler(jwtManager),
		handlers.NewHealthHandler(health.NewHealthChecker(health.Options{})),
		func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) },
		middleware.NewAuthMiddleware(jwtManager),
	)
	return r, jwtManager
}

func serve(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_PublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t, "secret")

	assert.Equal(t, http.StatusOK, serve(r, "GET", "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/metrics", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/api/data", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/api/config", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(r, "GET", "/api/dcs", "", "").Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, "GET", "/api/runs", "", "").Code)
	assert.Equal(t, http.StatusTeapot, serve(r, "GET", "/ws", "", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, "GET", "/api/nope", "", "").Code)
}

func TestRouter_AdminRoutesNeedToken(t *testing.T) {
	r, jwtManager := newTestRouter(t, "secret")

	rec := serve(r, "POST", "/api/change-dc", `{"dc_code":"6040"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := jwtManager.GenerateToken()
	require.NoError(t, err)
	rec = serve(r, "POST", "/api/change-dc", `{"dc_code":"6040"}`, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(r, "POST", "/api/config", `{"source_path":"/x"}`, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminRoutesOpenWithoutSecret(t *testing.T) {
	r, _ := newTestRouter(t, "")
	rec := serve(r, "POST", "/api/config", `{"source_path":"/x"}`, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
