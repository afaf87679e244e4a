package http

import (
	"net/http"

	"shipvoid-backend/internal/handlers"
	"shipvoid-backend/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	dashboardHandler *handlers.DashboardHandler,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	ws http.HandlerFunc,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.APILogging)

	// Probes and scraping
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/ws", ws).Methods("GET")

	// Public dashboard API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/data", dashboardHandler.GetData).Methods("GET")
	api.HandleFunc("/refresh", dashboardHandler.Refresh).Methods("POST")
	api.HandleFunc("/pivot", dashboardHandler.GetPivot).Methods("GET")
	api.HandleFunc("/export/{format}", dashboardHandler.Export).Methods("GET")
	api.HandleFunc("/config", dashboardHandler.GetConfig).Methods("GET")
	api.HandleFunc("/dcs", dashboardHandler.GetDCs).Methods("GET")
	api.HandleFunc("/runs", dashboardHandler.ListRuns).Methods("GET")

	// Admin API - changes where every later load reads from
	requireAdmin := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.RequireAdmin(h)
	}
	api.Handle("/config", requireAdmin(dashboardHandler.SetConfig)).Methods("POST")
	api.Handle("/change-dc", requireAdmin(dashboardHandler.ChangeDC)).Methods("POST")

	return r
}
