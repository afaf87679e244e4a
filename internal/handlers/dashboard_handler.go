package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shipvoid-backend/internal/models"
	"shipvoid-backend/internal/report"
	"shipvoid-backend/internal/services"
	"shipvoid-backend/internal/timeutil"
	"shipvoid-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// RunLister reads the run history
type RunLister interface {
	ListRecent(ctx context.Context, limit int) ([]models.ReconciliationRun, error)
}

type DashboardHandler struct {
	Service *services.DashboardService
	Runs    RunLister
}

// NewDashboardHandler wires the dashboard routes. runs may be nil when the
// history store is disabled.
func NewDashboardHandler(service *services.DashboardService, runs RunLister) *DashboardHandler {
	return &DashboardHandler{Service: service, Runs: runs}
}

// dashboardRequest is accepted as JSON or as form fields
type dashboardRequest struct {
	SourcePath string `json:"source_path"`
	LegacyPath string `json:"legacy_path"`
	DCCode     string `json:"dc_code"`
}

func readRequest(r *http.Request) (dashboardRequest, error) {
	var req dashboardRequest
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid request body: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form: %w", err)
		}
		req.SourcePath = r.FormValue("source_path")
		req.LegacyPath = r.FormValue("legacy_path")
		req.DCCode = r.FormValue("dc_code")
	}
	req.SourcePath = strings.TrimSpace(req.SourcePath)
	req.LegacyPath = strings.TrimSpace(req.LegacyPath)
	req.DCCode = strings.TrimSpace(req.DCCode)
	return req, nil
}

// GetData handles GET /api/data
func (h *DashboardHandler) GetData(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.Current(r.Context()))
}

// Refresh handles POST /api/refresh
// Body: source_path, legacy_path (both optional)
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	result := h.Service.Refresh(ctx, services.LoadOptions{
		ShipvoidPath: req.SourcePath,
		LegacyPath:   req.LegacyPath,
	})

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"run_id":      result.RunID,
		"stats":       result.Stats,
		"error":       result.Error,
		"load_time":   result.LoadTime,
		"source_path": h.Service.Loader.Settings.Snapshot().ShipvoidPath,
		"diagnostics": result.Diagnostics,
	})
}

// GetPivot handles GET /api/pivot
func (h *DashboardHandler) GetPivot(w http.ResponseWriter, r *http.Request) {
	result := h.Service.Current(r.Context())
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"run_id": result.RunID,
		"pivot":  report.Pivot(result.Data),
	})
}

// Export handles GET /api/export/{format}
// format: csv | xlsx | pdf
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(mux.Vars(r)["format"])
	result := h.Service.Current(r.Context())

	var (
		buf         bytes.Buffer
		contentType string
		err         error
	)
	switch format {
	case "csv":
		contentType = "text/csv"
		err = report.WriteCSV(&buf, result.Data)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = report.WriteXLSX(&buf, result)
	case "pdf":
		contentType = "application/pdf"
		var data []byte
		data, err = report.SummaryPDF(result)
		buf.Write(data)
	default:
		utils.Error(w, http.StatusBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate %s: %v", format, err))
		return
	}

	filename := fmt.Sprintf("shipvoid_%s.%s", result.LoadTime.Format(timeutil.FileStampLayout), format)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// GetConfig handles GET /api/config
func (h *DashboardHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	settings := h.Service.Loader.Settings
	src := settings.Snapshot()
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"source_path":          src.ShipvoidPath,
		"shipvoid_source_path": src.ShipvoidPath,
		"legacy_source_path":   src.LegacyPath,
		"shipvoid_pattern":     src.ShipvoidPattern,
		"legacy_pattern":       src.LegacyPattern,
		"current_dc":           src.DC,
		"available_dcs":        settings.AvailableDCs(),
	})
}

// SetConfig handles POST /api/config
// Body: source_path (required)
func (h *DashboardHandler) SetConfig(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.SourcePath == "" {
		utils.Error(w, http.StatusBadRequest, "source_path is required")
		return
	}

	h.Service.SetShipvoidPath(req.SourcePath)
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok", "source_path": req.SourcePath})
}

// ChangeDC handles POST /api/change-dc
// Body: dc_code (required)
func (h *DashboardHandler) ChangeDC(w http.ResponseWriter, r *http.Request) {
	req, err := readRequest(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.DCCode == "" {
		utils.Error(w, http.StatusBadRequest, "dc_code is required")
		return
	}

	path, err := h.Service.ChangeDC(r.Context(), req.DCCode)
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": err.Error()})
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{
		"status":      "ok",
		"dc_code":     req.DCCode,
		"source_path": path,
		"message":     fmt.Sprintf("Switched to DC %s", req.DCCode),
	})
}

// GetDCs handles GET /api/dcs
func (h *DashboardHandler) GetDCs(w http.ResponseWriter, r *http.Request) {
	settings := h.Service.Loader.Settings
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"current_dc":    settings.Snapshot().DC,
		"available_dcs": settings.AvailableDCs(),
	})
}

// ListRuns handles GET /api/runs?limit=N
func (h *DashboardHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.Runs == nil {
		utils.Error(w, http.StatusServiceUnavailable, "run history is disabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.Error(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if n > 200 {
			n = 200
		}
		limit = n
	}

	runs, err := h.Runs.ListRecent(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to load run history")
		return
	}
	if runs == nil {
		runs = []models.ReconciliationRun{}
	}
	utils.JSON(w, http.StatusOK, runs)
}
