package health

import (
	"context"
	"fmt"
	"time"

	"shipvoid-backend/internal/models"

	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options select the optional dependencies to check. Nil fields are reported
// as "disabled".
type Options struct {
	DB         Pinger
	Redis      func() bool
	LastResult func() *models.LoadResult
	DiskPath   func() string
}

type HealthChecker struct {
	opts Options
}

type HealthStatus struct {
	Status   string           `json:"status"`
	Database DependencyHealth `json:"database"`
	Redis    DependencyHealth `json:"redis"`
}

type DependencyHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

// DetailedStatus adds the host and the last run to HealthStatus
type DetailedStatus struct {
	HealthStatus
	System  SystemHealth `json:"system"`
	LastRun *RunHealth   `json:"last_run,omitempty"`
}

type SystemHealth struct {
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    string  `json:"memory_used"`
	DiskPath      string  `json:"disk_path"`
	DiskPercent   float64 `json:"disk_percent"`
	DiskFree      string  `json:"disk_free"`
}

type RunHealth struct {
	RunID      string    `json:"run_id"`
	LoadTime   time.Time `json:"load_time"`
	Containers int       `json:"containers"`
	Error      string    `json:"error,omitempty"`
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
	StatusDisabled  = "disabled"
)

func NewHealthChecker(opts Options) *HealthChecker {
	return &HealthChecker{opts: opts}
}

// CheckBasic is the readiness verdict. An unreachable database makes the
// service unhealthy; Redis only degrades it since results still load.
func (h *HealthChecker) CheckBasic() HealthStatus {
	dbHealth := h.checkDatabase()
	redisHealth := h.checkRedis()

	status := StatusHealthy
	switch {
	case dbHealth.Status == StatusUnhealthy:
		status = StatusUnhealthy
	case redisHealth.Status == StatusUnhealthy:
		status = StatusDegraded
	}

	return HealthStatus{
		Status:   status,
		Database: dbHealth,
		Redis:    redisHealth,
	}
}

// CheckDetailed adds memory, disk and last-run information
func (h *HealthChecker) CheckDetailed() DetailedStatus {
	d := DetailedStatus{HealthStatus: h.CheckBasic()}

	if memStats, err := mem.VirtualMemory(); err == nil {
		d.System.MemoryPercent = memStats.UsedPercent
		d.System.MemoryUsed = formatBytes(memStats.Used)
	}

	path := "/"
	if h.opts.DiskPath != nil && h.opts.DiskPath() != "" {
		path = h.opts.DiskPath()
	}
	d.System.DiskPath = path
	if diskStats, err := disk.Usage(path); err == nil {
		d.System.DiskPercent = diskStats.UsedPercent
		d.System.DiskFree = formatBytes(diskStats.Free)
	}

	if h.opts.LastResult != nil {
		if r := h.opts.LastResult(); r != nil {
			d.LastRun = &RunHealth{
				RunID:      r.RunID,
				LoadTime:   r.LoadTime,
				Containers: len(r.Data),
				Error:      r.Error,
			}
		}
	}
	return d
}

func (h *HealthChecker) checkDatabase() DependencyHealth {
	if h.opts.DB == nil {
		return DependencyHealth{Status: StatusDisabled}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.opts.DB.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DependencyHealth{Status: StatusUnhealthy, ResponseTime: responseTime}
	}
	return DependencyHealth{Status: StatusHealthy, ResponseTime: responseTime}
}

func (h *HealthChecker) checkRedis() DependencyHealth {
	if h.opts.Redis == nil {
		return DependencyHealth{Status: StatusDisabled}
	}

	start := time.Now()
	ok := h.opts.Redis()
	responseTime := time.Since(start).Milliseconds()

	if !ok {
		return DependencyHealth{Status: StatusUnhealthy, ResponseTime: responseTime}
	}
	return DependencyHealth{Status: StatusHealthy, ResponseTime: responseTime}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}
