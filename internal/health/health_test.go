package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"shipvoid-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pinger struct{ err error }

func (p pinger) Ping(ctx context.Context) error { return p.err }

func TestCheckBasic(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		want  string
		db    string
		redis string
	}{
		{"nothing configured", Options{}, StatusHealthy, StatusDisabled, StatusDisabled},
		{"all up", Options{DB: pinger{}, Redis: func() bool { return true }}, StatusHealthy, StatusHealthy, StatusHealthy},
		{"db down", Options{DB: pinger{err: errors.New("refused")}}, StatusUnhealthy, StatusUnhealthy, StatusDisabled},
		{"redis down", Options{DB: pinger{}, Redis: func() bool { return false }}, StatusDegraded, StatusHealthy, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewHealthChecker(tt.opts).CheckBasic()
			assert.Equal(t, tt.want, s.Status)
			assert.Equal(t, tt.db, s.Database.Status)
			assert.Equal(t, tt.redis, s.Redis.Status)
		})
	}
}

func TestCheckDetailed(t *testing.T) {
	loaded := time.Date(2026, 1, 6, 8, 0, 0, 0, time.UTC)
	h := NewHealthChecker(Options{
		DiskPath: func() string { return t.TempDir() },
		LastResult: func() *models.LoadResult {
			return &models.LoadResult{RunID: "r1", LoadTime: loaded, Data: make([]models.ContainerRow, 3)}
		},
	})

	d := h.CheckDetailed()
	assert.Equal(t, StatusHealthy, d.Status)
	require.NotNil(t, d.LastRun)
	assert.Equal(t, "r1", d.LastRun.RunID)
	assert.Equal(t, 3, d.LastRun.Containers)
	assert.NotEmpty(t, d.System.DiskPath)
}

func TestCheckDetailed_NoRunYet(t *testing.T) {
	h := NewHealthChecker(Options{LastResult: func() *models.LoadResult { return nil }})
	d := h.CheckDetailed()
	assert.Nil(t, d.LastRun)
	assert.Equal(t, "/", d.System.DiskPath)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512.0 MB", formatBytes(512*1024*1024))
	assert.Equal(t, "2.0 GB", formatBytes(2*1024*1024*1024))
}
