package services

import (
	"context"
	"time"

	"shipvoid-backend/internal/cache"
	"shipvoid-backend/internal/events"
	"shipvoid-backend/internal/logging"
	"shipvoid-backend/internal/models"
)

// Broadcaster receives refresh notifications
type Broadcaster interface {
	Broadcast(ev events.Event)
}

// DashboardService serves the current result and coordinates refreshes and
// DC switches.
type DashboardService struct {
	Loader   *LoadService
	Snapshot *cache.SnapshotStore
	Events   Broadcaster
}

// NewDashboardService builds a dashboard over loader with a snapshot store
// whose first read runs a load with the configured sources.
func NewDashboardService(loader *LoadService, resultTTL time.Duration, events Broadcaster) *DashboardService {
	d := &DashboardService{Loader: loader, Events: events}
	d.Snapshot = cache.NewSnapshotStore(func(ctx context.Context) *models.LoadResult {
		return loader.Load(ctx, LoadOptions{})
	}, resultTTL, func() string {
		return loader.Settings.Snapshot().DC
	})
	return d
}

// Current returns the result served to readers
func (d *DashboardService) Current(ctx context.Context) *models.LoadResult {
	return d.Snapshot.Current(ctx)
}

// Refresh runs a new load, swaps it in and notifies clients
func (d *DashboardService) Refresh(ctx context.Context, opts LoadOptions) *models.LoadResult {
	result := d.Loader.Load(ctx, opts)
	d.Snapshot.Store(ctx, result)
	if d.Events != nil {
		d.Events.Broadcast(events.RefreshedEvent(result))
	}
	return result
}

// ChangeDC points the forecast source at another DC and drops the current
// result; the next read loads from the new location.
func (d *DashboardService) ChangeDC(ctx context.Context, code string) (string, error) {
	path, err := d.Loader.Settings.SetDC(code, time.Now())
	if err != nil {
		return "", err
	}
	d.Snapshot.Invalidate(ctx)
	logging.Component("Dashboard").Infof("Switched to DC %s (%s)", code, path)
	if d.Events != nil {
		d.Events.Broadcast(events.Event{Type: events.TypeInvalidated, LoadTime: time.Now()})
	}
	return path, nil
}

// SetShipvoidPath changes the forecast folder used by later loads
func (d *DashboardService) SetShipvoidPath(path string) {
	d.Loader.Settings.SetShipvoidPath(path)
}
