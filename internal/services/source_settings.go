package services

import (
	"sync"
	"time"

	"shipvoid-backend/internal/config"
)

// SourceSettings is the runtime-editable copy of the source configuration.
// The dashboard can point it at another folder or DC while the server runs.
type SourceSettings struct {
	mu      sync.RWMutex
	cfg     *config.Config
	sources config.SourcesConfig
}

// NewSourceSettings starts from the loaded configuration
func NewSourceSettings(cfg *config.Config) *SourceSettings {
	s := &SourceSettings{cfg: cfg, sources: cfg.Sources}
	s.sources.ShipvoidFallbackPatterns = append([]string(nil), cfg.Sources.ShipvoidFallbackPatterns...)
	return s
}

// Snapshot returns a copy that later changes do not affect
func (s *SourceSettings) Snapshot() config.SourcesConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.sources
	snap.ShipvoidFallbackPatterns = append([]string(nil), s.sources.ShipvoidFallbackPatterns...)
	return snap
}

func (s *SourceSettings) SetShipvoidPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources.ShipvoidPath = path
}

func (s *SourceSettings) SetLegacyPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources.LegacyPath = path
}

// SetDC switches the current DC and points the forecast path at its folder
// for the month containing at. It returns the new path.
func (s *SourceSettings) SetDC(code string, at time.Time) (string, error) {
	path, err := s.cfg.DCPath(code, at)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sources.DC = code
	s.sources.ShipvoidPath = path
	return path, nil
}

// AvailableDCs lists the configured DCs
func (s *SourceSettings) AvailableDCs() []config.DCInfo {
	return s.cfg.AvailableDCs()
}
