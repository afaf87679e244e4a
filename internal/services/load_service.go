package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/discovery"
	"shipvoid-backend/internal/logging"
	"shipvoid-backend/internal/metrics"
	"shipvoid-backend/internal/models"
	"shipvoid-backend/internal/parsers"
	"shipvoid-backend/internal/reconcile"
	"shipvoid-backend/internal/timeutil"

	"github.com/google/uuid"
)

// maxWarningSamples caps the parse warnings copied into a result
const maxWarningSamples = 20

// RunStore persists run summaries
type RunStore interface {
	Create(ctx context.Context, run *models.ReconciliationRun) error
}

// RemoteSyncer fetches the newest remote copy of an extract
type RemoteSyncer interface {
	Sync(ctx context.Context, dir string, patterns ...string) (string, error)
}

// LoadOptions override the configured sources. ShipvoidPath is kept for
// later runs; LegacyPath applies to this run only.
type LoadOptions struct {
	ShipvoidPath string
	LegacyPath   string
}

// LoadService finds, parses and reconciles the two extracts
type LoadService struct {
	Settings    *SourceSettings
	Finder      *discovery.Finder
	Remote      RemoteSyncer
	Runs        RunStore
	DownloadDir string
}

// NewLoadService wires a loader. remote and runs may be nil.
func NewLoadService(settings *SourceSettings, finder *discovery.Finder, remote RemoteSyncer, runs RunStore, downloadDir string) *LoadService {
	return &LoadService{
		Settings:    settings,
		Finder:      finder,
		Remote:      remote,
		Runs:        runs,
		DownloadDir: downloadDir,
	}
}

// Load runs a reconciliation and never fails: a fatal error is reported in
// the Error field of an otherwise empty result.
func (s *LoadService) Load(ctx context.Context, opts LoadOptions) *models.LoadResult {
	result, _ := s.Run(ctx, opts)
	return result
}

// Run runs a reconciliation. On a fatal error it returns the empty failed
// result together with the error.
func (s *LoadService) Run(ctx context.Context, opts LoadOptions) (*models.LoadResult, error) {
	log := logging.Component("Loader")
	start := time.Now()
	runID := uuid.NewString()

	if opts.ShipvoidPath != "" {
		s.Settings.SetShipvoidPath(opts.ShipvoidPath)
	}
	src := s.Settings.Snapshot()
	if opts.LegacyPath != "" {
		src.LegacyPath = opts.LegacyPath
	}

	result, err := s.execute(ctx, runID, src)
	if err != nil {
		log.WithField("run_id", runID).Errorf("Error loading data: %v", err)
		result = models.FailedResult(runID, err, timeutil.Now())
		metrics.LoadsTotal.WithLabelValues("error").Inc()
	} else {
		log.WithField("run_id", runID).Infof("Data loaded successfully: %d containers", len(result.Data))
		metrics.LoadsTotal.WithLabelValues("ok").Inc()
		recordResultMetrics(result)
	}

	result.DC = src.DC

	duration := time.Since(start)
	metrics.LoadDuration.Observe(duration.Seconds())
	s.recordRun(ctx, src.DC, result, duration)
	return result, err
}

func (s *LoadService) execute(ctx context.Context, runID string, src config.SourcesConfig) (*models.LoadResult, error) {
	log := logging.Component("Loader").WithField("run_id", runID)
	var warnings []string

	shipvoidDir, legacyDir := src.ShipvoidPath, src.LegacyPath
	if s.Remote != nil {
		if local, err := s.Remote.Sync(ctx, s.DownloadDir, src.ShipvoidPatterns()...); err != nil {
			warnings = append(warnings, fmt.Sprintf("remote forecast sync failed: %v", err))
		} else if local != "" {
			shipvoidDir = local
		}
		if local, err := s.Remote.Sync(ctx, s.DownloadDir, src.LegacyPattern); err != nil {
			warnings = append(warnings, fmt.Sprintf("remote history sync failed: %v", err))
		} else if local != "" {
			legacyDir = local
		}
	}
	if legacyDir == "" {
		legacyDir = "."
	}

	shipvoidFile, err := s.Finder.FindFirst(shipvoidDir, src.ShipvoidPatterns()...)
	if err != nil {
		return nil, err
	}
	if shipvoidFile == "" {
		return nil, &reconcile.SourceNotFoundError{Kind: "Shipvoid", Dir: shipvoidDir, Patterns: src.ShipvoidPatterns()}
	}
	legacyFile, err := s.Finder.NewestFile(legacyDir, src.LegacyPattern)
	if err != nil {
		return nil, err
	}
	log.Infof("Using forecast %s", filepath.Base(shipvoidFile))

	forecast, err := parsers.LoadForecast(s.Finder.Fs(), shipvoidFile)
	if err != nil {
		return nil, err
	}
	for _, sheet := range forecast.MissingSheets {
		warnings = append(warnings, fmt.Sprintf("sheet %q not found in %s", sheet, filepath.Base(shipvoidFile)))
	}
	parseWarnings := forecast.Warnings

	in := reconcile.Input{Forecast: forecast.Records}
	if legacyFile != "" {
		log.Infof("Using history %s", filepath.Base(legacyFile))
		history, err := parsers.LoadHistory(s.Finder.Fs(), legacyFile)
		if err != nil {
			return nil, err
		}
		in.History = history.Records
		in.HistoryFound = true
		parseWarnings = append(parseWarnings, history.Warnings...)
	} else {
		log.Info("No history file found, showing forecast data only")
		warnings = append(warnings, fmt.Sprintf("no history file matching %q in %s", src.LegacyPattern, legacyDir))
	}

	out := reconcile.Run(in)
	if out.Diagnostics.TimelineMismatches > 0 {
		log.Infof("Timeline validation: %d mismatched records (clearing history match)", out.Diagnostics.TimelineMismatches)
	}
	if len(parseWarnings) > 0 {
		log.Warnf("%d values could not be parsed and were treated as empty", len(parseWarnings))
	}

	diag := out.Diagnostics
	diag.ParseWarnings = len(parseWarnings)
	for i, w := range parseWarnings {
		if i == maxWarningSamples {
			break
		}
		warnings = append(warnings, w.String())
	}
	diag.Warnings = warnings

	stats := out.Stats
	stats.ShipvoidFile = filepath.Base(shipvoidFile)
	stats.LegacyFile = models.LegacyNotFound
	if legacyFile != "" {
		stats.LegacyFile = filepath.Base(legacyFile)
	}

	return &models.LoadResult{
		RunID:       runID,
		Data:        models.Rows(out.Containers),
		Stats:       stats,
		Files:       models.SourceFiles{Shipvoid: shipvoidFile, Legacy: legacyFile},
		Diagnostics: diag,
		LoadTime:    timeutil.Now(),
	}, nil
}

func (s *LoadService) recordRun(ctx context.Context, dc string, result *models.LoadResult, duration time.Duration) {
	if s.Runs == nil {
		return
	}
	run := models.NewReconciliationRun(dc, result, duration)
	if err := s.Runs.Create(ctx, run); err != nil {
		logging.Component("Loader").Warnf("Failed to record run %s: %v", run.ID, err)
	}
}

func recordResultMetrics(r *models.LoadResult) {
	metrics.ContainersTotal.WithLabelValues(string(models.SourceInHouse)).Set(float64(r.Stats.InHouse))
	metrics.ContainersTotal.WithLabelValues(string(models.SourceCrossDock)).Set(float64(r.Stats.CrossDock))
	metrics.AtRiskContainers.Set(float64(r.Stats.AtRiskCount))
	cost, _ := r.Stats.PotentialCost.Float64()
	metrics.PotentialCost.Set(cost)
	metrics.TimelineMismatches.Set(float64(r.Diagnostics.TimelineMismatches))
	metrics.ParseWarnings.Set(float64(r.Diagnostics.ParseWarnings))
	metrics.LastSuccessTimestamp.Set(float64(r.LoadTime.Unix()))
}
