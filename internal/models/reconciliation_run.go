package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationRun is the persisted summary of one load
type ReconciliationRun struct {
	ID                 string          `json:"id"`
	DC                 string          `json:"dc"`
	ShipvoidFile       string          `json:"shipvoid_file"`
	LegacyFile         string          `json:"legacy_file"`
	Total              int             `json:"total"`
	InHouse            int             `json:"inhouse"`
	CrossDock          int             `json:"crossdock"`
	AtRiskCount        int             `json:"at_risk_count"`
	PotentialCost      decimal.Decimal `json:"potential_cost"`
	TimelineMismatches int             `json:"timeline_mismatches"`
	HistoryFound       bool            `json:"history_found"`
	Error              string          `json:"error"`
	LoadTime           time.Time       `json:"load_time"`
	DurationMs         int64           `json:"duration_ms"`
}

// NewReconciliationRun summarizes a load result for the run history
func NewReconciliationRun(dc string, r *LoadResult, duration time.Duration) *ReconciliationRun {
	return &ReconciliationRun{
		ID:                 r.RunID,
		DC:                 dc,
		ShipvoidFile:       r.Files.Shipvoid,
		LegacyFile:         r.Files.Legacy,
		Total:              r.Stats.Total,
		InHouse:            r.Stats.InHouse,
		CrossDock:          r.Stats.CrossDock,
		AtRiskCount:        r.Stats.AtRiskCount,
		PotentialCost:      r.Stats.PotentialCost,
		TimelineMismatches: r.Diagnostics.TimelineMismatches,
		HistoryFound:       r.Diagnostics.HistoryFound,
		Error:              r.Error,
		LoadTime:           r.LoadTime,
		DurationMs:         duration.Milliseconds(),
	}
}
