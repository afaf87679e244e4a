package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NotAvailable is rendered when a summary value has no data behind it
const NotAvailable = "N/A"

// LegacyNotFound is shown in place of the history file name in degraded mode
const LegacyNotFound = "Not found (optional)"

// Money fields go over the wire as JSON numbers, not quoted strings
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// SummaryStats aggregates the reconciled containers
type SummaryStats struct {
	Total         int             `json:"total"`
	InHouse       int             `json:"inhouse"`
	CrossDock     int             `json:"crossdock"`
	OldestDate    string          `json:"oldest_date"`
	AtRiskCount   int             `json:"at_risk_count"`
	PotentialCost decimal.Decimal `json:"potential_cost"`
	ShipvoidFile  string          `json:"shipvoid_file,omitempty"`
	LegacyFile    string          `json:"legacy_file,omitempty"`
}

// EmptyStats is the summary of an empty or failed run
func EmptyStats() SummaryStats {
	return SummaryStats{OldestDate: NotAvailable, PotentialCost: decimal.Zero}
}

// Diagnostics are the non-fatal conditions observed during a run
type Diagnostics struct {
	TimelineMismatches int      `json:"timeline_mismatches"`
	HistoryFound       bool     `json:"history_found"`
	DuplicateHistory   int      `json:"duplicate_history_rows"`
	ParseWarnings      int      `json:"parse_warnings"`
	Warnings           []string `json:"warnings,omitempty"`
}

// SourceFiles are the extract paths a run read from
type SourceFiles struct {
	Shipvoid string `json:"shipvoid"`
	Legacy   string `json:"legacy"`
}

// LoadResult is one complete, immutable reconciliation result as served to
// readers. A failed run has empty Data, EmptyStats and Error set.
type LoadResult struct {
	RunID       string         `json:"run_id"`
	DC          string         `json:"dc"`
	Data        []ContainerRow `json:"data"`
	Stats       SummaryStats   `json:"stats"`
	Files       SourceFiles    `json:"files"`
	Diagnostics Diagnostics    `json:"diagnostics"`
	Error       string         `json:"error,omitempty"`
	LoadTime    time.Time      `json:"load_time"`
}

// FailedResult builds the result returned when a run aborts
func FailedResult(runID string, err error, loadTime time.Time) *LoadResult {
	return &LoadResult{
		RunID:    runID,
		Data:     []ContainerRow{},
		Stats:    EmptyStats(),
		Error:    err.Error(),
		LoadTime: loadTime,
	}
}
