package reconcile

import (
	"strings"
	"time"

	"shipvoid-backend/internal/models"
	"shipvoid-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// Statuses of containers that are already billed or closed out
var settledStatuses = map[string]struct{}{
	"VF":                 {},
	"BILLED OR INACTIVE": {},
}

// IsAtRisk reports whether a forecast status still carries exposure
func IsAtRisk(status string) bool {
	_, settled := settledStatuses[strings.ToUpper(strings.TrimSpace(status))]
	return !settled
}

// Summarize computes the summary block. Missing costs count as zero.
func Summarize(containers []models.ReconciledContainer) models.SummaryStats {
	stats := models.EmptyStats()
	stats.Total = len(containers)

	var oldest *time.Time
	cost := decimal.Zero
	for _, c := range containers {
		switch c.SourceType {
		case models.SourceInHouse:
			stats.InHouse++
		case models.SourceCrossDock:
			stats.CrossDock++
		}

		if c.LabelDate != nil && (oldest == nil || c.LabelDate.Before(*oldest)) {
			oldest = c.LabelDate
		}

		if IsAtRisk(c.Status) {
			stats.AtRiskCount++
			if c.Cost.Valid {
				cost = cost.Add(c.Cost.Decimal)
			}
		}
	}

	if oldest != nil {
		stats.OldestDate = timeutil.FormatDate(oldest)
	}
	stats.PotentialCost = cost
	return stats
}
