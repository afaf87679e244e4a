package reconcile

import (
	"sort"

	"shipvoid-backend/internal/models"
)

// Input is one snapshot of both extracts. HistoryFound is false when the
// history extract was absent, in which case History is ignored.
type Input struct {
	Forecast     []models.ForecastRecord
	History      []models.EventHistoryRecord
	HistoryFound bool
}

// Outcome is the reconciled set with its summary and diagnostics
type Outcome struct {
	Containers  []models.ReconciledContainer
	Stats       models.SummaryStats
	Diagnostics models.Diagnostics
}

type joinedRow struct {
	forecast models.ForecastRecord
	event    models.LatestEvent
}

// Run reconciles the forecast against the event history. Every forecast
// container appears exactly once in the output, sorted by container id;
// forecast rows without a usable history match keep empty event fields.
func Run(in Input) Outcome {
	diag := models.Diagnostics{HistoryFound: in.HistoryFound}

	byID := map[string]models.EventHistoryRecord{}
	if in.HistoryFound {
		history := make([]models.EventHistoryRecord, len(in.History))
		copy(history, in.History)
		ReduceEvents(history)

		deduped, dropped := Deduplicate(history)
		diag.DuplicateHistory = dropped
		for _, h := range deduped {
			byID[h.ContainerID] = h
		}
	}

	joined := make([]joinedRow, 0, len(in.Forecast))
	for _, f := range in.Forecast {
		row := joinedRow{forecast: f}
		if h, ok := byID[f.ContainerID]; ok {
			if TimelineMatches(f.LabelDate, h.CreatedDate) {
				row.event = h.Latest
			} else {
				diag.TimelineMismatches++
			}
		}
		joined = append(joined, row)
	}

	containers := group(joined)
	return Outcome{
		Containers:  containers,
		Stats:       Summarize(containers),
		Diagnostics: diag,
	}
}

// group collapses rows sharing a container id. Status always comes from the
// first row, even when blank, so at-risk classification matches the earliest
// forecast line. Other fields take the first non-empty value in input order;
// the event is taken whole from the first row that still carries one.
func group(rows []joinedRow) []models.ReconciledContainer {
	index := make(map[string]int, len(rows))
	var out []models.ReconciledContainer

	for _, r := range rows {
		i, ok := index[r.forecast.ContainerID]
		if !ok {
			index[r.forecast.ContainerID] = len(out)
			out = append(out, models.ReconciledContainer{ForecastRecord: r.forecast, Event: r.event})
			continue
		}
		mergeFirst(&out[i], r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ContainerID < out[j].ContainerID
	})
	return out
}

func mergeFirst(dst *models.ReconciledContainer, r joinedRow) {
	f := r.forecast
	firstString(&dst.Item, f.Item)
	firstString(&dst.ItemDescription, f.ItemDescription)
	firstString(&dst.PO, f.PO)
	firstString(&dst.Store, f.Store)
	firstString(&dst.Div, f.Div)
	firstString(&dst.CartonNumber, f.CartonNumber)
	firstString(&dst.Department, f.Department)
	firstString(&dst.Area, f.Area)
	firstString(&dst.Slot, f.Slot)
	if dst.SourceType == "" {
		dst.SourceType = f.SourceType
	}
	if dst.LabelDate == nil {
		dst.LabelDate = f.LabelDate
	}
	if !dst.Cost.Valid {
		dst.Cost = f.Cost
	}
	if !dst.PackQuantity.Valid {
		dst.PackQuantity = f.PackQuantity
	}
	if dst.Event.IsZero() {
		dst.Event = r.event
	}
}

func firstString(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
