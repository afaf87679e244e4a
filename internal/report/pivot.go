package report

import (
	"sort"

	"shipvoid-backend/internal/models"
)

// LabelDateCount is the number of containers labelled on one date.
// LabelDate is the rendered YYYY-MM-DD string, "" for containers without one.
type LabelDateCount struct {
	LabelDate string `json:"label_date"`
	Count     int    `json:"count"`
}

// Pivot counts containers per label date, ascending by date
func Pivot(rows []models.ContainerRow) []LabelDateCount {
	counts := make(map[string]int)
	for _, r := range rows {
		counts[r.LabelDate]++
	}

	out := make([]LabelDateCount, 0, len(counts))
	for date, n := range counts {
		out = append(out, LabelDateCount{LabelDate: date, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LabelDate < out[j].LabelDate
	})
	return out
}

// Busiest returns up to n label dates with the most containers, ties by date
func Busiest(pivot []LabelDateCount, n int) []LabelDateCount {
	out := make([]LabelDateCount, len(pivot))
	copy(out, pivot)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
