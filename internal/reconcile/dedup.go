package reconcile

import (
	"sort"

	"shipvoid-backend/internal/models"
)

// Deduplicate keeps one history record per container: the one with the most
// recent latest event. Records are stably sorted newest first (records with
// no event last) and the first per container wins, so equal timestamps keep
// input order. It returns the survivors and the number of rows dropped.
// Latest must already be populated.
func Deduplicate(records []models.EventHistoryRecord) ([]models.EventHistoryRecord, int) {
	sorted := make([]models.EventHistoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Latest.Timestamp, sorted[j].Latest.Timestamp
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	seen := make(map[string]struct{}, len(sorted))
	out := sorted[:0]
	for _, r := range sorted {
		if _, ok := seen[r.ContainerID]; ok {
			continue
		}
		seen[r.ContainerID] = struct{}{}
		out = append(out, r)
	}
	return out, len(records) - len(out)
}
