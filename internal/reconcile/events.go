package reconcile

import "shipvoid-backend/internal/models"

// LatestOf picks the slot with the greatest timestamp and returns its whole
// tuple. Exact ties keep the lowest slot index. When no slot has a timestamp
// the zero LatestEvent is returned.
func LatestOf(slots [models.EventSlotCount]models.EventSlot) models.LatestEvent {
	winner := -1
	for i, s := range slots {
		if s.Timestamp == nil {
			continue
		}
		if winner < 0 || s.Timestamp.After(*slots[winner].Timestamp) {
			winner = i
		}
	}
	if winner < 0 {
		return models.LatestEvent{}
	}
	s := slots[winner]
	ts := *s.Timestamp
	return models.LatestEvent{
		Timestamp: &ts,
		Status:    s.Status,
		EventType: s.EventType,
		Location:  s.Location,
	}
}

// ReduceEvents fills in Latest for every record
func ReduceEvents(records []models.EventHistoryRecord) {
	for i := range records {
		records[i].Latest = LatestOf(records[i].Slots)
	}
}
