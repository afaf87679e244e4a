package reconcile

import (
	"time"

	"shipvoid-backend/internal/timeutil"
)

// TimelineMatches reports whether a forecast label date agrees with the
// history creation date. Either side missing means nothing can be checked
// and the pair is accepted. Only the calendar date is compared.
func TimelineMatches(labelDate, createdDate *time.Time) bool {
	if labelDate == nil || createdDate == nil {
		return true
	}
	return timeutil.SameDate(*labelDate, *createdDate)
}
