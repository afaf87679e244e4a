package reconcile

import (
	"time"

	"shipvoid-backend/internal/models"

	"github.com/shopspring/decimal"
)

func ts(s string) *time.Time {
	t, err := time.Parse("2006-01-02T15:04", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func day(s string) *time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func cost(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func slots(s ...models.EventSlot) [models.EventSlotCount]models.EventSlot {
	var out [models.EventSlotCount]models.EventSlot
	copy(out[:], s)
	return out
}
