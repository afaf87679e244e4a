package models

import (
	"shipvoid-backend/internal/timeutil"

	"github.com/shopspring/decimal"
)

// ReconciledContainer is the single output row for one container: the
// representative forecast fields plus the validated latest event, which is
// zero when there was no history match or the match was invalidated.
type ReconciledContainer struct {
	ForecastRecord
	Event LatestEvent
}

// ContainerRow is the flat, string-only form of a reconciled container used
// by the dashboard and the exports. Nulls render as "".
type ContainerRow struct {
	ContainerID       string `json:"container_id"`
	Item              string `json:"item"`
	ItemDescription   string `json:"item_description"`
	PO                string `json:"po"`
	ShipvoidStatus    string `json:"shipvoid_status"`
	LabelDate         string `json:"label_date"`
	Store             string `json:"store"`
	Div               string `json:"div"`
	CartonNumber      string `json:"carton_number"`
	WhseDept          string `json:"whse_dept"`
	Area              string `json:"area"`
	Slot              string `json:"slot"`
	SourceType        string `json:"source_type"`
	LatestEventTS     string `json:"latest_event_ts"`
	LatestEventStatus string `json:"latest_event_status"`
	LatestEventName   string `json:"latest_event_name"`
	AtlasLocation     string `json:"atlas_location"`
	Cost              string `json:"cost"`
	WhpkQty           string `json:"whpk_qty"`
}

// Row renders the container in the external reporting format
func (c ReconciledContainer) Row() ContainerRow {
	return ContainerRow{
		ContainerID:       c.ContainerID,
		Item:              c.Item,
		ItemDescription:   c.ItemDescription,
		PO:                c.PO,
		ShipvoidStatus:    c.Status,
		LabelDate:         timeutil.FormatDate(c.LabelDate),
		Store:             c.Store,
		Div:               c.Div,
		CartonNumber:      c.CartonNumber,
		WhseDept:          c.Department,
		Area:              c.Area,
		Slot:              c.Slot,
		SourceType:        string(c.SourceType),
		LatestEventTS:     timeutil.FormatDateTime(c.Event.Timestamp),
		LatestEventStatus: c.Event.Status,
		LatestEventName:   c.Event.EventType,
		AtlasLocation:     c.Event.Location,
		Cost:              formatNullDecimal(c.Cost),
		WhpkQty:           formatNullDecimal(c.PackQuantity),
	}
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// Rows renders every container in order
func Rows(containers []ReconciledContainer) []ContainerRow {
	rows := make([]ContainerRow, 0, len(containers))
	for _, c := range containers {
		rows = append(rows, c.Row())
	}
	return rows
}
