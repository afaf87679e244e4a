package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"shipvoid-backend/internal/models"
)

// Columns is the header of every tabular export, in reporting order
var Columns = []string{
	"container_id", "item", "item_description", "po", "shipvoid_status",
	"label_date", "store", "div", "carton_number", "whse_dept", "area", "slot",
	"source_type", "latest_event_ts", "latest_event_status", "latest_event_name",
	"atlas_location", "cost", "whpk_qty",
}

func rowValues(r models.ContainerRow) []string {
	return []string{
		r.ContainerID, r.Item, r.ItemDescription, r.PO, r.ShipvoidStatus,
		r.LabelDate, r.Store, r.Div, r.CartonNumber, r.WhseDept, r.Area, r.Slot,
		r.SourceType, r.LatestEventTS, r.LatestEventStatus, r.LatestEventName,
		r.AtlasLocation, r.Cost, r.WhpkQty,
	}
}

// WriteCSV writes the reconciled rows with a header line
func WriteCSV(w io.Writer, rows []models.ContainerRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(rowValues(r)); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.ContainerID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
