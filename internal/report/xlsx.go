package report

import (
	"fmt"
	"io"

	"shipvoid-backend/internal/models"
	"shipvoid-backend/internal/timeutil"

	"github.com/xuri/excelize/v2"
)

const (
	ContainersSheet = "Containers"
	SummarySheet    = "Summary"
)

// WriteXLSX writes a workbook with the reconciled rows and the run summary
func WriteXLSX(w io.Writer, r *models.LoadResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ContainersSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(ContainersSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range r.Data {
		values := rowValues(row)
		cells := make([]interface{}, len(values))
		for j, v := range values {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ContainersSheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if len(r.Data) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(Columns), len(r.Data)+1)
		if err := f.AutoFilter(ContainersSheet, "A1:"+last, nil); err != nil {
			return fmt.Errorf("autofilter: %w", err)
		}
	}

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("add summary sheet: %w", err)
	}
	for i, kv := range summaryLines(r) {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		pair := []interface{}{kv[0], kv[1]}
		if err := f.SetSheetRow(SummarySheet, cell, &pair); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}

	return f.Write(w)
}

// summaryLines is the label/value list shared by the workbook and the PDF
func summaryLines(r *models.LoadResult) [][2]string {
	s := r.Stats
	lines := [][2]string{
		{"Total Containers", fmt.Sprintf("%d", s.Total)},
		{"In House", fmt.Sprintf("%d", s.InHouse)},
		{"CrossDock", fmt.Sprintf("%d", s.CrossDock)},
		{"Oldest Label Date", s.OldestDate},
		{"At Risk", fmt.Sprintf("%d", s.AtRiskCount)},
		{"Potential Cost", s.PotentialCost.StringFixed(2)},
		{"Shipvoid File", s.ShipvoidFile},
		{"Legacy File", s.LegacyFile},
		{"Timeline Mismatches", fmt.Sprintf("%d", r.Diagnostics.TimelineMismatches)},
		{"Loaded At", r.LoadTime.Format(timeutil.DateTimeLayout)},
	}
	if r.Error != "" {
		lines = append(lines, [2]string{"Error", r.Error})
	}
	return lines
}
