package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"shipvoid-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResult() *models.LoadResult {
	return &models.LoadResult{
		RunID: "run-1",
		Data: []models.ContainerRow{
			{ContainerID: "0010200345", LabelDate: "2026-01-05", ShipvoidStatus: "OPEN", Cost: "12.50"},
			{ContainerID: "0010200346", LabelDate: "2026-01-03", ShipvoidStatus: "VF"},
			{ContainerID: "0010200347", LabelDate: "2026-01-05", ItemDescription: "Widget, large"},
			{ContainerID: "0010200348"},
		},
		Stats: models.SummaryStats{
			Total:         4,
			InHouse:       3,
			CrossDock:     1,
			OldestDate:    "2026-01-03",
			AtRiskCount:   3,
			PotentialCost: decimal.RequireFromString("12.5"),
			ShipvoidFile:  "Shipvoid_01-06-2026_0800.xlsm",
			LegacyFile:    models.LegacyNotFound,
		},
		LoadTime: time.Date(2026, 1, 6, 8, 15, 0, 0, time.UTC),
	}
}

func TestPivot(t *testing.T) {
	got := Pivot(sampleResult().Data)
	assert.Equal(t, []LabelDateCount{
		{LabelDate: "", Count: 1},
		{LabelDate: "2026-01-03", Count: 1},
		{LabelDate: "2026-01-05", Count: 2},
	}, got)
}

func TestPivot_Empty(t *testing.T) {
	assert.Empty(t, Pivot(nil))
}

func TestBusiest(t *testing.T) {
	pivot := Pivot(sampleResult().Data)
	top := Busiest(pivot, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "2026-01-05", top[0].LabelDate)
	// stable: equal counts keep ascending date order
	assert.Equal(t, "", top[1].LabelDate)
	// input untouched
	assert.Equal(t, "", pivot[0].LabelDate)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleResult().Data))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, "0010200345", records[1][0])
	assert.Equal(t, "12.50", records[1][17])
	assert.Equal(t, "Widget, large", records[3][2])
	assert.Equal(t, "", records[4][5])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ContainersSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ContainersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "0010200345", rows[1][0])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Total Containers", "4"}, summary[0])
	assert.Contains(t, summary, []string{"Potential Cost", "12.50"})
	assert.Contains(t, summary, []string{"Legacy File", models.LegacyNotFound})
}

func TestWriteXLSX_FailedRun(t *testing.T) {
	r := models.FailedResult("run-2", assert.AnError, time.Now())
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, r))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ContainersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Contains(t, summary, []string{"Error", assert.AnError.Error()})
}

func TestSummaryPDF(t *testing.T) {
	out, err := SummaryPDF(sampleResult())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
