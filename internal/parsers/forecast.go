package parsers

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"shipvoid-backend/internal/models"
	"shipvoid-backend/internal/reconcile"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// ForecastSheet ties a workbook sheet to the source type of its rows
type ForecastSheet struct {
	Name       string
	SourceType models.SourceType
}

// ForecastSheets are read in this order
var ForecastSheets = []ForecastSheet{
	{Name: "Inhouse Data", SourceType: models.SourceInHouse},
	{Name: "Crossdock Data", SourceType: models.SourceCrossDock},
}

// Forecast column names. Department may also appear as Whse Dept.
const (
	colItem            = "Item Number"
	colItemDescription = "Item Description"
	colPO              = "PO Number"
	colStatus          = "Status"
	colLabelDate       = "Label Date"
	colDepartment      = "Department"
	colDepartmentAlias = "Whse Dept"
	colArea            = "Area"
	colSlot            = "Slot"
	colCost            = "Whpk Cost"
	colPackQuantity    = "Whpk"
)

// ForecastResult holds the rows of every sheet that could be read
type ForecastResult struct {
	Records       []models.ForecastRecord
	Warnings      []reconcile.ParseWarning
	MissingSheets []string
}

// LoadForecast opens and parses a forecast workbook
func LoadForecast(fs afero.Fs, path string) (*ForecastResult, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open forecast workbook: %w", err)
	}
	defer f.Close()

	return ParseForecast(f, filepath.Base(path))
}

// ParseForecast reads the in-house and cross-dock sheets of a workbook.
// A missing sheet is skipped; a workbook with neither sheet, or a present
// sheet without identity columns, is a SchemaError.
func ParseForecast(r io.Reader, source string) (*ForecastResult, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file %s: %w", source, err)
	}
	defer wb.Close()

	present := make(map[string]bool)
	for _, name := range wb.GetSheetList() {
		present[name] = true
	}

	result := &ForecastResult{}
	loaded := 0
	for _, sheet := range ForecastSheets {
		if !present[sheet.Name] {
			result.MissingSheets = append(result.MissingSheets, sheet.Name)
			continue
		}

		rows, err := wb.GetRows(sheet.Name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("unable to read sheet %q: %w", sheet.Name, err)
		}
		if err := parseForecastSheet(result, source, sheet, rows); err != nil {
			return nil, err
		}
		loaded++
	}

	if loaded == 0 {
		names := make([]string, 0, len(ForecastSheets))
		for _, s := range ForecastSheets {
			names = append(names, "sheet "+s.Name)
		}
		return nil, &reconcile.SchemaError{Source: source, Missing: names}
	}
	return result, nil
}

func parseForecastSheet(result *ForecastResult, source string, sheet ForecastSheet, rows [][]string) error {
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}

	identity, err := reconcile.NewIdentityResolver(source, sheet.Name, header)
	if err != nil {
		return err
	}

	idx := reconcile.HeaderIndex(header)
	if _, ok := idx[colDepartment]; !ok {
		if alias, ok := idx[colDepartmentAlias]; ok {
			idx[colDepartment] = alias
		}
	}
	get := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for n, row := range rows[1:] {
		line := n + 2
		if blankRow(row) {
			continue
		}

		warn := func(field, value string) {
			result.Warnings = append(result.Warnings, reconcile.ParseWarning{
				Source: source + ":" + sheet.Name, Row: line, Field: field, Value: value,
			})
		}

		id := identity.Resolve(row)
		if id == "" {
			warn("container id", "")
			continue
		}

		rec := models.ForecastRecord{
			ContainerID:     id,
			Item:            get(row, colItem),
			ItemDescription: get(row, colItemDescription),
			PO:              get(row, colPO),
			Status:          strings.ToUpper(get(row, colStatus)),
			Store:           get(row, reconcile.ColumnStore),
			Div:             get(row, reconcile.ColumnDiv),
			CartonNumber:    get(row, reconcile.ColumnCartonNumber),
			Department:      get(row, colDepartment),
			Area:            get(row, colArea),
			Slot:            get(row, colSlot),
			SourceType:      sheet.SourceType,
		}

		raw := get(row, colLabelDate)
		labelDate, ok := ParseDate(raw)
		if !ok {
			warn(colLabelDate, raw)
		}
		rec.LabelDate = labelDate

		raw = get(row, colCost)
		if rec.Cost, ok = ParseDecimal(raw); !ok {
			warn(colCost, raw)
		}
		raw = get(row, colPackQuantity)
		if rec.PackQuantity, ok = ParseDecimal(raw); !ok {
			warn(colPackQuantity, raw)
		}

		result.Records = append(result.Records, rec)
	}
	return nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
