package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"shipvoid-backend/internal/models"
	"shipvoid-backend/internal/reconcile"

	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	colContainerID = "container_id"
	colCreateDate  = "container_create_date"
)

// HistoryResult holds the parsed event history rows
type HistoryResult struct {
	Records  []models.EventHistoryRecord
	Warnings []reconcile.ParseWarning
	Slots    int
}

type slotColumns struct {
	ts, status, eventType, location int
}

// LoadHistory opens and parses an event history CSV
func LoadHistory(fs afero.Fs, path string) (*HistoryResult, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	return ParseHistory(f, filepath.Base(path))
}

// ParseHistory reads the event history extract. Only container_id is
// required; an event slot is read when both its event_ts_N and status_N
// columns exist.
func ParseHistory(r io.Reader, source string) (*HistoryResult, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &reconcile.SchemaError{Source: source, Missing: []string{colContainerID}}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history header: %w", err)
	}

	idx := reconcile.HeaderIndex(header)
	idCol, ok := idx[colContainerID]
	if !ok {
		return nil, &reconcile.SchemaError{Source: source, Missing: []string{colContainerID}}
	}
	createCol, hasCreate := idx[colCreateDate]

	column := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}
	var slots [models.EventSlotCount]*slotColumns
	result := &HistoryResult{}
	for n := 1; n <= models.EventSlotCount; n++ {
		ts, status := column(fmt.Sprintf("event_ts_%d", n)), column(fmt.Sprintf("status_%d", n))
		if ts < 0 || status < 0 {
			continue
		}
		slots[n-1] = &slotColumns{
			ts:        ts,
			status:    status,
			eventType: column(fmt.Sprintf("event_type_%d", n)),
			location:  column(fmt.Sprintf("location_id_%d", n)),
		}
		result.Slots++
	}

	line := 1
	for {
		line++
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read history line %d: %w", line, err)
		}

		warn := func(field, value string) {
			result.Warnings = append(result.Warnings, reconcile.ParseWarning{Source: source, Row: line, Field: field, Value: value})
		}

		id := field(rec, idCol)
		if id == "" {
			if !blankRow(rec) {
				warn(colContainerID, "")
			}
			continue
		}

		h := models.EventHistoryRecord{ContainerID: id}
		if hasCreate {
			raw := field(rec, createCol)
			created, ok := ParseDate(raw)
			if !ok {
				warn(colCreateDate, raw)
			}
			h.CreatedDate = created
		}

		for i, cols := range slots {
			if cols == nil {
				continue
			}
			raw := field(rec, cols.ts)
			ts, ok := ParseTimestamp(raw)
			if !ok {
				warn(fmt.Sprintf("event_ts_%d", i+1), raw)
			}
			h.Slots[i] = models.EventSlot{
				Timestamp: ts,
				Status:    field(rec, cols.status),
				EventType: field(rec, cols.eventType),
				Location:  field(rec, cols.location),
			}
		}

		result.Records = append(result.Records, h)
	}
	return result, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	v := strings.TrimSpace(rec[i])
	if isNullToken(v) {
		return ""
	}
	return v
}
