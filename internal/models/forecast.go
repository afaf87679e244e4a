package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType tells which forecast section a carton came from
type SourceType string

const (
	SourceInHouse   SourceType = "In House"
	SourceCrossDock SourceType = "CrossDock"
)

// ForecastRecord is one line item on a carton from the forecast workbook.
// Several records may share a ContainerID when a carton holds more than one item.
type ForecastRecord struct {
	ContainerID     string
	Item            string
	ItemDescription string
	PO              string
	Status          string
	LabelDate       *time.Time
	Store           string
	Div             string
	CartonNumber    string
	Department      string
	Area            string
	Slot            string
	Cost            decimal.NullDecimal
	PackQuantity    decimal.NullDecimal
	SourceType      SourceType
}
