package reconcile

import (
	"testing"

	"shipvoid-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func container(status string, label string, c decimal.NullDecimal, src models.SourceType) models.ReconciledContainer {
	rc := models.ReconciledContainer{}
	rc.Status = status
	rc.Cost = c
	rc.SourceType = src
	if label != "" {
		rc.LabelDate = day(label)
	}
	return rc
}

func TestSummarize(t *testing.T) {
	rows := []models.ReconciledContainer{
		container("DOW", "2024-01-10", cost("12.50"), models.SourceInHouse),
		container(" vf ", "2023-12-31", cost("100"), models.SourceInHouse),
		container("Billed or Inactive", "", cost("200"), models.SourceCrossDock),
		container("PENDING", "2024-02-01", decimal.NullDecimal{}, models.SourceCrossDock),
		container("", "", cost("0.25"), models.SourceCrossDock),
	}

	s := Summarize(rows)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 2, s.InHouse)
	assert.Equal(t, 3, s.CrossDock)
	assert.Equal(t, "2023-12-31", s.OldestDate)
	assert.Equal(t, 3, s.AtRiskCount)
	assert.Equal(t, "12.75", s.PotentialCost.StringFixed(2))
}

func TestSummarize_NoLabelDates(t *testing.T) {
	s := Summarize([]models.ReconciledContainer{container("DOW", "", cost("1"), models.SourceInHouse)})
	assert.Equal(t, "N/A", s.OldestDate)
	assert.True(t, s.PotentialCost.Equal(decimal.NewFromInt(1)))
}

func TestIsAtRisk(t *testing.T) {
	assert.False(t, IsAtRisk("VF"))
	assert.False(t, IsAtRisk("  billed or inactive"))
	assert.True(t, IsAtRisk("BILLED"))
	assert.True(t, IsAtRisk("VFX"))
	assert.True(t, IsAtRisk(""))
}
