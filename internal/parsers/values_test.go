package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-10 14:00:00", "2024-01-10 14:00:00"},
		{"2024-01-10T14:00:00", "2024-01-10 14:00:00"},
		{"2024-01-10 14:00:00.123456", "2024-01-10 14:00:00"},
		{"1/10/2024 2:05 PM", "2024-01-10 14:05:00"},
		{"01/10/2024 14:05:09", "2024-01-10 14:05:09"},
		{"2024-01-10", "2024-01-10 00:00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTimestamp(tt.in)
			require.True(t, ok)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Format("2006-01-02 15:04:05"))
		})
	}

	got, ok := ParseTimestamp("  ")
	assert.True(t, ok)
	assert.Nil(t, got)

	got, ok = ParseTimestamp("NaT")
	assert.True(t, ok)
	assert.Nil(t, got)

	got, ok = ParseTimestamp("yesterday")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("45301")
	require.True(t, ok)
	assert.Equal(t, "2024-01-10", got.Format("2006-01-02"))

	got, ok = ParseDate("45301.75")
	require.True(t, ok)
	assert.Equal(t, "2024-01-10 00:00:00", got.Format("2006-01-02 15:04:05"))

	got, ok = ParseDate("2024-01-10 23:59:59")
	require.True(t, ok)
	assert.Equal(t, 0, got.Hour())

	_, ok = ParseDate("-4")
	assert.False(t, ok)

	got, ok = ParseDate("nan")
	assert.True(t, ok)
	assert.Nil(t, got)
}

func TestParseDecimal(t *testing.T) {
	d, ok := ParseDecimal("$1,234.50")
	require.True(t, ok)
	assert.Equal(t, "1234.5", d.Decimal.String())

	d, ok = ParseDecimal("")
	assert.True(t, ok)
	assert.False(t, d.Valid)

	d, ok = ParseDecimal("twelve")
	assert.False(t, ok)
	assert.False(t, d.Valid)
}
