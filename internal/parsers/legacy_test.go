package parsers

import (
	"errors"
	"strings"
	"testing"

	"shipvoid-backend/internal/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyCSV = "\xEF\xBB\xBFcontainer_id,container_create_date,event_ts_1,status_1,event_type_1,location_id_1,event_ts_2,status_2,event_type_2,location_id_2,event_ts_3\n" +
	" 0010200345 ,2024-01-10 06:30:00,2024-01-09 08:00:00,PICKED,PICK,A1,01/10/2024 2:00 PM,LOADED,LOAD,DOCK3,2024-01-11\n" +
	"C2,,garbage,HOLD,,,,,,,\n" +
	",,,,,,,,,,\n"

func TestParseHistory(t *testing.T) {
	res, err := ParseHistory(strings.NewReader(legacyCSV), "Legacy.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Slots, "slot 3 has no status column")
	require.Len(t, res.Records, 2)

	first := res.Records[0]
	assert.Equal(t, "0010200345", first.ContainerID)
	require.NotNil(t, first.CreatedDate)
	assert.Equal(t, "2024-01-10", first.CreatedDate.Format("2006-01-02"))
	assert.Equal(t, "A1", first.Slots[0].Location)
	require.NotNil(t, first.Slots[1].Timestamp)
	assert.Equal(t, "2024-01-10 14:00:00", first.Slots[1].Timestamp.Format("2006-01-02 15:04:05"))
	assert.Nil(t, first.Slots[2].Timestamp)

	latest := reconcile.LatestOf(first.Slots)
	assert.Equal(t, "LOADED", latest.Status)

	second := res.Records[1]
	assert.Nil(t, second.Slots[0].Timestamp)
	assert.Equal(t, "HOLD", second.Slots[0].Status)
	assert.Nil(t, second.CreatedDate)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, "event_ts_1", res.Warnings[0].Field)
	assert.Equal(t, 3, res.Warnings[0].Row)
}

func TestParseHistory_MissingContainerID(t *testing.T) {
	_, err := ParseHistory(strings.NewReader("id,event_ts_1\n1,2024-01-01\n"), "Legacy.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, reconcile.ErrSchema))
}

func TestParseHistory_Empty(t *testing.T) {
	_, err := ParseHistory(strings.NewReader(""), "Legacy.csv")
	assert.True(t, errors.Is(err, reconcile.ErrSchema))
}
