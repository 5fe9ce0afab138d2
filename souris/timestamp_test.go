package souris

import (
	"testing"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp_RoundTrip(t *testing.T) {
	ts, err := NewTimestamp(2024, 2, 29, 13, 5, 59, 123_456_789)
	require.NoError(t, err)

	buf := ts.ser(nil)
	got, err := deserTimestamp(cursor.New(buf))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
}

func TestTimestamp_NegativeYearRoundTrip(t *testing.T) {
	ts, err := NewTimestamp(-44, 3, 15, 0, 0, 0, 0)
	require.NoError(t, err)

	buf := ts.ser(nil)
	got, err := deserTimestamp(cursor.New(buf))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
	assert.Equal(t, byte(1), ts.yearSignedState())
}

func TestTimestamp_InvalidMonthRejected(t *testing.T) {
	_, err := NewTimestamp(2024, 13, 1, 0, 0, 0, 0)
	assert.Error(t, err)
}

func TestTimestamp_InvalidDayForMonthRejected(t *testing.T) {
	_, err := NewTimestamp(2023, 2, 29, 0, 0, 0, 0) // not a leap year
	assert.Error(t, err)
}

func TestTimestamp_InvalidTimeOfDayRejected(t *testing.T) {
	_, err := NewTimestamp(2024, 1, 1, 24, 0, 0, 0)
	assert.Error(t, err)
}

func TestTimestamp_FromTimeRoundTrip(t *testing.T) {
	ts, err := NewTimestamp(2024, 6, 15, 9, 30, 0, 0)
	require.NoError(t, err)

	back := FromTime(ts.Time())
	assert.True(t, ts.Equal(back))
}
