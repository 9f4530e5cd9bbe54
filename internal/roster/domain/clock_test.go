package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "09:00", want: 540},
		{in: "22:15", want: 1335},
		{in: "24:00", want: MinutesPerDay},
		{in: "24:01", wantErr: true},
		{in: "9:61", wantErr: true},
		{in: "morning", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			var domainErr *Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, ErrorKindInvalidInput, domainErr.Kind)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:00", FormatClock(540))
	assert.Equal(t, "22:45", FormatClock(1365))
	assert.Equal(t, "00:00", FormatClock(0))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, Date("2025-01-06"), d)

	_, err = ParseDate("2025-13-40")
	require.Error(t, err)

	_, err = ParseDate("06/01/2025")
	require.Error(t, err)
}

func TestDateWeekdayUsesSundayZero(t *testing.T) {
	// 2025-01-05 is a Sunday; Go's time.Weekday counts Sunday as zero,
	// matching the configuration convention.
	d, err := ParseDate("2025-01-05")
	require.NoError(t, err)
	assert.Equal(t, 0, int(d.Weekday()))

	mon, err := ParseDate("2025-01-06")
	require.NoError(t, err)
	assert.Equal(t, 1, int(mon.Weekday()))
}

func TestSortDates(t *testing.T) {
	dates := []Date{"2025-02-01", "2025-01-06", "2025-01-31"}
	sorted := SortDates(dates)
	assert.Equal(t, []Date{"2025-01-06", "2025-01-31", "2025-02-01"}, sorted)
	assert.Equal(t, Date("2025-02-01"), dates[0], "input must stay untouched")
}
