package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalDay(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   time.Time
		loc  *time.Location
		want time.Time
	}{
		{
			name: "utc midday",
			in:   time.Date(2024, 5, 10, 13, 45, 0, 0, time.UTC),
			loc:  time.UTC,
			want: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "late utc evening is next day in kolkata",
			in:   time.Date(2024, 5, 9, 20, 0, 0, 0, time.UTC),
			loc:  kolkata,
			want: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "nil location falls back to utc",
			in:   time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC),
			loc:  nil,
			want: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanonicalDay(tt.in, tt.loc)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDay(t *testing.T) {
	kolkata, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	day, err := ParseDay("2024-05-10", kolkata)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), day)

	day, err = ParseDay("2024-05-09T20:00:00Z", kolkata)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), day)

	day, err = ParseDay(" 2024-05-10T00:00:00+05:30 ", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), day)

	for _, bad := range []string{"", "10/05/2024", "2024-13-01", "tomorrow"} {
		_, err := ParseDay(bad, time.UTC)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestDayWindow(t *testing.T) {
	start, end := DayWindow(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthWindow(t *testing.T) {
	start, end := MonthWindow(2024, time.December)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)

	start, end = MonthWindow(2024, time.February)
	assert.Equal(t, 29, int(end.Sub(start).Hours()/24))
}

func TestFormatDay(t *testing.T) {
	assert.Equal(t, "2024-05-10", FormatDay(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)))
}
