package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servicehub/servicehub-api/models"
)

func date(value string) time.Time {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{
			name:  "multi-day range is inclusive on both ends",
			start: "2025-06-01",
			end:   "2025-06-03",
			want:  []string{"2025-06-01", "2025-06-02", "2025-06-03"},
		},
		{
			name:  "single day",
			start: "2025-06-01",
			end:   "2025-06-01",
			want:  []string{"2025-06-01"},
		},
		{
			name:  "month boundary",
			start: "2025-06-29",
			end:   "2025-07-02",
			want:  []string{"2025-06-29", "2025-06-30", "2025-07-01", "2025-07-02"},
		},
		{
			name:  "end before start yields nothing",
			start: "2025-06-03",
			end:   "2025-06-01",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(date(tt.start), date(tt.end)))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Run("bare date", func(t *testing.T) {
		got, err := ParseDate("2025-07-10")
		require.NoError(t, err)
		assert.Equal(t, date("2025-07-10"), got)
	})

	t.Run("RFC 3339 timestamp is truncated to its UTC day", func(t *testing.T) {
		got, err := ParseDate("2025-07-10T15:04:05Z")
		require.NoError(t, err)
		assert.Equal(t, date("2025-07-10"), got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseDate("not-a-date")
		assert.Error(t, err)
	})
}

func TestRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"disjoint", "2025-06-01", "2025-06-03", "2025-06-04", "2025-06-06", false},
		{"touching endpoints overlap", "2025-06-01", "2025-06-03", "2025-06-03", "2025-06-06", true},
		{"contained", "2025-06-01", "2025-06-10", "2025-06-04", "2025-06-05", true},
		{"single days equal", "2025-06-01", "2025-06-01", "2025-06-01", "2025-06-01", true},
		{"single days apart", "2025-06-01", "2025-06-01", "2025-06-02", "2025-06-02", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RangesOverlap(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.want, got)
			// Overlap is symmetric
			assert.Equal(t, tt.want, RangesOverlap(date(tt.bStart), date(tt.bEnd), date(tt.aStart), date(tt.aEnd)))
		})
	}
}

func TestExpandDailyOccupancy(t *testing.T) {
	bookings := []models.Booking{
		{DateRange: models.DateRange{Start: date("2025-06-01"), End: date("2025-06-03")}},
		{DateRange: models.DateRange{Start: date("2025-06-10"), End: date("2025-06-10")}},
	}

	assert.Equal(t,
		[]string{"2025-06-01", "2025-06-02", "2025-06-03", "2025-06-10"},
		ExpandDailyOccupancy(bookings))

	assert.Empty(t, ExpandDailyOccupancy(nil))
}
