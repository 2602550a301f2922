package controllers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSelectedDateSingleDay(t *testing.T) {
	start, end, err := parseSelectedDate(json.RawMessage(`"2025-06-10"`), false)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, start, end)
}

func TestParseSelectedDateLongTerm(t *testing.T) {
	start, end, err := parseSelectedDate(json.RawMessage(`["2025-06-10", "2025-06-12"]`), true)

	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), end)
}

func TestParseSelectedDateErrors(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		isLongTerm bool
	}{
		{"empty input", "", false},
		{"reversed pair", `["2025-06-12", "2025-06-10"]`, true},
		{"pair for short job", `["2025-06-10", "2025-06-12"]`, false},
		{"single date for long term", `"2025-06-10"`, true},
		{"pair with one element", `["2025-06-10"]`, true},
		{"garbage date", `"not-a-date"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseSelectedDate(json.RawMessage(tt.raw), tt.isLongTerm)
			assert.Error(t, err)
		})
	}
}
