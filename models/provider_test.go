package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundRating(t *testing.T) {
	tests := []struct {
		name  string
		sum   int64
		count int64
		want  float64
	}{
		{"no reviews", 0, 0, 0},
		{"single five", 5, 1, 5.0},
		{"ratings 4, 5, 3 average to 4.0", 12, 3, 4.0},
		{"one decimal rounding down", 13, 3, 4.3}, // 4.333...
		{"one decimal rounding up", 14, 3, 4.7},   // 4.666...
		{"half rounds up", 9, 2, 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundRating(tt.sum, tt.count))
		})
	}
}

func TestProviderAfterFindDerivesRating(t *testing.T) {
	provider := Provider{RatingSum: 12, ReviewCount: 3}
	assert.NoError(t, provider.AfterFind(nil))
	assert.Equal(t, 4.0, provider.Rating)
}

func TestReviewValidate(t *testing.T) {
	tests := []struct {
		name    string
		review  Review
		wantErr bool
	}{
		{"valid", Review{Rating: 5, Comment: "Great work"}, false},
		{"lowest rating", Review{Rating: 1, Comment: "Poor"}, false},
		{"rating too low", Review{Rating: 0, Comment: "x"}, true},
		{"rating too high", Review{Rating: 6, Comment: "x"}, true},
		{"missing comment", Review{Rating: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.review.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStringListContains(t *testing.T) {
	list := StringList{"2025-06-01", "2025-06-02"}
	assert.True(t, list.Contains("2025-06-01"))
	assert.False(t, list.Contains("2025-06-03"))
	assert.False(t, StringList(nil).Contains("anything"))
}
