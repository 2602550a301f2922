package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/models"
)

func bookingAt(clientID uint, status models.BookingStatus, start time.Time) models.Booking {
	return models.Booking{
		UserID: clientID,
		Status: status,
		DateRange: models.DateRange{
			Start: start,
			End:   start,
		},
	}
}

func TestBuildProviderStatsEmpty(t *testing.T) {
	stats := BuildProviderStats(nil, time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, stats.TotalClients)
	assert.Equal(t, 0, stats.CompletionRate)
	assert.Equal(t, "N/A", stats.AvgResponseTime)
	assert.Equal(t, 0, stats.RepeatClients)
	assert.Equal(t, 0, stats.ThisMonthJobs)
	assert.Equal(t, 0, stats.LastMonthJobs)
}

func TestBuildProviderStatsMonthBuckets(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		bookingAt(1, models.StatusCompleted, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
		bookingAt(2, models.StatusConfirmed, time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)),
		bookingAt(3, models.StatusCompleted, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)),
		bookingAt(4, models.StatusCancelled, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)),
	}

	stats := BuildProviderStats(bookings, now)

	assert.Equal(t, 2, stats.ThisMonthJobs)
	assert.Equal(t, 1, stats.LastMonthJobs)
	assert.Equal(t, 4, stats.TotalClients)
	assert.Equal(t, 50, stats.CompletionRate)
}

func TestBuildProviderStatsCompletionRateRounds(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		bookingAt(1, models.StatusCompleted, start),
		bookingAt(2, models.StatusCompleted, start),
		bookingAt(3, models.StatusPending, start),
	}

	stats := BuildProviderStats(bookings, now)
	assert.Equal(t, 67, stats.CompletionRate)
}

func TestBuildProviderStatsRepeatClients(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)

	// Client 1 has three bookings and client 2 one; the legacy halving
	// counts 3/2 = 1 repeat client.
	bookings := []models.Booking{
		bookingAt(1, models.StatusCompleted, start),
		bookingAt(1, models.StatusCompleted, start),
		bookingAt(1, models.StatusConfirmed, start),
		bookingAt(2, models.StatusPending, start),
	}

	stats := BuildProviderStats(bookings, now)
	assert.Equal(t, 1, stats.RepeatClients)
	assert.Equal(t, 2, stats.TotalClients)
}

func TestBuildProviderStatsAvgResponseTime(t *testing.T) {
	now := time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

	created := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	confirmedQuick := created.Add(20 * time.Minute)
	confirmedSlow := created.Add(40 * time.Minute)

	first := bookingAt(1, models.StatusConfirmed, created)
	first.Model = gorm.Model{CreatedAt: created}
	first.ConfirmedAt = &confirmedQuick

	second := bookingAt(2, models.StatusCompleted, created)
	second.Model = gorm.Model{CreatedAt: created}
	second.ConfirmedAt = &confirmedSlow

	stats := BuildProviderStats([]models.Booking{first, second}, now)
	assert.Equal(t, "30 min", stats.AvgResponseTime)
}
