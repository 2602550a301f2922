package controllers

import (
	"fmt"
	"math"
	"time"

	"github.com/servicehub/servicehub-api/models"
)

// ProviderStats is the dashboard stats object.
type ProviderStats struct {
	TotalClients    int    `json:"totalClients"`
	CompletionRate  int    `json:"completionRate"`
	AvgResponseTime string `json:"avgResponseTime"`
	RepeatClients   int    `json:"repeatClients"`
	ThisMonthJobs   int    `json:"thisMonthJobs"`
	LastMonthJobs   int    `json:"lastMonthJobs"`
}

// BuildProviderStats derives the dashboard numbers from a provider's
// bookings. Month boundaries use the server's local calendar.
//
// RepeatClients deliberately keeps the legacy arithmetic: count every
// booking whose client appears more than once, then halve and floor. For
// a client with exactly two bookings this is their repeat count; with more
// it overestimates.
func BuildProviderStats(bookings []models.Booking, now time.Time) ProviderStats {
	stats := ProviderStats{AvgResponseTime: "N/A"}

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := thisMonth.AddDate(0, -1, 0)

	clientBookings := map[uint]int{}
	completed := 0
	var responseMinutes []float64

	for _, booking := range bookings {
		clientBookings[booking.UserID]++

		if booking.Status == models.StatusCompleted {
			completed++
		}

		if !booking.DateRange.Start.Before(thisMonth) {
			stats.ThisMonthJobs++
		} else if !booking.DateRange.Start.Before(lastMonth) {
			stats.LastMonthJobs++
		}

		if booking.ConfirmedAt != nil {
			responseMinutes = append(responseMinutes, booking.ConfirmedAt.Sub(booking.CreatedAt).Minutes())
		}
	}

	stats.TotalClients = len(clientBookings)

	if len(bookings) > 0 {
		stats.CompletionRate = int(math.Round(float64(completed) / float64(len(bookings)) * 100))
	}

	pairCount := 0
	for _, booking := range bookings {
		if clientBookings[booking.UserID] > 1 {
			pairCount++
		}
	}
	stats.RepeatClients = pairCount / 2

	if len(responseMinutes) > 0 {
		var sum float64
		for _, minutes := range responseMinutes {
			sum += minutes
		}
		avg := int(math.Round(sum / float64(len(responseMinutes))))
		if avg > 0 {
			stats.AvgResponseTime = fmt.Sprintf("%d min", avg)
		}
	}

	return stats
}
