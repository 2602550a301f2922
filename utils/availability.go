package utils

import (
	"time"

	"gorm.io/gorm"

	"github.com/servicehub/servicehub-api/models"
)

// ExpandDailyOccupancy flattens every booking's date range into individual
// calendar days, in booking order. Used for the provider's own occupied-day
// calendar overlay.
func ExpandDailyOccupancy(bookings []models.Booking) []string {
	days := []string{}
	for _, booking := range bookings {
		days = append(days, DaysBetween(booking.DateRange.Start, booking.DateRange.End)...)
	}
	return days
}

// CheckDateAvailability checks whether a provider is free over the requested
// inclusive day range. Conflicting pending/confirmed bookings are locked so
// a concurrent create in another transaction cannot slip the same days in.
func CheckDateAvailability(tx *gorm.DB, provider *models.Provider, start, end time.Time) (bool, error) {
	var existingBooking models.Booking
	err := tx.Raw(`
		SELECT *
		FROM bookings
		WHERE provider_id = ?
		  AND status IN ('pending', 'confirmed')
		  AND range_start <= ?
		  AND range_end >= ?
		  AND deleted_at IS NULL
		FOR UPDATE
		LIMIT 1
	`, provider.ID, TruncateToDay(end), TruncateToDay(start)).
		Scan(&existingBooking).Error

	// If there is any conflicting booking, the range is taken
	if err == nil && existingBooking.ID != 0 {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	// Provider-declared blackout days block the range too
	for _, day := range DaysBetween(start, end) {
		if provider.UnavailableDates.Contains(day) {
			return false, nil
		}
	}

	return true, nil
}
