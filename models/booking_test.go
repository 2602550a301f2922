package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending straight to completed", StatusPending, StatusCompleted, false},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed back to pending", StatusConfirmed, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
		{"completed cannot revert", StatusCompleted, StatusConfirmed, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"cancelled cannot cancel again", StatusCancelled, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := Booking{Status: tt.from}
			err := booking.CanTransition(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
			// The check alone never mutates the booking
			assert.Equal(t, tt.from, booking.Status)
		})
	}
}

func TestBookingBeforeCreateDefaultsToPending(t *testing.T) {
	booking := Booking{}
	assert.NoError(t, booking.BeforeCreate(nil))
	assert.Equal(t, StatusPending, booking.Status)

	booking = Booking{Status: StatusConfirmed}
	assert.NoError(t, booking.BeforeCreate(nil))
	assert.Equal(t, StatusConfirmed, booking.Status)
}
