package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// DateRange is the inclusive span of calendar days a booking occupies.
// Start equals End for single-day jobs.
type DateRange struct {
	Start time.Time `json:"start" gorm:"column:range_start"`
	End   time.Time `json:"end" gorm:"column:range_end"`
}

// Booking reserves a provider's calendar days for a client. Bookings are
// never deleted; cancellation is a terminal status.
type Booking struct {
	gorm.Model
	UserID      uint          `json:"user_id"`
	User        User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	ProviderID  uint          `json:"provider_id"`
	Provider    Provider      `json:"provider,omitempty" gorm:"foreignKey:ProviderID"`
	DateRange   DateRange     `json:"date_range" gorm:"embedded"`
	Status      BookingStatus `json:"status"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.Status == "" {
		b.Status = StatusPending
	}
	return nil
}

// CanTransition reports whether moving to newStatus is legal from the
// booking's current status. Completed and cancelled are terminal.
func (b *Booking) CanTransition(newStatus BookingStatus) error {
	switch b.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", b.Status)
	default:
		return fmt.Errorf("unknown status %s", b.Status)
	}
	return nil
}

// UpdateStatus transitions the booking and persists it. Confirmation stamps
// ConfirmedAt so response-time stats keep their sample after the booking
// later completes.
func (b *Booking) UpdateStatus(tx *gorm.DB, newStatus BookingStatus) error {
	if err := b.CanTransition(newStatus); err != nil {
		return err
	}

	b.Status = newStatus
	if newStatus == StatusConfirmed && b.ConfirmedAt == nil {
		now := time.Now()
		b.ConfirmedAt = &now
	}

	return tx.Save(b).Error
}
