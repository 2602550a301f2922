package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Review is a client's verdict on a completed booking. At most one per
// (booking, client) pair, immutable once created.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	BookingID  uint      `json:"booking_id" gorm:"uniqueIndex:idx_review_booking_client"`
	ClientID   uint      `json:"client_id" gorm:"uniqueIndex:idx_review_booking_client"`
	ProviderID uint      `json:"provider_id" gorm:"index"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate enforces the boundary rules: an integer rating between 1 and 5
// and a non-empty comment.
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	if r.Comment == "" {
		return fmt.Errorf("comment is required")
	}
	return nil
}

// HasExistingReview reports whether this client already reviewed the booking.
func (r *Review) HasExistingReview(tx *gorm.DB) (bool, error) {
	var count int64
	err := tx.Model(&Review{}).
		Where("booking_id = ? AND client_id = ?", r.BookingID, r.ClientID).
		Count(&count).Error

	return count > 0, err
}
