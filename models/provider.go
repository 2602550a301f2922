package models

import (
	"math"

	"gorm.io/gorm"
)

// Provider is the service-offering profile of a user. Exactly one provider
// row exists per user; the user row keeps the IsProvider flag in sync.
type Provider struct {
	gorm.Model
	UserID       uint       `json:"user_id" gorm:"uniqueIndex"`
	User         User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Category     string     `json:"category"`
	District     string     `json:"district"`
	Education    string     `json:"education"`
	Experience   string     `json:"experience"`
	ProfileImage string     `json:"profile_image"`
	WorkImages   StringList `json:"work_images" gorm:"type:jsonb"`

	// Availability template: working weekday names plus an ad-hoc blackout
	// list of "YYYY-MM-DD" dates.
	WorkingDays      StringList `json:"working_days" gorm:"type:jsonb"`
	StartTime        string     `json:"start_time"` // Format "HH:MM" in 24h
	EndTime          string     `json:"end_time"`   // Format "HH:MM" in 24h
	UnavailableDates StringList `json:"unavailable_dates" gorm:"type:jsonb"`

	// Rating aggregate. The sum and count are bumped atomically in the same
	// transaction as each review insert; the one-decimal average is derived
	// on read.
	RatingSum   int64   `json:"-"`
	ReviewCount int64   `json:"review_count"`
	Rating      float64 `json:"rating" gorm:"-"`
}

// AfterFind derives the public rating from the stored aggregate.
func (p *Provider) AfterFind(tx *gorm.DB) error {
	p.Rating = RoundRating(p.RatingSum, p.ReviewCount)
	return nil
}

// RoundRating returns the mean of sum/count rounded to one decimal, or 0
// when there are no reviews yet.
func RoundRating(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}
