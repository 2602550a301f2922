package models

import (
	"time"

	"gorm.io/gorm"
)

// Earning is one entry in a provider's append-only earnings ledger.
type Earning struct {
	gorm.Model
	ProviderID uint      `json:"provider_id" gorm:"index"`
	Amount     float64   `json:"amount"`
	PayerName  string    `json:"payer_name"`
	Date       time.Time `json:"date"`
	Note       string    `json:"note"`
}
