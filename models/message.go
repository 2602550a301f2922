package models

import (
	"time"
)

const (
	SenderClient   = "client"
	SenderProvider = "provider"
)

// Message belongs to a (provider, client) thread. There is no separate
// conversation entity; the pair of ids is the thread identity.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ProviderID uint      `json:"provider_id" gorm:"index"`
	ClientID   uint      `json:"client_id" gorm:"index"`
	Body       string    `json:"message" gorm:"column:body"`
	Sender     string    `json:"sender"` // "client" or "provider"
	CreatedAt  time.Time `json:"created_at"`
}
