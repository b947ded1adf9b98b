package model

import "time"

// GenerationEvent is an audit record of one /generate call, persisted
// asynchronously by the event worker.
type GenerationEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerEmail string    `gorm:"type:varchar(128) COLLATE utf8mb4_bin;not null;index" json:"owner_email"`
	Concept    string    `gorm:"size:256;not null" json:"concept"`
	Level      string    `gorm:"size:64;not null" json:"level"`
	Degraded   bool      `gorm:"not null" json:"degraded"`
	DurationMs int64     `gorm:"not null" json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
