package model

import (
	"time"

	"gorm.io/datatypes"
)

// HistoryEntry is one generated analogy plus its quiz, owned by the user
// identified by OwnerEmail. Result and Quiz hold the normalized LLM JSON.
type HistoryEntry struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	OwnerEmail string         `gorm:"type:varchar(128) COLLATE utf8mb4_bin;not null;index:idx_history_owner_created" json:"owner_email"`
	Concept    string         `gorm:"size:256;not null" json:"concept"`
	Level      string         `gorm:"size:64;not null" json:"level"`
	Result     datatypes.JSON `gorm:"type:json" json:"result"`
	Quiz       datatypes.JSON `gorm:"type:json" json:"quiz"`
	CreatedAt  time.Time      `gorm:"index:idx_history_owner_created" json:"created_at"`
}
