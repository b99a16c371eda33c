package model

import "time"

// KVEntry is one named collection (or cart/audit blob) in the relational backend.
// Value is kept as text so malformed legacy content can still be stored and read back.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;type:varchar(255)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
}

func (KVEntry) TableName() string { return "kv_entries" }
