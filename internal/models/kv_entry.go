package models

import "time"

// KVEntry anahtar/değer deposunun Postgres tablosu
type KVEntry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"` // JSON veya düz metin
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
