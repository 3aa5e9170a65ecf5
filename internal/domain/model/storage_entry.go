package model

import "time"

// 文字列キー/文字列値の永続化レコード（postgresバックエンド用）。
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;column:storage_key;type:varchar(255)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
