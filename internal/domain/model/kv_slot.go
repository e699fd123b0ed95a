package model

import "time"

// 永続化スロット（セッションごとのkey-value）。
// カートは key="CART" にJSON配列で保存する。
type KVSlot struct {
	Namespace string    `gorm:"primaryKey;type:varchar(64)" json:"namespace"`
	Key       string    `gorm:"primaryKey;type:varchar(64)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (KVSlot) TableName() string { return "kv_slots" }
