package model

import "time"

// カートに対する操作の種類。
type CartAction string

const (
	CartActionAdd            CartAction = "ADD"
	CartActionChangeQuantity CartAction = "CHANGE_QUANTITY"
	CartActionRemove         CartAction = "REMOVE"
	CartActionClear          CartAction = "CLEAR"
)

// カート変更の履歴。
// 「どのセッションで」「何を」「どの明細に」「結果いくらになったか」を残す。
type CartEvent struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	SessionID string `gorm:"type:varchar(64);not null;index" json:"session_id"`

	Action CartAction `gorm:"type:varchar(32);not null;index" json:"action"`

	//対象の明細id（CLEARのときは空）。
	LineID string `gorm:"type:varchar(64)" json:"line_id"`

	//操作に渡された数量（ADDはqty、CHANGE_QUANTITYはdelta）。
	Quantity int64 `gorm:"not null" json:"quantity"`

	//操作後の合計
	Total int64 `gorm:"not null" json:"total"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
