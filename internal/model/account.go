package model

import "time"

// Account 账本账户，只有余额。金库、捐赠人、接收方统一用此表记账。
type Account struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Address string `json:"address" gorm:"uniqueIndex;not null"`
	Balance uint64 `json:"balance" gorm:"default:0"`
}
