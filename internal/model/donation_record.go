package model

import (
	"time"

	"gorm.io/gorm"
)

// DonationRecord 捐赠记录。创建后不可变，退款计算只读取、不修改此记录。
type DonationRecord struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	RecordID    string `json:"record_id" gorm:"uniqueIndex;not null"`
	Donor       string `json:"donor" gorm:"index;not null"`
	PoolAddress string `json:"pool_address" gorm:"index;not null"`
	Amount      uint64 `json:"amount" gorm:"not null"`
	Timestamp   int64  `json:"timestamp" gorm:"not null"`
	Kind        uint8  `json:"kind"`
}

// DonationKind 捐赠类型
const (
	DonationKindOneTap uint8 = 0 // 一键捐赠（固定金额）
	DonationKindCustom uint8 = 1 // 自定义金额
	DonationKindTip    uint8 = 2 // 打赏（预留）
)

// OneTapAmount 一键捐赠固定金额：1 USDC（6 位小数）
const OneTapAmount uint64 = 1_000_000
