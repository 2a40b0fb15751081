package model

import (
	"time"

	"gorm.io/gorm"
)

// Pool 捐赠资金池模型
type Pool struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// 地址信息（由名称确定性派生）
	Address      string `json:"address" gorm:"uniqueIndex;not null"`
	VaultAddress string `json:"vault_address" gorm:"uniqueIndex;not null"`

	// 基本信息
	Authority   string `json:"authority" gorm:"not null"`
	Name        string `json:"name" gorm:"size:50;not null"`
	Description string `json:"description" gorm:"size:200"`
	Emoji       string `json:"emoji" gorm:"size:10"`
	Category    uint8  `json:"category"`

	// 累计口径：TotalDonated 只增不减，记录历史募集总额；
	// 提现与释放只消耗金库余额，不回写此计数器
	TotalDonated uint64 `json:"total_donated" gorm:"default:0"`
	DonorCount   uint64 `json:"donor_count" gorm:"default:0"`
	IsActive     bool   `json:"is_active" gorm:"default:true"`
}

// PoolCategory 资金池类别
const (
	PoolCategoryMedical   uint8 = 0 // 医疗
	PoolCategoryEducation uint8 = 1 // 教育
	PoolCategoryEmergency uint8 = 2 // 紧急救助
	PoolCategoryCommunity uint8 = 3 // 社区
)

// 字段长度上限
const (
	PoolNameMaxLen        = 50
	PoolDescriptionMaxLen = 200
	PoolEmojiMaxLen       = 10
)
