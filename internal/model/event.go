package model

import (
	"time"

	"gorm.io/gorm"
)

// Event 引擎事实日志。资金流转与状态迁移在同一事务内各追加一条，
// 自增主键即全局顺序；记录本身只追加、不修改。
type Event struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	EventID   string `json:"event_id" gorm:"uniqueIndex;not null"`
	EventType string `json:"event_type" gorm:"index;not null"`

	PoolAddress     string `json:"pool_address" gorm:"index"`
	CampaignAddress string `json:"campaign_address" gorm:"index"`

	Data      string `json:"data" gorm:"type:text"`
	Processed bool   `json:"processed" gorm:"default:false"`
}

// 事件类型
const (
	EventDonationMade      = "DonationMade"
	EventPoolWithdrawal    = "PoolWithdrawal"
	EventCampaignCreated   = "CampaignCreated"
	EventMilestoneApproved = "MilestoneApproved"
	EventMilestoneReleased = "MilestoneReleased"
	EventRefundClaimed     = "RefundClaimed"
	EventCampaignExpired   = "CampaignExpired"
)
