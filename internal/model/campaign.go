package model

import (
	"time"

	"gorm.io/gorm"
)

// Campaign 托管活动模型。绑定到唯一资金池，按里程碑分批释放募集资金。
type Campaign struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	// 每个资金池至多一个活动（活动地址仅由资金池地址派生）
	Address     string `json:"address" gorm:"uniqueIndex;not null"`
	PoolAddress string `json:"pool_address" gorm:"uniqueIndex;not null"`

	Authority string `json:"authority" gorm:"not null"`
	// 释放资金的固定接收方，创建后不可变更
	Recipient string `json:"recipient" gorm:"not null"`

	TargetAmount        uint64 `json:"target_amount"`
	TotalRaised         uint64 `json:"total_raised" gorm:"default:0"`
	DonorCount          uint64 `json:"donor_count" gorm:"default:0"`
	MilestoneCount      uint8  `json:"milestone_count" gorm:"not null"`
	MilestonesCompleted uint8  `json:"milestones_completed" gorm:"default:0"`
	Deadline            int64  `json:"deadline" gorm:"not null"`
	IsActive            bool   `json:"is_active" gorm:"default:true"`

	// 创建时校验通过的里程碑计划，InitMilestone 以此为准
	Plan MilestonePlan `json:"plan" gorm:"serializer:json"`
}

// MilestonePlan 创建活动时整体校验过的里程碑清单
type MilestonePlan []MilestonePlanItem

// MilestonePlanItem 单条里程碑计划
type MilestonePlanItem struct {
	Description string `json:"description"`
	Percentage  uint8  `json:"percentage"`
}

// 里程碑数量上限
const (
	CampaignMinMilestones = 1
	CampaignMaxMilestones = 5
)
