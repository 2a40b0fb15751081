package model

import (
	"time"

	"gorm.io/gorm"
)

// Milestone 里程碑模型。状态机只前进：pending → approved → released。
type Milestone struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Address         string `json:"address" gorm:"uniqueIndex;not null"`
	CampaignAddress string `json:"campaign_address" gorm:"index:idx_campaign_index,unique;not null"`
	Index           uint8  `json:"index" gorm:"column:milestone_index;index:idx_campaign_index,unique;not null"`

	Description string `json:"description" gorm:"size:100"`
	// 占活动 TotalRaised 的百分比份额，同一活动所有里程碑之和为 100
	Percentage uint8 `json:"percentage" gorm:"not null"`

	Status         MilestoneStatus `json:"status" gorm:"default:'pending'"`
	ApprovedAt     int64           `json:"approved_at" gorm:"default:0"`
	ReleasedAt     int64           `json:"released_at" gorm:"default:0"`
	AmountReleased uint64          `json:"amount_released" gorm:"default:0"`
}

// MilestoneStatus 里程碑状态
type MilestoneStatus string

const (
	MilestoneStatusPending  MilestoneStatus = "pending"  // 待审批
	MilestoneStatusApproved MilestoneStatus = "approved" // 已审批，待释放
	MilestoneStatusReleased MilestoneStatus = "released" // 已释放（终态）
	MilestoneStatusRejected MilestoneStatus = "rejected" // 预留终态，当前无操作会转入
)

// MilestoneDescriptionMaxLen 描述长度上限
const MilestoneDescriptionMaxLen = 100
