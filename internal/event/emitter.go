package event

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/model"
)

// 事件载荷，与引擎对外承诺的事实一一对应

// DonationMade 捐赠完成
type DonationMade struct {
	Donor  string `json:"donor"`
	Pool   string `json:"pool"`
	Amount uint64 `json:"amount"`
	Kind   uint8  `json:"kind"`
}

// PoolWithdrawal 资金池提现
type PoolWithdrawal struct {
	Pool      string `json:"pool"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

// CampaignCreated 活动创建
type CampaignCreated struct {
	Campaign       string `json:"campaign"`
	Pool           string `json:"pool"`
	TargetAmount   uint64 `json:"target_amount"`
	MilestoneCount uint8  `json:"milestone_count"`
}

// MilestoneApproved 里程碑审批通过
type MilestoneApproved struct {
	Campaign       string `json:"campaign"`
	MilestoneIndex uint8  `json:"milestone_index"`
}

// MilestoneReleased 里程碑资金释放
type MilestoneReleased struct {
	Campaign       string `json:"campaign"`
	MilestoneIndex uint8  `json:"milestone_index"`
	Amount         uint64 `json:"amount"`
	Recipient      string `json:"recipient"`
}

// RefundClaimed 退款完成
type RefundClaimed struct {
	Campaign string `json:"campaign"`
	Donor    string `json:"donor"`
	Amount   uint64 `json:"amount"`
}

// CampaignExpired 活动过期（后台任务记账用）
type CampaignExpired struct {
	Campaign            string `json:"campaign"`
	Pool                string `json:"pool"`
	MilestonesCompleted uint8  `json:"milestones_completed"`
	MilestoneCount      uint8  `json:"milestone_count"`
}

// Emit 在调用方事务内追加一条事件。操作成功则事件恰好落库一次，
// 操作回滚则事件随之消失。
func Emit(tx *gorm.DB, eventType, poolAddress, campaignAddress string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("序列化事件数据失败: %w", err)
	}

	record := model.Event{
		EventID:         uuid.NewString(),
		EventType:       eventType,
		PoolAddress:     poolAddress,
		CampaignAddress: campaignAddress,
		Data:            string(data),
	}
	if err := tx.Create(&record).Error; err != nil {
		return fmt.Errorf("写入事件记录失败: %w", err)
	}
	return nil
}
