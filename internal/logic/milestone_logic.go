package logic

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/addr"
	"github.com/shariqazeem/umanity-social/internal/errs"
	"github.com/shariqazeem/umanity-social/internal/event"
	"github.com/shariqazeem/umanity-social/internal/ledger"
	"github.com/shariqazeem/umanity-social/internal/model"
	"github.com/shariqazeem/umanity-social/internal/safemath"
)

// MilestoneLogic 里程碑业务逻辑
type MilestoneLogic struct {
	db *gorm.DB
}

// NewMilestoneLogic 创建里程碑业务逻辑
func NewMilestoneLogic(db *gorm.DB) *MilestoneLogic {
	return &MilestoneLogic{db: db}
}

// InitMilestone 初始化单条里程碑。百分比以创建活动时校验过的计划为准，
// 与计划不一致的调用被拒绝，保证全部里程碑的百分比之和恒为 100。
func (m *MilestoneLogic) InitMilestone(campaignAddress, caller string, index uint8, description string, percentage uint8) (*model.Milestone, error) {
	if len(description) > model.MilestoneDescriptionMaxLen {
		return nil, errs.ErrDescriptionTooLong
	}

	var milestone model.Milestone
	err := m.db.Transaction(func(tx *gorm.DB) error {
		campaign, err := m.loadCampaign(tx, campaignAddress, caller)
		if err != nil {
			return err
		}

		if int(index) >= int(campaign.MilestoneCount) {
			return errs.ErrInvalidMilestoneCount
		}
		if campaign.Plan[index].Percentage != percentage {
			return errs.ErrInvalidPercentages
		}

		var existing model.Milestone
		err = tx.Where("campaign_address = ? AND milestone_index = ?", campaignAddress, index).
			First(&existing).Error
		if err == nil {
			return errs.ErrMilestoneExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询里程碑失败: %w", err)
		}

		milestone = model.Milestone{
			Address:         addr.Milestone(campaignAddress, index),
			CampaignAddress: campaignAddress,
			Index:           index,
			Description:     description,
			Percentage:      percentage,
			Status:          model.MilestoneStatusPending,
			ApprovedAt:      0,
			ReleasedAt:      0,
			AmountReleased:  0,
		}
		return tx.Create(&milestone).Error
	})
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// ApproveMilestone 审批里程碑：pending → approved
func (m *MilestoneLogic) ApproveMilestone(campaignAddress, caller string, index uint8) (*model.Milestone, error) {
	var milestone model.Milestone
	err := m.db.Transaction(func(tx *gorm.DB) error {
		campaign, err := m.loadCampaign(tx, campaignAddress, caller)
		if err != nil {
			return err
		}

		if err := tx.Where("campaign_address = ? AND milestone_index = ?", campaign.Address, index).
			First(&milestone).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("查询里程碑失败: %w", err)
		}

		if milestone.Status != model.MilestoneStatusPending {
			return errs.ErrMilestoneNotPending
		}

		milestone.Status = model.MilestoneStatusApproved
		milestone.ApprovedAt = time.Now().Unix()
		if err := tx.Model(&model.Milestone{}).Where("id = ?", milestone.ID).
			Updates(map[string]interface{}{
				"status":      milestone.Status,
				"approved_at": milestone.ApprovedAt,
			}).Error; err != nil {
			return err
		}

		return event.Emit(tx, model.EventMilestoneApproved, campaign.PoolAddress, campaign.Address, event.MilestoneApproved{
			Campaign:       campaign.Address,
			MilestoneIndex: index,
		})
	})
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// ReleaseMilestoneFunds 释放里程碑资金：approved → released。
// 状态在本次操作内翻转为 released，后续任何重复调用必然倒在状态闸上，
// 这是防止重复支付的唯一防线。
func (m *MilestoneLogic) ReleaseMilestoneFunds(campaignAddress, caller string, index uint8, recipient string) (*model.Milestone, error) {
	var milestone model.Milestone
	err := m.db.Transaction(func(tx *gorm.DB) error {
		campaign, err := m.loadCampaign(tx, campaignAddress, caller)
		if err != nil {
			return err
		}

		// 接收方不由释放时的调用决定，必须与活动存储的接收方一致
		if recipient != campaign.Recipient {
			return errs.ErrRecipientMismatch
		}

		if err := tx.Where("campaign_address = ? AND milestone_index = ?", campaign.Address, index).
			First(&milestone).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("查询里程碑失败: %w", err)
		}

		if milestone.Status != model.MilestoneStatusApproved {
			return errs.ErrMilestoneNotApproved
		}

		// floor(percentage * totalRaised / 100)，先乘后除保精度，乘法溢出即失败
		releaseAmount, err := safemath.MulDiv(uint64(milestone.Percentage), campaign.TotalRaised, 100)
		if err != nil {
			return err
		}

		vaultAddress := addr.Vault(campaign.PoolAddress)
		balance, err := ledger.BalanceOf(tx, vaultAddress)
		if err != nil {
			return err
		}
		if balance < releaseAmount {
			return errs.ErrInsufficientFunds
		}

		if err := ledger.Transfer(tx, vaultAddress, campaign.Recipient, releaseAmount); err != nil {
			return err
		}

		now := time.Now().Unix()
		milestone.Status = model.MilestoneStatusReleased
		milestone.ReleasedAt = now
		milestone.AmountReleased = releaseAmount
		if err := tx.Model(&model.Milestone{}).Where("id = ?", milestone.ID).
			Updates(map[string]interface{}{
				"status":          milestone.Status,
				"released_at":     now,
				"amount_released": releaseAmount,
			}).Error; err != nil {
			return err
		}

		completed, err := safemath.Add(uint64(campaign.MilestonesCompleted), 1)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.Campaign{}).Where("id = ?", campaign.ID).
			Update("milestones_completed", uint8(completed)).Error; err != nil {
			return err
		}

		return event.Emit(tx, model.EventMilestoneReleased, campaign.PoolAddress, campaign.Address, event.MilestoneReleased{
			Campaign:       campaign.Address,
			MilestoneIndex: index,
			Amount:         releaseAmount,
			Recipient:      campaign.Recipient,
		})
	})
	if err != nil {
		return nil, err
	}
	return &milestone, nil
}

// loadCampaign 加载活动并做权限校验（权限即存储身份的精确相等，每次重新判定）
func (m *MilestoneLogic) loadCampaign(tx *gorm.DB, campaignAddress, caller string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := tx.Where("address = ?", campaignAddress).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("查询活动失败: %w", err)
	}
	if caller != campaign.Authority {
		return nil, errs.ErrUnauthorized
	}
	return &campaign, nil
}
