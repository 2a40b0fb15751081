package logic

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/addr"
	"github.com/shariqazeem/umanity-social/internal/errs"
	"github.com/shariqazeem/umanity-social/internal/event"
	"github.com/shariqazeem/umanity-social/internal/model"
)

// CampaignLogic 活动业务逻辑
type CampaignLogic struct {
	db *gorm.DB
}

// NewCampaignLogic 创建活动业务逻辑
func NewCampaignLogic(db *gorm.DB) *CampaignLogic {
	return &CampaignLogic{db: db}
}

// CreateCampaign 在资金池上创建托管活动。百分比清单在此处整体校验一次，
// 校验通过的计划持久化在活动上，后续 InitMilestone 以计划为准。
func (c *CampaignLogic) CreateCampaign(
	poolAddress, caller, recipient string,
	targetAmount uint64,
	deadline int64,
	descriptions []string,
	percentages []uint8,
) (*model.Campaign, error) {
	count := len(descriptions)
	if count < model.CampaignMinMilestones || count > model.CampaignMaxMilestones {
		return nil, errs.ErrInvalidMilestoneCount
	}
	if len(descriptions) != len(percentages) {
		return nil, errs.ErrInvalidMilestoneCount
	}

	// 宽整型求和，5 个 ≤255 的值相加不会溢出
	var totalPct uint16
	for _, pct := range percentages {
		totalPct += uint16(pct)
	}
	if totalPct != 100 {
		return nil, errs.ErrInvalidPercentages
	}

	plan := make(model.MilestonePlan, count)
	for i := range descriptions {
		if len(descriptions[i]) > model.MilestoneDescriptionMaxLen {
			return nil, errs.ErrDescriptionTooLong
		}
		plan[i] = model.MilestonePlanItem{
			Description: descriptions[i],
			Percentage:  percentages[i],
		}
	}

	var campaign model.Campaign
	err := c.db.Transaction(func(tx *gorm.DB) error {
		var pool model.Pool
		if err := tx.Where("address = ?", poolAddress).First(&pool).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return fmt.Errorf("查询资金池失败: %w", err)
		}
		if caller != pool.Authority {
			return errs.ErrUnauthorized
		}

		// 活动地址仅由资金池派生，每个资金池至多一个活动
		campaignAddress := addr.Campaign(poolAddress)
		var existing model.Campaign
		err := tx.Where("address = ?", campaignAddress).First(&existing).Error
		if err == nil {
			return errs.ErrCampaignExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("查询活动失败: %w", err)
		}

		campaign = model.Campaign{
			Address:             campaignAddress,
			PoolAddress:         poolAddress,
			Authority:           caller,
			Recipient:           recipient,
			TargetAmount:        targetAmount,
			TotalRaised:         0,
			DonorCount:          0,
			MilestoneCount:      uint8(count),
			MilestonesCompleted: 0,
			Deadline:            deadline,
			IsActive:            true,
			Plan:                plan,
		}
		if err := tx.Create(&campaign).Error; err != nil {
			return err
		}

		return event.Emit(tx, model.EventCampaignCreated, poolAddress, campaignAddress, event.CampaignCreated{
			Campaign:       campaignAddress,
			Pool:           poolAddress,
			TargetAmount:   targetAmount,
			MilestoneCount: uint8(count),
		})
	})
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetCampaign 获取活动详情
func (c *CampaignLogic) GetCampaign(campaignAddress string) (*model.Campaign, error) {
	var campaign model.Campaign
	if err := c.db.Where("address = ?", campaignAddress).First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("查询活动失败: %w", err)
	}
	return &campaign, nil
}

// GetCampaignMilestones 获取活动里程碑列表
func (c *CampaignLogic) GetCampaignMilestones(campaignAddress string) ([]model.Milestone, error) {
	var milestones []model.Milestone
	if err := c.db.Where("campaign_address = ?", campaignAddress).
		Order("milestone_index ASC").Find(&milestones).Error; err != nil {
		return nil, fmt.Errorf("获取里程碑列表失败: %w", err)
	}
	return milestones, nil
}
