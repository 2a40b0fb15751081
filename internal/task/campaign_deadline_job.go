package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/config"
	"github.com/shariqazeem/umanity-social/internal/event"
	"github.com/shariqazeem/umanity-social/internal/logger"
	"github.com/shariqazeem/umanity-social/internal/model"
)

// CampaignDeadlineJob 活动截止任务
// 扫描已过截止时间且里程碑未全部完成的活动，将其标记为非活跃，
// 此后捐赠者可随时发起退款，新的捐赠不再计入该活动。
type CampaignDeadlineJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewCampaignDeadlineJob 创建活动截止任务
func NewCampaignDeadlineJob(db *gorm.DB, cfg *config.Config) *CampaignDeadlineJob {
	return &CampaignDeadlineJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *CampaignDeadlineJob) GetName() string {
	return "campaign_deadline_job"
}

// GetSchedule 获取任务调度配置
func (j *CampaignDeadlineJob) GetSchedule() gocron.JobDefinition {
	interval := j.config.Task.Interval
	if interval <= 0 {
		interval = 60
	}
	return gocron.DurationJob(time.Duration(interval) * time.Second)
}

// Execute 执行任务
func (j *CampaignDeadlineJob) Execute() {
	now := time.Now().Unix()

	var campaigns []model.Campaign
	err := j.db.Where("is_active = ? AND deadline < ?", true, now).Find(&campaigns).Error
	if err != nil {
		logger.Error("Failed to query expired campaigns: %v", err)
		return
	}

	for _, campaign := range campaigns {
		if campaign.MilestonesCompleted >= campaign.MilestoneCount {
			// 里程碑已全部完成的活动自然收尾，无需标记
			continue
		}
		if err := j.expire(campaign); err != nil {
			logger.Error("Failed to expire campaign %s: %v", campaign.Address, err)
			continue
		}
		logger.Info("Campaign %s expired, completed %d/%d milestones",
			campaign.Address, campaign.MilestonesCompleted, campaign.MilestoneCount)
	}
}

// expire 将单个活动标记为过期并记录事件
func (j *CampaignDeadlineJob) expire(campaign model.Campaign) error {
	return j.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Campaign{}).
			Where("address = ? AND is_active = ?", campaign.Address, true).
			Update("is_active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 已被其他实例处理过
			return nil
		}

		return event.Emit(tx, model.EventCampaignExpired, campaign.PoolAddress, campaign.Address,
			event.CampaignExpired{
				Campaign:            campaign.Address,
				Pool:                campaign.PoolAddress,
				MilestonesCompleted: campaign.MilestonesCompleted,
				MilestoneCount:      campaign.MilestoneCount,
			})
	})
}
