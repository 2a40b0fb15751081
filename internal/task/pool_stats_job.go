package task

import (
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/config"
	"github.com/shariqazeem/umanity-social/internal/logger"
	"github.com/shariqazeem/umanity-social/internal/model"
)

// PoolStatsJob 资金池统计任务
type PoolStatsJob struct {
	db     *gorm.DB
	config *config.Config
}

// NewPoolStatsJob 创建资金池统计任务
func NewPoolStatsJob(db *gorm.DB, cfg *config.Config) *PoolStatsJob {
	return &PoolStatsJob{
		db:     db,
		config: cfg,
	}
}

// GetName 获取任务名称
func (j *PoolStatsJob) GetName() string {
	return "pool_stats_job"
}

// GetSchedule 获取任务调度配置
func (j *PoolStatsJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(10 * time.Minute)
}

// Execute 执行任务
func (j *PoolStatsJob) Execute() {
	type stats struct {
		PoolCount     int64
		TotalDonated  uint64
		DonationCount int64
		CampaignCount int64
	}
	var s stats

	if err := j.db.Model(&model.Pool{}).Where("is_active = ?", true).Count(&s.PoolCount).Error; err != nil {
		logger.Error("Failed to count pools: %v", err)
		return
	}
	if err := j.db.Model(&model.Pool{}).Select("COALESCE(SUM(total_donated), 0)").Scan(&s.TotalDonated).Error; err != nil {
		logger.Error("Failed to sum donations: %v", err)
		return
	}
	if err := j.db.Model(&model.DonationRecord{}).Count(&s.DonationCount).Error; err != nil {
		logger.Error("Failed to count donation records: %v", err)
		return
	}
	if err := j.db.Model(&model.Campaign{}).Where("is_active = ?", true).Count(&s.CampaignCount).Error; err != nil {
		logger.Error("Failed to count campaigns: %v", err)
		return
	}

	logger.Info("Pool stats: %d active pools, %d active campaigns, %d donations, %d donated in total",
		s.PoolCount, s.CampaignCount, s.DonationCount, s.TotalDonated)
}
