package logic

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/shariqazeem/umanity-social/internal/model"
)

// EventLogic 事件查询逻辑。事件只由各操作在事务内追加，这里只读。
type EventLogic struct {
	db *gorm.DB
}

// NewEventLogic 创建事件查询逻辑
func NewEventLogic(db *gorm.DB) *EventLogic {
	return &EventLogic{db: db}
}

// GetEvents 按落库顺序获取事件列表
func (e *EventLogic) GetEvents(eventType, poolAddress, campaignAddress string, page, pageSize int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	// 构建查询条件
	query := e.db.Model(&model.Event{})
	if eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}
	if poolAddress != "" {
		query = query.Where("pool_address = ?", poolAddress)
	}
	if campaignAddress != "" {
		query = query.Where("campaign_address = ?", campaignAddress)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件总数失败: %w", err)
	}

	// 分页查询，自增主键即提交顺序
	offset := (page - 1) * pageSize
	if err := query.Order("id ASC").Offset(offset).Limit(pageSize).Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("获取事件列表失败: %w", err)
	}

	return events, total, nil
}
