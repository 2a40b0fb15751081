package handler

import (
	"time"

	"github.com/shariqazeem/umanity-social/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 请求模型

// CreatePoolRequest 创建资金池请求
type CreatePoolRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	Category    uint8  `json:"category"`
}

// DonateRequest 自定义金额捐赠请求
type DonateRequest struct {
	Amount uint64 `json:"amount"`
}

// WithdrawRequest 提现请求
type WithdrawRequest struct {
	Recipient string `json:"recipient" binding:"required"`
	Amount    uint64 `json:"amount"`
}

// CreateCampaignRequest 创建活动请求
type CreateCampaignRequest struct {
	Recipient             string   `json:"recipient" binding:"required"`
	TargetAmount          uint64   `json:"targetAmount"`
	Deadline              int64    `json:"deadline" binding:"required"`
	MilestoneDescriptions []string `json:"milestoneDescriptions"`
	MilestonePercentages  []uint8  `json:"milestonePercentages"`
}

// InitMilestoneRequest 初始化里程碑请求
type InitMilestoneRequest struct {
	Index       uint8  `json:"index"`
	Description string `json:"description"`
	Percentage  uint8  `json:"percentage"`
}

// ReleaseMilestoneRequest 释放里程碑资金请求
type ReleaseMilestoneRequest struct {
	Recipient string `json:"recipient" binding:"required"`
}

// ClaimRefundRequest 申领退款请求
type ClaimRefundRequest struct {
	RecordID string `json:"recordId" binding:"required"`
}

// DepositRequest 账户入金请求
type DepositRequest struct {
	Amount uint64 `json:"amount"`
}

// 响应模型

// PoolResponse 资金池响应模型
type PoolResponse struct {
	Address      string    `json:"address"`
	VaultAddress string    `json:"vaultAddress"`
	Authority    string    `json:"authority"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Emoji        string    `json:"emoji"`
	Category     uint8     `json:"category"`
	TotalDonated uint64    `json:"totalDonated"`
	DonorCount   uint64    `json:"donorCount"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToPoolResponse 转换资金池响应
func ToPoolResponse(pool *model.Pool) PoolResponse {
	return PoolResponse{
		Address:      pool.Address,
		VaultAddress: pool.VaultAddress,
		Authority:    pool.Authority,
		Name:         pool.Name,
		Description:  pool.Description,
		Emoji:        pool.Emoji,
		Category:     pool.Category,
		TotalDonated: pool.TotalDonated,
		DonorCount:   pool.DonorCount,
		IsActive:     pool.IsActive,
		CreatedAt:    pool.CreatedAt,
	}
}

// ToPoolResponseList 转换资金池列表
func ToPoolResponseList(pools []model.Pool) []PoolResponse {
	out := make([]PoolResponse, 0, len(pools))
	for i := range pools {
		out = append(out, ToPoolResponse(&pools[i]))
	}
	return out
}

// DonationResponse 捐赠记录响应模型
type DonationResponse struct {
	RecordID  string `json:"recordId"`
	Donor     string `json:"donor"`
	Pool      string `json:"pool"`
	Amount    uint64 `json:"amount"`
	Timestamp int64  `json:"timestamp"`
	Kind      uint8  `json:"kind"`
}

// ToDonationResponse 转换捐赠记录响应
func ToDonationResponse(record *model.DonationRecord) DonationResponse {
	return DonationResponse{
		RecordID:  record.RecordID,
		Donor:     record.Donor,
		Pool:      record.PoolAddress,
		Amount:    record.Amount,
		Timestamp: record.Timestamp,
		Kind:      record.Kind,
	}
}

// ToDonationResponseList 转换捐赠记录列表
func ToDonationResponseList(records []model.DonationRecord) []DonationResponse {
	out := make([]DonationResponse, 0, len(records))
	for i := range records {
		out = append(out, ToDonationResponse(&records[i]))
	}
	return out
}

// CampaignResponse 活动响应模型
type CampaignResponse struct {
	Address             string `json:"address"`
	Pool                string `json:"pool"`
	Authority           string `json:"authority"`
	Recipient           string `json:"recipient"`
	TargetAmount        uint64 `json:"targetAmount"`
	TotalRaised         uint64 `json:"totalRaised"`
	DonorCount          uint64 `json:"donorCount"`
	MilestoneCount      uint8  `json:"milestoneCount"`
	MilestonesCompleted uint8  `json:"milestonesCompleted"`
	Deadline            int64  `json:"deadline"`
	IsActive            bool   `json:"isActive"`
}

// ToCampaignResponse 转换活动响应
func ToCampaignResponse(campaign *model.Campaign) CampaignResponse {
	return CampaignResponse{
		Address:             campaign.Address,
		Pool:                campaign.PoolAddress,
		Authority:           campaign.Authority,
		Recipient:           campaign.Recipient,
		TargetAmount:        campaign.TargetAmount,
		TotalRaised:         campaign.TotalRaised,
		DonorCount:          campaign.DonorCount,
		MilestoneCount:      campaign.MilestoneCount,
		MilestonesCompleted: campaign.MilestonesCompleted,
		Deadline:            campaign.Deadline,
		IsActive:            campaign.IsActive,
	}
}

// MilestoneResponse 里程碑响应模型
type MilestoneResponse struct {
	Address        string `json:"address"`
	Campaign       string `json:"campaign"`
	Index          uint8  `json:"index"`
	Description    string `json:"description"`
	Percentage     uint8  `json:"percentage"`
	Status         string `json:"status"`
	ApprovedAt     int64  `json:"approvedAt"`
	ReleasedAt     int64  `json:"releasedAt"`
	AmountReleased uint64 `json:"amountReleased"`
}

// ToMilestoneResponse 转换里程碑响应
func ToMilestoneResponse(milestone *model.Milestone) MilestoneResponse {
	return MilestoneResponse{
		Address:        milestone.Address,
		Campaign:       milestone.CampaignAddress,
		Index:          milestone.Index,
		Description:    milestone.Description,
		Percentage:     milestone.Percentage,
		Status:         string(milestone.Status),
		ApprovedAt:     milestone.ApprovedAt,
		ReleasedAt:     milestone.ReleasedAt,
		AmountReleased: milestone.AmountReleased,
	}
}

// ToMilestoneResponseList 转换里程碑列表
func ToMilestoneResponseList(milestones []model.Milestone) []MilestoneResponse {
	out := make([]MilestoneResponse, 0, len(milestones))
	for i := range milestones {
		out = append(out, ToMilestoneResponse(&milestones[i]))
	}
	return out
}

// CampaignDetailResponse 活动详情响应
type CampaignDetailResponse struct {
	Campaign   CampaignResponse    `json:"campaign"`
	Milestones []MilestoneResponse `json:"milestones"`
}

// RefundResponse 退款响应
type RefundResponse struct {
	Campaign string `json:"campaign"`
	Donor    string `json:"donor"`
	Amount   uint64 `json:"amount"`
}

// AccountResponse 账户响应
type AccountResponse struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

// EventResponse 事件响应模型
type EventResponse struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Pool      string    `json:"pool"`
	Campaign  string    `json:"campaign"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToEventResponseList 转换事件列表
func ToEventResponseList(events []model.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, EventResponse{
			EventID:   ev.EventID,
			EventType: ev.EventType,
			Pool:      ev.PoolAddress,
			Campaign:  ev.CampaignAddress,
			Data:      ev.Data,
			CreatedAt: ev.CreatedAt,
		})
	}
	return out
}

// GetEventsResponse 事件列表响应
type GetEventsResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination Pagination      `json:"pagination"`
}
