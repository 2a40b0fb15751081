package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shariqazeem/umanity-social/internal/logic"
)

// CampaignHandler 活动与里程碑处理器
type CampaignHandler struct {
	campaignLogic  *logic.CampaignLogic
	milestoneLogic *logic.MilestoneLogic
	refundLogic    *logic.RefundLogic
}

// NewCampaignHandler 创建活动处理器
func NewCampaignHandler(campaignLogic *logic.CampaignLogic, milestoneLogic *logic.MilestoneLogic, refundLogic *logic.RefundLogic) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic:  campaignLogic,
		milestoneLogic: milestoneLogic,
		refundLogic:    refundLogic,
	}
}

// CreateCampaign 在资金池上创建托管活动
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	campaign, err := h.campaignLogic.CreateCampaign(
		c.Param("address"), caller, req.Recipient,
		req.TargetAmount, req.Deadline,
		req.MilestoneDescriptions, req.MilestonePercentages,
	)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "创建活动成功", ToCampaignResponse(campaign))
}

// GetCampaign 获取活动详情（含里程碑）
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	address := c.Param("address")

	campaign, err := h.campaignLogic.GetCampaign(address)
	if err != nil {
		FailFromError(c, err)
		return
	}
	milestones, err := h.campaignLogic.GetCampaignMilestones(address)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取活动详情成功", CampaignDetailResponse{
		Campaign:   ToCampaignResponse(campaign),
		Milestones: ToMilestoneResponseList(milestones),
	})
}

// InitMilestone 初始化里程碑
func (h *CampaignHandler) InitMilestone(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	var req InitMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	milestone, err := h.milestoneLogic.InitMilestone(c.Param("address"), caller, req.Index, req.Description, req.Percentage)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "初始化里程碑成功", ToMilestoneResponse(milestone))
}

// ApproveMilestone 审批里程碑
func (h *CampaignHandler) ApproveMilestone(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	index, ok := milestoneIndex(c)
	if !ok {
		return
	}

	milestone, err := h.milestoneLogic.ApproveMilestone(c.Param("address"), caller, index)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "审批里程碑成功", ToMilestoneResponse(milestone))
}

// ReleaseMilestoneFunds 释放里程碑资金
func (h *CampaignHandler) ReleaseMilestoneFunds(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	index, ok := milestoneIndex(c)
	if !ok {
		return
	}

	var req ReleaseMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	milestone, err := h.milestoneLogic.ReleaseMilestoneFunds(c.Param("address"), caller, index, req.Recipient)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "释放里程碑资金成功", ToMilestoneResponse(milestone))
}

// ClaimRefund 申领退款
func (h *CampaignHandler) ClaimRefund(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	var req ClaimRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	address := c.Param("address")
	amount, err := h.refundLogic.ClaimRefund(address, req.RecordID, caller)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "退款成功", RefundResponse{
		Campaign: address,
		Donor:    caller,
		Amount:   amount,
	})
}

// milestoneIndex 解析路径中的里程碑序号
func milestoneIndex(c *gin.Context) (uint8, bool) {
	index, err := strconv.ParseUint(c.Param("index"), 10, 8)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的里程碑序号")
		return 0, false
	}
	return uint8(index), true
}
