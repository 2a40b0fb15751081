package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shariqazeem/umanity-social/internal/logic"
)

// PoolHandler 资金池处理器
type PoolHandler struct {
	poolLogic *logic.PoolLogic
}

// NewPoolHandler 创建资金池处理器
func NewPoolHandler(poolLogic *logic.PoolLogic) *PoolHandler {
	return &PoolHandler{poolLogic: poolLogic}
}

// CreatePool 创建资金池
func (h *PoolHandler) CreatePool(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	var req CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	pool, err := h.poolLogic.CreatePool(caller, req.Name, req.Description, req.Emoji, req.Category)
	if err != nil {
		FailFromError(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "创建资金池成功", ToPoolResponse(pool))
}

// GetPools 获取资金池列表
func (h *PoolHandler) GetPools(c *gin.Context) {
	pools, err := h.poolLogic.GetPools()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "获取资金池列表成功", ToPoolResponseList(pools))
}

// GetPool 获取资金池详情
func (h *PoolHandler) GetPool(c *gin.Context) {
	pool, err := h.poolLogic.GetPool(c.Param("address"))
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "获取资金池详情成功", ToPoolResponse(pool))
}

// OneTapDonate 一键捐赠
func (h *PoolHandler) OneTapDonate(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	record, err := h.poolLogic.OneTapDonate(c.Param("address"), caller)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "捐赠成功", ToDonationResponse(record))
}

// Donate 自定义金额捐赠
func (h *PoolHandler) Donate(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	record, err := h.poolLogic.Donate(c.Param("address"), caller, req.Amount)
	if err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "捐赠成功", ToDonationResponse(record))
}

// GetDonations 获取资金池捐赠记录
func (h *PoolHandler) GetDonations(c *gin.Context) {
	records, err := h.poolLogic.GetPoolDonations(c.Param("address"))
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "获取捐赠记录成功", ToDonationResponseList(records))
}

// Withdraw 资金池提现
func (h *PoolHandler) Withdraw(c *gin.Context) {
	caller, ok := CallerAddress(c)
	if !ok {
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	if err := h.poolLogic.Withdraw(c.Param("address"), caller, req.Recipient, req.Amount); err != nil {
		FailFromError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "提现成功", nil)
}
