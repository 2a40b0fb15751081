package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shariqazeem/umanity-social/internal/logic"
)

// AccountHandler 账户处理器
type AccountHandler struct {
	accountLogic *logic.AccountLogic
	eventLogic   *logic.EventLogic
}

// NewAccountHandler 创建账户处理器
func NewAccountHandler(accountLogic *logic.AccountLogic, eventLogic *logic.EventLogic) *AccountHandler {
	return &AccountHandler{
		accountLogic: accountLogic,
		eventLogic:   eventLogic,
	}
}

// Deposit 账户入金
func (h *AccountHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的请求参数: "+err.Error())
		return
	}

	address := c.Param("address")
	if err := h.accountLogic.Deposit(address, req.Amount); err != nil {
		FailFromError(c, err)
		return
	}

	balance, err := h.accountLogic.GetBalance(address)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "入金成功", AccountResponse{Address: address, Balance: balance})
}

// GetAccount 查询账户余额
func (h *AccountHandler) GetAccount(c *gin.Context) {
	address := c.Param("address")
	balance, err := h.accountLogic.GetBalance(address)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "获取账户成功", AccountResponse{Address: address, Balance: balance})
}

// GetEvents 获取事件列表
func (h *AccountHandler) GetEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	events, total, err := h.eventLogic.GetEvents(
		c.Query("type"), c.Query("pool"), c.Query("campaign"), page, pageSize,
	)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	pagination := Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	SuccessResponse(c, http.StatusOK, "获取事件列表成功", GetEventsResponse{
		Events:     ToEventResponseList(events),
		Pagination: pagination,
	})
}
