package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shariqazeem/umanity-social/internal/errs"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// FailFromError 按错误分类映射 HTTP 状态码，调用方总能拿到具体错误信息
func FailFromError(c *gin.Context, err error) {
	ErrorResponse(c, statusFromError(err), err.Error())
}

// statusFromError 错误分类 → 状态码
func statusFromError(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthorized),
		errors.Is(err, errs.ErrDonorMismatch):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.IsStateGuard(err),
		errors.Is(err, errs.ErrPoolExists),
		errors.Is(err, errs.ErrCampaignExists),
		errors.Is(err, errs.ErrMilestoneExists),
		errors.Is(err, errs.ErrMilestoneMismatch),
		errors.Is(err, errs.ErrRecipientMismatch),
		errors.Is(err, errs.ErrPoolMismatch):
		return http.StatusConflict
	case errors.Is(err, errs.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// CallerAddress 提取已验证的调用方身份。鉴权在引擎之外完成，
// 这里只消费"调用方控制身份 X"这一事实。
func CallerAddress(c *gin.Context) (string, bool) {
	caller := c.GetHeader("X-Caller-Address")
	if caller == "" {
		ErrorResponse(c, http.StatusUnauthorized, "缺少调用方身份")
		return "", false
	}
	return caller, true
}
