// Package handlers 提供各 HTTP 處理器共用的回應輔助函式
package handlers

import (
	"net/http"

	"fridge-chef/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError 將錯誤轉成統一的 JSON 錯誤回應。
// 詳細原因只在 debug 模式顯示。
func RespondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	body := common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "internal server error",
	}

	if common.IsValidationError(err) {
		status = http.StatusBadRequest
		body = common.ErrorResponse{Code: common.ErrCodeInvalidRequest, Message: err.Error()}
	} else if ce, ok := common.AsCustomError(err); ok {
		status = ce.Status
		body = common.ErrorResponse{Code: ce.Code, Message: ce.Message}
	}

	if gin.IsDebugging() {
		body.Details = err.Error()
	}
	if status >= http.StatusInternalServerError {
		common.LogError("請求處理失敗",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
			zap.Error(err),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// BadRequest 請求格式錯誤
func BadRequest(c *gin.Context, err error) {
	RespondError(c, common.ErrInvalidRequest.WithErr(err))
}
