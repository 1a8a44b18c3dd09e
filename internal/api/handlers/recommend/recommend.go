// Package recommend 料理推薦的 HTTP 處理器
package recommend

import (
	"errors"
	"net/http"
	"strconv"

	"fridge-chef/internal/api/handlers"
	"fridge-chef/internal/api/middleware"
	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// CookRequest 製作料理請求
type CookRequest struct {
	Recipe string `json:"recipe" binding:"required"`
}

// Handler 推薦處理器
type Handler struct {
	svc *recommend.Service
}

// NewHandler 創建推薦處理器
func NewHandler(svc *recommend.Service) *Handler {
	return &Handler{svc: svc}
}

// Register 註冊路由；工作階段 ID 由 middleware.Session 提供
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.Use(middleware.Session())
	rg.POST("/next", h.Next)
	rg.GET("/last", h.Last)
	rg.DELETE("", h.Reset)
	rg.POST("/cook", h.Cook)
}

// Next 推薦下一道料理；?narrate=true 時附上推薦理由
func (h *Handler) Next(c *gin.Context) {
	narrate, err := strconv.ParseBool(c.DefaultQuery("narrate", "false"))
	if err != nil {
		handlers.BadRequest(c, errors.New("narrate must be a boolean"))
		return
	}

	res, err := h.svc.Next(c.Request.Context(), middleware.SessionID(c), narrate)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Last 返回最後一次推薦
func (h *Handler) Last(c *gin.Context) {
	last, err := h.svc.Last(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	if last == nil {
		handlers.RespondError(c, common.ErrNotFound.WithMessage("no recommendation yet"))
		return
	}
	c.JSON(http.StatusOK, last)
}

// Reset 清除工作階段的推薦紀錄
func (h *Handler) Reset(c *gin.Context) {
	if err := h.svc.Reset(c.Request.Context(), middleware.SessionID(c)); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// Cook 列出製作料理會用到的冰箱食材
func (h *Handler) Cook(c *gin.Context) {
	var req CookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	res, err := h.svc.Cook(c.Request.Context(), req.Recipe)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
