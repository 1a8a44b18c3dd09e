// Package pantry 冰箱食材的 HTTP 處理器
package pantry

import (
	"errors"
	"net/http"

	"fridge-chef/internal/api/handlers"
	"fridge-chef/internal/core/pantry"

	"github.com/gin-gonic/gin"
)

// AddRequest 新增食材請求；expiry 為 YYYY-MM-DD，醬料可留空
type AddRequest struct {
	Name      string `json:"name" binding:"required"`
	Expiry    string `json:"expiry,omitempty"`
	Storage   string `json:"storage,omitempty"`
	Seasoning bool   `json:"seasoning,omitempty"`
}

// Handler 冰箱處理器
type Handler struct {
	svc *pantry.Service
}

// NewHandler 創建冰箱處理器
func NewHandler(svc *pantry.Service) *Handler {
	return &Handler{svc: svc}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Add)
	rg.DELETE("/:name", h.Remove)
}

// List 列出食材與保存期限狀態
func (h *Handler) List(c *gin.Context) {
	views, err := h.svc.List(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": views, "count": len(views)})
}

// Add 新增或覆寫食材
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	expiry, err := pantry.ParseDate(req.Expiry)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	item, err := h.svc.Add(c.Request.Context(), pantry.AddRequest{
		Name:      req.Name,
		Expiry:    expiry,
		Storage:   req.Storage,
		Seasoning: req.Seasoning,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// Remove 刪除食材
func (h *Handler) Remove(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		handlers.BadRequest(c, errors.New("name is required"))
		return
	}
	if err := h.svc.Remove(c.Request.Context(), name); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}
