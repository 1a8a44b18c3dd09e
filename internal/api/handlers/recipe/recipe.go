// Package recipe 食譜本與照片擷取的 HTTP 處理器
package recipe

import (
	"errors"
	"net/http"

	"fridge-chef/internal/api/handlers"
	"fridge-chef/internal/core/recipe"

	"github.com/gin-gonic/gin"
)

// ReplaceRequest 整批覆寫食譜本
type ReplaceRequest struct {
	Recipes []recipe.Entry `json:"recipes"`
}

// Handler 食譜本處理器
type Handler struct {
	book   *recipe.BookService
	intake *recipe.IntakeService
}

// NewHandler 創建食譜本處理器；intake 為 nil 時不提供照片擷取
func NewHandler(book *recipe.BookService, intake *recipe.IntakeService) *Handler {
	return &Handler{book: book, intake: intake}
}

// Register 註冊路由；extract 中間件套用在照片擷取上（去重等）
func (h *Handler) Register(rg *gin.RouterGroup, extract ...gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", h.Add)
	rg.PUT("", h.ReplaceAll)
	rg.DELETE("/:name", h.Delete)
	rg.POST("/extract", append(extract, h.Extract)...)
}

// List 列出食譜本
func (h *Handler) List(c *gin.Context) {
	entries, err := h.book.List(c.Request.Context())
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": entries, "count": len(entries)})
}

// Add 新增食譜
func (h *Handler) Add(c *gin.Context) {
	var entry recipe.Entry
	if err := c.ShouldBindJSON(&entry); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	saved, err := h.book.Add(c.Request.Context(), entry)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": saved})
}

// ReplaceAll 以編輯後的清單覆寫食譜本
func (h *Handler) ReplaceAll(c *gin.Context) {
	var req ReplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}
	saved, err := h.book.ReplaceAll(c.Request.Context(), req.Recipes)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": saved, "count": len(saved)})
}

// Delete 刪除同名食譜
func (h *Handler) Delete(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		handlers.BadRequest(c, errors.New("name is required"))
		return
	}
	if err := h.book.Delete(c.Request.Context(), name); err != nil {
		handlers.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}
