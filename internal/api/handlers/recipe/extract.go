package recipe

import (
	"net/http"

	"fridge-chef/internal/api/handlers"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExtractRequest 食譜照片擷取請求
// images: data URI、base64 或圖片 URL，視為同一份食譜的連續頁面
type ExtractRequest struct {
	Images []string `json:"images" binding:"required,min=1"`
	Link   string   `json:"link,omitempty"` // 原始食譜連結，存檔時使用
	Save   bool     `json:"save,omitempty"` // 擷取成功後直接存入食譜本
}

// ExtractResponse 擷取結果
type ExtractResponse struct {
	Draft recipe.Draft  `json:"draft"`
	Saved *recipe.Entry `json:"saved,omitempty"`
}

// Extract 處理 /recipes/extract
func (h *Handler) Extract(c *gin.Context) {
	requestID := requestid.Get(c)

	if h.intake == nil {
		handlers.RespondError(c, common.ErrAIDisabled)
		return
	}

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.BadRequest(c, err)
		return
	}

	common.LogInfo("開始處理食譜擷取請求",
		zap.String("request_id", requestID),
		zap.Int("image_count", len(req.Images)),
		zap.Strings("image_kinds", imageKinds(req.Images)),
	)

	draft, err := h.intake.Extract(c.Request.Context(), req.Images)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	resp := ExtractResponse{Draft: draft}
	if req.Save {
		saved, err := h.book.Add(c.Request.Context(), draft.Entry(req.Link))
		if err != nil {
			handlers.RespondError(c, err)
			return
		}
		resp.Saved = &saved
	}

	common.LogInfo("食譜擷取完成",
		zap.String("request_id", requestID),
		zap.String("name", draft.Name),
		zap.Bool("saved", resp.Saved != nil),
	)
	c.JSON(http.StatusOK, resp)
}
