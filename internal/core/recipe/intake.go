package recipe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"fridge-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 多模態 AI 呼叫
type Generator interface {
	Generate(ctx context.Context, purpose, prompt string, images ...string) (string, error)
}

// extractPrompt 所有圖片視為同一份食譜的連續頁面
const extractPrompt = `당신은 요리 전문가입니다. 제시된 이미지들에는 하나의 요리 레시피가 이어져서 담겨있습니다.
모든 이미지를 종합하여 [요리 이름], [필수 재료], [조리법]을 추출하고 JSON 형식으로 알려주세요.
필수 재료는 쉼표로 구분된 한 줄의 문자열로, 조리법은 번호를 붙인 문자열로 작성하세요.
응답 형식(JSON) 예시:
{"name": "요리 이름", "ingredients": "재료1, 재료2", "steps": "1. 과정1\n2. 과정2"}
만약 이미지에서 레시피 정보를 찾을 수 없다면 모든 필드를 비워주세요.`

// IntakeService 從食譜照片擷取名稱、食材與步驟
type IntakeService struct {
	ai        Generator
	maxImages int
}

// NewIntakeService 創建照片擷取服務；ai 為 nil 時擷取一律返回 ErrAIDisabled
func NewIntakeService(ai Generator, maxImages int) *IntakeService {
	return &IntakeService{ai: ai, maxImages: maxImages}
}

// Extract 將一或多張照片交給視覺模型，返回食譜草稿
func (s *IntakeService) Extract(ctx context.Context, images []string) (Draft, error) {
	if s.ai == nil {
		return Draft{}, common.ErrAIDisabled
	}

	kept := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			kept = append(kept, img)
		}
	}
	if len(kept) == 0 {
		return Draft{}, common.ErrInvalidRequest.WithErr(errors.New("at least one image is required"))
	}
	if s.maxImages > 0 && len(kept) > s.maxImages {
		return Draft{}, common.ErrInvalidRequest.WithErr(fmt.Errorf("at most %d images are allowed", s.maxImages))
	}

	types := make([]string, 0, len(kept))
	for _, img := range kept {
		types = append(types, imageType(img))
	}
	common.LogInfo("開始擷取照片食譜",
		zap.Int("images", len(kept)),
		zap.Strings("image_types", types),
	)

	content, err := s.ai.Generate(ctx, "extract", extractPrompt, kept...)
	if err != nil {
		common.LogError("AI 服務請求失敗", zap.Error(err))
		return Draft{}, err
	}

	var draft Draft
	if err := common.ParseLenientJSON(content, &draft); err != nil {
		common.LogWarn("AI 響應解析失敗", zap.Error(err))
		return Draft{}, common.ErrNoRecipeInImage.WithErr(err)
	}

	draft = Draft{
		Name:        strings.TrimSpace(draft.Name),
		Ingredients: normalizeIngredientList(draft.Ingredients),
		Steps:       strings.TrimSpace(strings.ReplaceAll(draft.Steps, `\n`, "\n")),
	}
	if draft.Empty() {
		return Draft{}, common.ErrNoRecipeInImage
	}

	common.LogInfo("照片食譜擷取成功",
		zap.String("name", draft.Name),
		zap.Int("ingredients_length", len(draft.Ingredients)),
	)
	return draft, nil
}

// normalizeIngredientList 將換行或頓號分隔的食材統一成逗號分隔
func normalizeIngredientList(raw string) string {
	raw = strings.NewReplacer("\n", ",", "，", ",", "、", ",").Replace(raw)
	parts := strings.Split(raw, ",")
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(p), "-")); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// imageType 獲取圖片類型，只用於日誌
func imageType(image string) string {
	if common.IsHTTPURL(image) {
		return "url"
	}
	if strings.HasPrefix(image, "data:image/") {
		head, _, ok := strings.Cut(image, ";base64,")
		if ok {
			return "data_uri_" + strings.TrimPrefix(head, "data:image/")
		}
		return "invalid_data_uri"
	}
	if _, err := base64.StdEncoding.DecodeString(image); err == nil {
		return "base64"
	}
	return "unknown_format"
}
