package recipe

import (
	"strings"
)

// imageKinds 統計圖片來源類型（用於日誌記錄，不輸出圖片內容）
func imageKinds(images []string) []string {
	kinds := make([]string, 0, len(images))
	for _, img := range images {
		kinds = append(kinds, getImagePrefix(img))
	}
	return kinds
}

// getImagePrefix 獲取圖片前綴（用於日誌記錄）
func getImagePrefix(image string) string {
	switch {
	case strings.HasPrefix(image, "data:image/"):
		return "[IMAGE_DATA]"
	case strings.HasPrefix(image, "http"):
		return "[IMAGE_URL]"
	case strings.HasPrefix(image, "/9j/") || strings.HasPrefix(image, "iVBORw0KGgo"):
		return "[BASE64_DATA]"
	default:
		return "[UNKNOWN_FORMAT]"
	}
}
