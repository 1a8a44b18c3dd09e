package common

// Message 消息結構（OpenAI 相容 chat 格式）
type Message struct {
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content 內容結構
type Content struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL 圖片 URL 結構
type ImageURL struct {
	URL string `json:"url"`
}

// TextContent 建立文字內容
func TextContent(text string) Content {
	return Content{Type: "text", Text: text}
}

// ImageContent 建立圖片內容
func ImageContent(url string) Content {
	return Content{Type: "image_url", ImageURL: &ImageURL{URL: url}}
}
