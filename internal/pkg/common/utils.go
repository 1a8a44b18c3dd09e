package common

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// IsHTTPURL 判斷字串是否為可顯示的 http(s) 連結
func IsHTTPURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if len(raw) <= len("http://") {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
