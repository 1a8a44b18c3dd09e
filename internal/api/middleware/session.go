package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHeader 推薦工作階段標頭
const SessionHeader = "X-Session-ID"

const sessionKey = "session_id"

// Session 讀取 X-Session-ID，沒有時發放新的 ID 並回寫到回應標頭
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(SessionHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(sessionKey, id)
		c.Header(SessionHeader, id)
		c.Next()
	}
}

// SessionID 取出目前請求的工作階段 ID
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
