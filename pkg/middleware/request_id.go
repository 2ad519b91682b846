package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader はリクエストの相関IDを格納するHTTPヘッダー。
const RequestIDHeader = "X-Request-ID"

// requestIDKey はGinコンテキストにリクエストIDを格納するためのキー。
const requestIDKey = "request_id"

// RequestID はリクエストIDを採番するGinミドルウェアを返す。
// リクエストにX-Request-IDヘッダーがあればそれを引き継ぎ、無ければUUIDを生成する。
// 採番したIDはレスポンスヘッダーにも設定する。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID はGinコンテキストからリクエストIDを取得する。
// RequestIDミドルウェアが適用されていない場合は空文字列を返す。
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
