package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AllowAllOrigins は全てのオリジンを許可する場合に指定する値。
const AllowAllOrigins = "*"

// CORS は指定されたオリジンからのクロスオリジンリクエストを許可するGinミドルウェアを返す。
// allowedOriginsに "*" を含む場合は、Originヘッダーの有無に関わらず全てのレスポンスに
// "Access-Control-Allow-Origin: *" を付与する。
// OPTIONSリクエストは登録済みのルートに一致した場合のみ204で応答し、
// 未登録パスはNoRouteハンドラに委ねる。
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	originsSet := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == AllowAllOrigins {
			allowAll = true
		}
		originsSet[o] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowAll {
			setCORSHeaders(c, AllowAllOrigins)
		} else if _, ok := originsSet[origin]; ok {
			setCORSHeaders(c, origin)
			c.Header("Vary", "Origin")
		}

		// NoRouteハンドラの実行中はFullPathが空になる
		if c.Request.Method == http.MethodOptions && c.FullPath() != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// setCORSHeaders はCORS関連のレスポンスヘッダーを設定する。
func setCORSHeaders(c *gin.Context, allowOrigin string) {
	c.Header("Access-Control-Allow-Origin", allowOrigin)
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
	c.Header("Access-Control-Max-Age", "86400")
}
