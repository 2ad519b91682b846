// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// CORSヘッダーの付与、リクエストIDの採番、構造化リクエストログ、
// パニックリカバリなど、全てのレスポンスに共通して適用するミドルウェアを含む。
package middleware
