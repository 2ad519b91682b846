// Package httpclient は上流のポータルAPIとHTTP通信を行うクライアントを提供する。
//
// クライアントごとにCookie Jarを持ち、ポータルが発行するセッションCookieを
// 保持・送信する。リクエストIDの伝播、タイムアウト、非2xxレスポンスの
// エラー化など、上流との通信パターンを統一する。
package httpclient
