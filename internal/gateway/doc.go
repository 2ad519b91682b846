// Package gateway は学校ポータルへのエッジHTTPゲートウェイを提供する。
//
// ログイン、セッションの有効性確認、代替計画の取得の3種類のリクエストを
// クエリパラメータから組み立ててポータルのクライアントに委譲し、その結果を
// ステータスコードとプレーンテキスト（代替計画はJSON配列）のレスポンスに変換する。
// 全てのレスポンスに許可的なCORSヘッダーを付与する。
package gateway
