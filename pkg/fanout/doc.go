// Package fanout は複数の独立した処理を並行に実行し、結果を結合する仕組みを提供する。
//
// 全ての処理の完了を待ってから戻り、一つでも失敗した場合は全体を失敗として扱う。
// 部分的な結果は返さない。
package fanout
