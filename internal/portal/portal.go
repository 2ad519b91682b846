package portal

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// DateLayout はポータルとやり取りする日付の書式。
const DateLayout = "2006-01-02"

// SessionCookie はポータルがセッションIDを格納するCookie名。
const SessionCookie = "sid"

var (
	// ErrNotLoggedIn はセッションを持たないクライアントでセッションが必要な操作を呼んだことを表す。
	ErrNotLoggedIn = errors.New("ポータルにログインしていません")
	// ErrNoSession は認証に成功したがセッションIDが得られなかったことを表す。
	ErrNoSession = errors.New("ポータルからセッションIDが返されませんでした")
)

// Entry は代替計画の1件分のデータ。
// 中身は解釈せず、上流から受け取ったJSONをそのまま保持する。
type Entry = json.RawMessage

// Client はポータルに対する操作を表す。
// 各操作は結果かエラーのどちらかを返す。
type Client interface {
	// Authenticate は資格情報でログインし、得られたセッションIDを返す。
	Authenticate(ctx context.Context) (string, error)
	// PlanDates は代替計画が存在する日付の一覧を返す。
	PlanDates(ctx context.Context) ([]string, error)
	// Plan は指定日の代替計画を上流の順序のまま返す。
	Plan(ctx context.Context, date string) ([]Entry, error)
}

// Factory はClientを生成する。
// 生成されたClientは呼び出し元のリクエスト専用であり、共有してはならない。
type Factory interface {
	// NewFromCredentials はユーザー名・パスワード・学校IDに紐づく非対話モードのClientを生成する。
	NewFromCredentials(username, password, schoolID string) Client
	// NewFromSession は既存のセッションIDでログイン済みとして扱うClientを生成する。
	// sessionIDはIsValidSessionIDを満たしている必要がある。
	NewFromSession(sessionID, schoolID string) Client
}

// IsValidSessionID はセッションIDがCookieの値として変更されずに送信できるかを返す。
// 空白・制御文字・'"'・','・';'・バックスラッシュを含む値はCookieの送信時に欠落するため受け付けない。
func IsValidSessionID(sid string) bool {
	if sid == "" {
		return false
	}
	for i := 0; i < len(sid); i++ {
		b := sid[i]
		if b <= 0x20 || b >= 0x7f || b == '"' || b == ',' || b == ';' || b == '\\' {
			return false
		}
	}
	return true
}

// FormatDate は時刻をポータルの日付書式に変換する。
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
