// Package logger はzerologによるアプリケーションロガーを構築する。
//
// 開発環境では人が読みやすいコンソール形式、それ以外ではJSON形式で出力する。
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New は設定に従ってロガーを生成する。
// developmentがtrueならコンソール形式、falseならJSON形式で出力する。
// service フィールドを全てのログに付与する。
func New(development bool, level string) (zerolog.Logger, error) {
	var w io.Writer = os.Stdout
	if development {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return NewWithWriter(w, level)
}

// NewWithWriter は出力先を指定してロガーを生成する。
func NewWithWriter(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("ログレベルの解析に失敗: %w", err)
	}

	return zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "planbridge").
		Logger(), nil
}

// Bootstrap は設定の読み込み前に使う最小限のロガーを返す。
func Bootstrap() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
