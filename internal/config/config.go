// Package config は環境変数からアプリケーション設定を読み込む。
//
// PLANBRIDGE_ で始まる環境変数をkoanfで構造体にマッピングし、
// validatorで必須項目と値の範囲を検証する。.env ファイルが存在する場合は
// 読み込み前にプロセスの環境変数として展開される。
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix は読み込む環境変数の接頭辞。
const envPrefix = "PLANBRIDGE_"

// Config はアプリケーション全体の設定。
type Config struct {
	// Port はHTTPサーバーのリッスンポート。
	Port string `koanf:"port" validate:"required"`
	// Env は実行環境。ログの出力形式の切り替えに使う。
	Env string `koanf:"env" validate:"required,oneof=development production test"`
	// LogLevel はzerologのログレベル。
	LogLevel string `koanf:"log_level" validate:"required,oneof=trace debug info warn error fatal panic disabled"`
	// PortalURL は学校ポータルAPIのベースURL。
	PortalURL string `koanf:"portal_url" validate:"required,url"`
	// PortalTimeout は上流への1リクエストあたりのタイムアウト。
	PortalTimeout time.Duration `koanf:"portal_timeout" validate:"gt=0"`
	// AllowedOrigins はカンマ区切りのCORS許可オリジン。"*" で全て許可する。
	AllowedOrigins string `koanf:"allowed_origins" validate:"required"`
}

// Default はデフォルト値を設定したConfigを返す。
// PortalURLにはデフォルトが無いため、必ず環境変数で指定する必要がある。
func Default() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return &Config{
		Port:           port,
		Env:            "production",
		LogLevel:       "info",
		PortalTimeout:  30 * time.Second,
		AllowedOrigins: "*",
	}
}

// Load は環境変数から設定を読み込み、検証済みのConfigを返す。
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("環境変数の読み込みに失敗: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("設定のデコードに失敗: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}
	return cfg, nil
}

// Origins はCORS許可オリジンをスライスで返す。
// 前後の空白と空要素は除外する。
func (c *Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// IsDevelopment は開発環境で動作しているかを返す。
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
