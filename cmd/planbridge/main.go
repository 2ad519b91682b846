// 学校ポータルゲートウェイのエントリポイント。
// ログイン、セッション確認、代替計画取得の3つのAPIを提供し、
// 処理は全て上流の学校ポータルに委譲する。
package main

import (
	"github.com/nao1215/planbridge/internal/config"
	"github.com/nao1215/planbridge/internal/gateway"
	"github.com/nao1215/planbridge/internal/logger"
)

func main() {
	boot := logger.Bootstrap()

	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("設定の読み込みに失敗")
	}

	log, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		boot.Fatal().Err(err).Msg("ロガーの初期化に失敗")
	}

	server, err := gateway.NewServer(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("ゲートウェイサーバーの初期化に失敗")
	}

	log.Info().Str("port", cfg.Port).Str("portal_url", cfg.PortalURL).Msg("ゲートウェイを起動します")
	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("ゲートウェイの起動に失敗")
	}
}
