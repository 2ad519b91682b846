package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/nao1215/planbridge/internal/config"
	"github.com/nao1215/planbridge/internal/portal"
	"github.com/nao1215/planbridge/pkg/httpclient"
	"github.com/nao1215/planbridge/pkg/middleware"
)

// Server はゲートウェイのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// portal はリクエストごとにポータルのクライアントを生成する。
	portal portal.Factory
	// logger は構造化ロガー。
	logger zerolog.Logger
	// validate はクエリパラメータの検証に使う。
	validate *validator.Validate
	// now は現在時刻を返す。セッション確認の日付に使う。
	now func() time.Time
}

// NewServer は新しいゲートウェイサーバーを生成する。
func NewServer(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	origins := cfg.Origins()
	if len(origins) == 0 {
		return nil, errors.New("CORS許可オリジンが設定されていません")
	}

	factory := portal.NewHTTPFactory(cfg.PortalURL, cfg.PortalTimeout)
	return newServer(cfg.Port, factory, logger, origins)
}

// newServer は依存を指定してサーバーを組み立てる。
func newServer(port string, factory portal.Factory, logger zerolog.Logger, origins []string) (*Server, error) {
	validate, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("バリデータの初期化に失敗: %w", err)
	}

	router := gin.New()
	// パスは完全一致で振り分ける。末尾スラッシュのリダイレクトは行わない。
	router.RedirectTrailingSlash = false
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(origins))
	router.Use(middleware.Recovery(logger))

	s := &Server{
		router:   router,
		port:     port,
		portal:   factory,
		logger:   logger,
		validate: validate,
		now:      time.Now,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		// ポータルへのログイン
		api.Any("/login", s.handleLogin())
		// セッションの有効性確認
		api.Any("/isValidSession", s.handleIsValidSession())
		// 代替計画の取得
		api.Any("/plan", s.handlePlan())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "planbridge"})
	})

	s.router.NoRoute(s.handleNotFound())
}

// upstreamContext はポータル呼び出しに使うコンテキストを返す。
// 呼び出し元が切断しても上流への呼び出しは中断しない。
func upstreamContext(c *gin.Context) context.Context {
	ctx := context.WithoutCancel(c.Request.Context())
	return httpclient.WithRequestID(ctx, middleware.GetRequestID(c))
}

// writeText はプレーンテキストのレスポンスを書き込む。
func writeText(c *gin.Context, status int, body string) {
	c.Data(status, "text/plain; charset=utf-8", []byte(body))
}
