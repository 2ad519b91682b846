package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/planbridge/internal/portal"
	"github.com/nao1215/planbridge/pkg/fanout"
	"github.com/nao1215/planbridge/pkg/middleware"
)

// レスポンスボディの固定文言。
const (
	bodyInvalidRequest = "Invalid request"
	bodyPlanError      = "Error while handling data"
	bodySessionValid   = "OK"
	bodySessionInvalid = "NO"
)

// handleLogin は資格情報でポータルにログインし、セッションIDを返すハンドラ。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		params := parseLoginParams(c)
		if err := s.validate.Struct(params); err != nil {
			writeText(c, http.StatusBadRequest, bodyInvalidRequest)
			return
		}

		client := s.portal.NewFromCredentials(params.Username, params.Password, params.SchoolID)
		sid, err := client.Authenticate(upstreamContext(c))
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("request_id", middleware.GetRequestID(c)).
				Str("school_id", params.SchoolID).
				Msg("ポータルへのログインに失敗")
			writeText(c, http.StatusInternalServerError, err.Error())
			return
		}

		writeText(c, http.StatusOK, sid)
	}
}

// handleIsValidSession はセッションがポータルで有効かを確認するハンドラ。
// 当日の代替計画を取得できるかどうかで判定する。
func (s *Server) handleIsValidSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		params := parseSessionParams(c)
		if err := s.validate.Struct(params); err != nil {
			writeText(c, http.StatusBadRequest, bodyInvalidRequest)
			return
		}

		client := s.portal.NewFromSession(params.SID, params.SchoolID)
		if _, err := client.Plan(upstreamContext(c), portal.FormatDate(s.now())); err != nil {
			s.logger.Info().
				Err(err).
				Str("request_id", middleware.GetRequestID(c)).
				Msg("セッションが無効です")
			writeText(c, http.StatusUnauthorized, bodySessionInvalid)
			return
		}

		writeText(c, http.StatusOK, bodySessionValid)
	}
}

// handlePlan は代替計画のある全ての日付について並行に代替計画を取得し、
// 日付順に連結したJSON配列を返すハンドラ。
func (s *Server) handlePlan() gin.HandlerFunc {
	return func(c *gin.Context) {
		params := parseSessionParams(c)
		if err := s.validate.Struct(params); err != nil {
			writeText(c, http.StatusBadRequest, bodyInvalidRequest)
			return
		}

		requestID := middleware.GetRequestID(c)
		client := s.portal.NewFromSession(params.SID, params.SchoolID)
		ctx := upstreamContext(c)

		dates, err := client.PlanDates(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Str("request_id", requestID).Msg("代替計画の日付一覧の取得に失敗")
			writeText(c, http.StatusInternalServerError, bodyPlanError)
			return
		}

		plans, err := fanout.Map(ctx, dates, func(ctx context.Context, date string) ([]portal.Entry, error) {
			s.logger.Debug().Str("request_id", requestID).Str("date", date).Msg("代替計画を取得します")
			return client.Plan(ctx, date)
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("request_id", requestID).Msg("代替計画の取得に失敗")
			writeText(c, http.StatusInternalServerError, bodyPlanError)
			return
		}

		body, err := json.Marshal(fanout.Flatten(plans))
		if err != nil {
			s.logger.Error().Err(err).Str("request_id", requestID).Msg("代替計画のシリアライズに失敗")
			writeText(c, http.StatusInternalServerError, bodyPlanError)
			return
		}

		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}

// handleNotFound は未登録のパスに対して404を返すハンドラ。
// パスはリクエストで受け取ったエスケープ済みの形のまま返す。
func (s *Server) handleNotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		writeText(c, http.StatusNotFound, "Not found: "+c.Request.URL.EscapedPath())
	}
}
