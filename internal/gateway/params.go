package gateway

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/nao1215/planbridge/internal/portal"
)

// newValidator はクエリパラメータ用のバリデータを生成する。
// "session_id" タグはポータルにそのまま送信できるセッションIDのみを許可する。
func newValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("session_id", func(fl validator.FieldLevel) bool {
		return portal.IsValidSessionID(fl.Field().String())
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// loginParams はログインリクエストのクエリパラメータ。
type loginParams struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
	SchoolID string `validate:"required"`
}

// sessionParams はセッションを使うリクエストのクエリパラメータ。
// schoolidは検証せずにそのまま上流へ渡す。
type sessionParams struct {
	SID      string `validate:"required,session_id"`
	SchoolID string
}

// queryValue はクエリパラメータの値を返す。
// 同じキーが複数ある場合は最後の値を採用する。
func queryValue(c *gin.Context, key string) string {
	values := c.QueryArray(key)
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

// parseLoginParams はクエリからログインパラメータを取り出す。
func parseLoginParams(c *gin.Context) loginParams {
	return loginParams{
		Username: queryValue(c, "username"),
		Password: queryValue(c, "password"),
		SchoolID: queryValue(c, "schoolid"),
	}
}

// parseSessionParams はクエリからセッションパラメータを取り出す。
func parseSessionParams(c *gin.Context) sessionParams {
	return sessionParams{
		SID:      queryValue(c, "sid"),
		SchoolID: queryValue(c, "schoolid"),
	}
}
